package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Source provides the data to export.
type Source interface {
	ListAll(ctx context.Context) ([]domain.Report, error)
}

type ParticipantSource interface {
	ListAll(ctx context.Context) ([]domain.Participant, error)
}

// Uploader stores an exported object under bucket/key.
type Uploader interface {
	Upload(ctx context.Context, bucket, key string, body io.Reader) error
}

type Exporter struct {
	participants ParticipantSource
	reports      Source
	uploader     Uploader
}

func NewExporter(participants ParticipantSource, reports Source, uploader Uploader) *Exporter {
	return &Exporter{
		participants: participants,
		reports:      reports,
		uploader:     uploader,
	}
}

// Write renders every report as CSV into w.
func (e *Exporter) Write(ctx context.Context, w io.Writer) (int, error) {
	ps, err := e.participants.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load participants: %w", err)
	}
	rs, err := e.reports.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load reports: %w", err)
	}
	if err := WriteCSV(w, ps, rs); err != nil {
		return 0, err
	}
	return len(rs), nil
}

// Upload renders the CSV export and hands it to the uploader.
func (e *Exporter) Upload(ctx context.Context, bucket, key string) (int, error) {
	if e.uploader == nil {
		return 0, fmt.Errorf("no uploader configured")
	}
	if bucket == "" {
		return 0, fmt.Errorf("bucket is required")
	}
	if key == "" {
		key = DefaultKey(time.Now())
	}

	var buf bytes.Buffer
	n, err := e.Write(ctx, &buf)
	if err != nil {
		return 0, err
	}
	if err := e.uploader.Upload(ctx, bucket, key, bytes.NewReader(buf.Bytes())); err != nil {
		return 0, fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("bucket", bucket).
		Str("key", key).
		Int("reports", n).
		Msg("report export uploaded")
	return n, nil
}

func DefaultKey(now time.Time) string {
	return fmt.Sprintf("exports/laporan-triwulan-%s.csv", now.Format("20060102-150405"))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
