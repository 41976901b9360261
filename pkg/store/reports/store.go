package reports

import (
	"context"

	"github.com/de-tools/ternak-atlas/pkg/models/store"
)

// Store persists quarterly reports. It is the single canonical report
// collection; per-participant views are queries over it.
type Store interface {
	Insert(ctx context.Context, r *store.Report) error
	Get(ctx context.Context, id string) (*store.Report, error)
	List(ctx context.Context) ([]*store.Report, error)
	ListByParticipant(ctx context.Context, participantID string) ([]*store.Report, error)
	Update(ctx context.Context, r *store.Report) error
	Delete(ctx context.Context, id string) error
}
