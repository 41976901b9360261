package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/ternak-atlas/pkg/models/store"
	"github.com/de-tools/ternak-atlas/pkg/store/reports"
	"github.com/de-tools/ternak-atlas/pkg/store/sqldb"
)

const reportColumns = `id, participant_id, quarter, year, period_start, period_end, label,
	initial_count, current_count, return_target, died, born, sold,
	notes, obstacle, solution, report_date, created_at, updated_at`

type reportStore struct {
	db *sqldb.DB
}

func NewStore(db *sqldb.DB) (reports.Store, error) {
	if db == nil || db.DB == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{
		db: db,
	}, nil
}

func (s *reportStore) Insert(ctx context.Context, r *store.Report) error {
	query := s.db.Dialect.Rebind(`
		INSERT INTO reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.db.Executor(ctx).ExecContext(ctx, query,
		r.ID,
		r.ParticipantID,
		r.Quarter,
		r.Year,
		r.PeriodStart,
		r.PeriodEnd,
		r.Label,
		r.InitialCount,
		r.CurrentCount,
		r.ReturnTarget,
		r.Died,
		r.Born,
		r.Sold,
		r.Notes,
		r.Obstacle,
		r.Solution,
		r.ReportDate,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		if s.db.Dialect.IsUniqueViolation(err) {
			return fmt.Errorf("insert report: %w", store.ErrDuplicate)
		}
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context, id string) (*store.Report, error) {
	query := s.db.Dialect.Rebind(`SELECT ` + reportColumns + ` FROM reports WHERE id = ?`)
	row := s.db.Executor(ctx).QueryRowContext(ctx, query, id)

	r, err := scanReport(row)
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return r, nil
}

func (s *reportStore) List(ctx context.Context) ([]*store.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY participant_id, quarter`
	rows, err := s.db.Executor(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()
	return scanReportRows(rows)
}

func (s *reportStore) ListByParticipant(ctx context.Context, participantID string) ([]*store.Report, error) {
	query := s.db.Dialect.Rebind(
		`SELECT ` + reportColumns + ` FROM reports WHERE participant_id = ? ORDER BY quarter`,
	)
	rows, err := s.db.Executor(ctx).QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("list reports of %s: %w", participantID, err)
	}
	defer rows.Close()
	return scanReportRows(rows)
}

// Update overwrites the mutable columns of a report. The owner and quarter
// number are fixed at creation.
func (s *reportStore) Update(ctx context.Context, r *store.Report) error {
	query := s.db.Dialect.Rebind(`
		UPDATE reports SET
			year = ?, period_start = ?, period_end = ?, label = ?,
			initial_count = ?, current_count = ?, return_target = ?,
			died = ?, born = ?, sold = ?,
			notes = ?, obstacle = ?, solution = ?,
			report_date = ?, updated_at = ?
		WHERE id = ?`)

	res, err := s.db.Executor(ctx).ExecContext(ctx, query,
		r.Year,
		r.PeriodStart,
		r.PeriodEnd,
		r.Label,
		r.InitialCount,
		r.CurrentCount,
		r.ReturnTarget,
		r.Died,
		r.Born,
		r.Sold,
		r.Notes,
		r.Obstacle,
		r.Solution,
		r.ReportDate,
		r.UpdatedAt,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("update report %s: %w", r.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update report %s: %w", r.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update report %s: %w", r.ID, store.ErrNotFound)
	}
	return nil
}

func (s *reportStore) Delete(ctx context.Context, id string) error {
	query := s.db.Dialect.Rebind(`DELETE FROM reports WHERE id = ?`)
	res, err := s.db.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete report %s: %w", id, store.ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*store.Report, error) {
	var r store.Report
	err := row.Scan(
		&r.ID,
		&r.ParticipantID,
		&r.Quarter,
		&r.Year,
		&r.PeriodStart,
		&r.PeriodEnd,
		&r.Label,
		&r.InitialCount,
		&r.CurrentCount,
		&r.ReturnTarget,
		&r.Died,
		&r.Born,
		&r.Sold,
		&r.Notes,
		&r.Obstacle,
		&r.Solution,
		&r.ReportDate,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanReportRows(rows *sql.Rows) ([]*store.Report, error) {
	result := make([]*store.Report, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
