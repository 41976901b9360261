package participant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/ternak-atlas/pkg/models/store"
	"github.com/de-tools/ternak-atlas/pkg/store/participants"
	"github.com/de-tools/ternak-atlas/pkg/store/sqldb"
)

const participantColumns = `id, full_name, nik, address, phone, gender, cycle_status,
	performance_status, enrolled_at, initial_count, return_target, created_at, updated_at`

type participantStore struct {
	db *sqldb.DB
}

func NewStore(db *sqldb.DB) (participants.Store, error) {
	if db == nil || db.DB == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &participantStore{
		db: db,
	}, nil
}

func (s *participantStore) Insert(ctx context.Context, p *store.Participant) error {
	query := s.db.Dialect.Rebind(`
		INSERT INTO participants (` + participantColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.db.Executor(ctx).ExecContext(ctx, query,
		p.ID,
		p.FullName,
		p.NIK,
		p.Address,
		p.Phone,
		p.Gender,
		p.CycleStatus,
		p.PerformanceStatus,
		p.EnrolledAt,
		p.InitialCount,
		p.ReturnTarget,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if s.db.Dialect.IsUniqueViolation(err) {
			return fmt.Errorf("insert participant: %w", store.ErrDuplicate)
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

func (s *participantStore) Get(ctx context.Context, id string) (*store.Participant, error) {
	query := s.db.Dialect.Rebind(`SELECT ` + participantColumns + ` FROM participants WHERE id = ?`)
	row := s.db.Executor(ctx).QueryRowContext(ctx, query, id)

	p, err := scanParticipant(row)
	if err != nil {
		return nil, fmt.Errorf("get participant %s: %w", id, err)
	}
	return p, nil
}

func (s *participantStore) FindByNIK(ctx context.Context, nik string) (*store.Participant, error) {
	query := s.db.Dialect.Rebind(`SELECT ` + participantColumns + ` FROM participants WHERE nik = ?`)
	row := s.db.Executor(ctx).QueryRowContext(ctx, query, nik)

	p, err := scanParticipant(row)
	if err != nil {
		return nil, fmt.Errorf("find participant by nik: %w", err)
	}
	return p, nil
}

func (s *participantStore) List(ctx context.Context) ([]*store.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants ORDER BY created_at, id`
	rows, err := s.db.Executor(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	result := make([]*store.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return result, nil
}

func (s *participantStore) Update(
	ctx context.Context,
	id string,
	patch store.ParticipantPatch,
) (*store.Participant, error) {
	sets, args := patchAssignments(patch)
	query := s.db.Dialect.Rebind(fmt.Sprintf(
		`UPDATE participants SET %s WHERE id = ?`, strings.Join(sets, ", "),
	))
	args = append(args, id)

	res, err := s.db.Executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if s.db.Dialect.IsUniqueViolation(err) {
			return nil, fmt.Errorf("update participant %s: %w", id, store.ErrDuplicate)
		}
		return nil, fmt.Errorf("update participant %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update participant %s: %w", id, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("update participant %s: %w", id, store.ErrNotFound)
	}

	return s.Get(ctx, id)
}

func (s *participantStore) Delete(ctx context.Context, id string) error {
	query := s.db.Dialect.Rebind(`DELETE FROM participants WHERE id = ?`)
	res, err := s.db.Executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete participant %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete participant %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete participant %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// patchAssignments builds the SET list for the non-nil patch fields.
// updated_at is always written.
func patchAssignments(patch store.ParticipantPatch) ([]string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.NIK != nil {
		add("nik", *patch.NIK)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Gender != nil {
		add("gender", *patch.Gender)
	}
	if patch.CycleStatus != nil {
		add("cycle_status", *patch.CycleStatus)
	}
	if patch.PerformanceStatus != nil {
		add("performance_status", *patch.PerformanceStatus)
	}
	if patch.EnrolledAt != nil {
		add("enrolled_at", *patch.EnrolledAt)
	}
	if patch.InitialCount != nil {
		add("initial_count", *patch.InitialCount)
	}
	if patch.ReturnTarget != nil {
		add("return_target", *patch.ReturnTarget)
	}
	add("updated_at", patch.UpdatedAt)

	return sets, args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row scanner) (*store.Participant, error) {
	var p store.Participant
	err := row.Scan(
		&p.ID,
		&p.FullName,
		&p.NIK,
		&p.Address,
		&p.Phone,
		&p.Gender,
		&p.CycleStatus,
		&p.PerformanceStatus,
		&p.EnrolledAt,
		&p.InitialCount,
		&p.ReturnTarget,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
