package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/adapters"
	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/de-tools/ternak-atlas/pkg/models/store"
	"github.com/de-tools/ternak-atlas/pkg/store/participants"
	"github.com/de-tools/ternak-atlas/pkg/store/reports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const cycleCompleteMessage = "peternak telah menyelesaikan 8 triwulan; laporan baru tidak dapat dibuat"

type Service interface {
	GetNextAllowedQuarter(ctx context.Context, participantID string) (*domain.NextQuarter, error)
	CalculatePrefillData(last *domain.Report, participant *domain.Participant) domain.Prefill
	Create(ctx context.Context, payload domain.Report) (*domain.Report, error)
	Update(ctx context.Context, id string, payload domain.Report) (*domain.Report, error)
	Get(ctx context.Context, id string) (*domain.Report, error)
	ListByParticipant(ctx context.Context, participantID string) ([]domain.Report, error)
	ListAll(ctx context.Context) ([]domain.Report, error)
	Delete(ctx context.Context, id string) (bool, error)
	Summary(ctx context.Context) (*domain.ProgramSummary, error)
}

// TxRunner runs fn inside a storage transaction carried by ctx.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Option func(*DefaultService)

func WithClock(now func() time.Time) Option {
	return func(s *DefaultService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *DefaultService) { s.newID = newID }
}

func WithTransactions(tx TxRunner) Option {
	return func(s *DefaultService) { s.tx = tx }
}

type DefaultService struct {
	participants participants.Store
	reports      reports.Store
	tx           TxRunner
	now          func() time.Time
	newID        func() string
}

func NewService(ps participants.Store, rs reports.Store, opts ...Option) *DefaultService {
	s := &DefaultService{
		participants: ps,
		reports:      rs,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DefaultService) GetNextAllowedQuarter(ctx context.Context, participantID string) (*domain.NextQuarter, error) {
	p, existing, err := s.participantHistory(ctx, participantID)
	if err != nil {
		return nil, err
	}
	nq := NextQuarter(p.EnrolledAt, existing, s.now())
	return &nq, nil
}

func (s *DefaultService) CalculatePrefillData(last *domain.Report, participant *domain.Participant) domain.Prefill {
	return CalculatePrefillData(last, participant)
}

// Create persists a new report for the next allowed quarter. The current
// count is always derived from the other counts.
func (s *DefaultService) Create(ctx context.Context, payload domain.Report) (*domain.Report, error) {
	var created *domain.Report
	err := s.inTx(ctx, func(ctx context.Context) error {
		p, existing, err := s.participantHistory(ctx, payload.ParticipantID)
		if err != nil {
			return err
		}

		now := s.now()
		nq := NextQuarter(p.EnrolledAt, existing, now)
		if !nq.CanCreate {
			return &domain.ConflictError{Message: cycleCompleteMessage}
		}
		if payload.Quarter != nq.QuarterNumber {
			return &domain.ConflictError{Message: fmt.Sprintf(
				"triwulan %d tidak dapat dibuat; triwulan berikutnya adalah %d",
				payload.Quarter, nq.QuarterNumber,
			)}
		}
		if err := validateReport(payload, now); err != nil {
			return err
		}

		r := payload
		r.ID = s.newID()
		r.CurrentCount = domain.CurrentCount(r.InitialCount, r.Born, r.Died, r.Sold)
		if r.Year == 0 {
			r.Year = nq.QuarterInfo.Year
		}
		if r.PeriodStart.IsZero() {
			r.PeriodStart = nq.QuarterInfo.PeriodStart
		}
		if r.PeriodEnd.IsZero() {
			r.PeriodEnd = nq.QuarterInfo.PeriodEnd
		}
		if r.Label == "" {
			r.Label = domain.QuarterLabel(r.Quarter, r.Year)
		}
		r.CreatedAt = now
		r.UpdatedAt = now

		if err := s.reports.Insert(ctx, adapters.MapDomainReportToStore(&r)); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return &domain.ConflictError{Message: fmt.Sprintf("laporan triwulan %d sudah ada", r.Quarter)}
			}
			return &domain.StoreError{Op: "create report", Err: err}
		}
		created = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("participant_id", created.ParticipantID).
		Str("report_id", created.ID).
		Int("quarter", created.Quarter).
		Msg("report created")
	return created, nil
}

// Update edits a report in place. Owner, quarter and creation time are kept
// from the stored record.
func (s *DefaultService) Update(ctx context.Context, id string, payload domain.Report) (*domain.Report, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := validateReport(payload, now); err != nil {
		return nil, err
	}

	r := payload
	r.ID = existing.ID
	r.ParticipantID = existing.ParticipantID
	r.Quarter = existing.Quarter
	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = now
	r.CurrentCount = domain.CurrentCount(r.InitialCount, r.Born, r.Died, r.Sold)
	if r.Year == 0 {
		r.Year = existing.Year
	}
	if r.PeriodStart.IsZero() {
		r.PeriodStart = existing.PeriodStart
	}
	if r.PeriodEnd.IsZero() {
		r.PeriodEnd = existing.PeriodEnd
	}
	if r.Label == "" {
		r.Label = existing.Label
	}

	if err := s.reports.Update(ctx, adapters.MapDomainReportToStore(&r)); err != nil {
		return nil, s.mapStoreError("update report", id, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("report_id", id).
		Msg("report updated")
	return &r, nil
}

func (s *DefaultService) Get(ctx context.Context, id string) (*domain.Report, error) {
	row, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError("get report", id, err)
	}
	return adapters.MapStoreReportToDomain(row), nil
}

func (s *DefaultService) ListByParticipant(ctx context.Context, participantID string) ([]domain.Report, error) {
	_, existing, err := s.participantHistory(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *DefaultService) ListAll(ctx context.Context) ([]domain.Report, error) {
	rows, err := s.reports.List(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "list reports", Err: err}
	}
	return adapters.MapStoreReportsToDomain(rows), nil
}

// Delete removes a report. Only the participant's latest quarter may be
// removed so the remaining quarters stay contiguous from 1.
func (s *DefaultService) Delete(ctx context.Context, id string) (bool, error) {
	err := s.inTx(ctx, func(ctx context.Context) error {
		row, err := s.reports.Get(ctx, id)
		if err != nil {
			return s.mapStoreError("get report", id, err)
		}

		rows, err := s.reports.ListByParticipant(ctx, row.ParticipantID)
		if err != nil {
			return &domain.StoreError{Op: "list reports", Err: err}
		}
		latest := LastReport(adapters.MapStoreReportsToDomain(rows))
		if latest != nil && latest.Quarter > row.Quarter {
			return &domain.ConflictError{Message: fmt.Sprintf(
				"triwulan %d tidak dapat dihapus; hapus triwulan %d terlebih dahulu",
				row.Quarter, latest.Quarter,
			)}
		}

		if err := s.reports.Delete(ctx, id); err != nil {
			return s.mapStoreError("delete report", id, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	zerolog.Ctx(ctx).Info().
		Str("report_id", id).
		Msg("report deleted")
	return true, nil
}

func (s *DefaultService) Summary(ctx context.Context) (*domain.ProgramSummary, error) {
	rows, err := s.participants.List(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "list participants", Err: err}
	}
	ps := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		ps = append(ps, *adapters.MapStoreParticipantToDomain(row))
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := Summarize(ps, all)
	return &summary, nil
}

func (s *DefaultService) participantHistory(
	ctx context.Context,
	participantID string,
) (*domain.Participant, []domain.Report, error) {
	row, err := s.participants.Get(ctx, participantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, &domain.NotFoundError{Entity: "participant", ID: participantID}
		}
		return nil, nil, &domain.StoreError{Op: "get participant", Err: err}
	}

	rows, err := s.reports.ListByParticipant(ctx, participantID)
	if err != nil {
		return nil, nil, &domain.StoreError{Op: "list reports", Err: err}
	}
	return adapters.MapStoreParticipantToDomain(row), adapters.MapStoreReportsToDomain(rows), nil
}

func (s *DefaultService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.InTx(ctx, fn)
}

func (s *DefaultService) mapStoreError(op, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &domain.NotFoundError{Entity: "report", ID: id}
	}
	return &domain.StoreError{Op: op, Err: err}
}

func validateReport(r domain.Report, now time.Time) error {
	if err := domain.CheckBalance(r.InitialCount, r.Born, r.Died, r.Sold); err != nil {
		return err
	}
	if r.ReportDate.IsZero() {
		return &domain.ValidationError{Field: domain.FieldReportDate}
	}
	if domain.AfterToday(r.ReportDate, now) {
		return &domain.ValidationError{Field: domain.FieldReportDate, Message: "tidak boleh melebihi tanggal hari ini"}
	}
	return nil
}
