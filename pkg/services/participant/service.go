package participant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/adapters"
	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/de-tools/ternak-atlas/pkg/models/store"
	"github.com/de-tools/ternak-atlas/pkg/store/participants"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const duplicateNIKMessage = "NIK sudah terdaftar pada peternak lain"

type Service interface {
	Create(ctx context.Context, in domain.ParticipantInput) (*domain.Participant, error)
	ListAll(ctx context.Context) ([]domain.Participant, error)
	GetByID(ctx context.Context, id string) (*domain.Participant, error)
	Update(ctx context.Context, id string, patch domain.ParticipantPatch) (*domain.Participant, error)
	Delete(ctx context.Context, id string) (bool, error)
	SetPerformanceStatus(ctx context.Context, id string, status string) (*domain.Participant, error)
}

type Option func(*DefaultService)

func WithClock(now func() time.Time) Option {
	return func(s *DefaultService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *DefaultService) { s.newID = newID }
}

type DefaultService struct {
	store participants.Store
	now   func() time.Time
	newID func() string
}

func NewService(ps participants.Store, opts ...Option) *DefaultService {
	s := &DefaultService{
		store: ps,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a participant. Any current headcount in the input is
// dropped; it belongs to reports only.
func (s *DefaultService) Create(ctx context.Context, in domain.ParticipantInput) (*domain.Participant, error) {
	logger := zerolog.Ctx(ctx)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	if err := s.ensureNIKAvailable(ctx, in.NIK, ""); err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Participant{
		ID:                s.newID(),
		FullName:          in.FullName,
		NIK:               in.NIK,
		Address:           in.Address,
		Phone:             in.Phone,
		Gender:            in.Gender,
		CycleStatus:       in.CycleStatus,
		PerformanceStatus: in.PerformanceStatus,
		EnrolledAt:        in.EnrolledAt,
		InitialCount:      *in.InitialCount,
		ReturnTarget:      *in.ReturnTarget,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.Insert(ctx, adapters.MapDomainParticipantToStore(p)); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &domain.ConflictError{Message: duplicateNIKMessage}
		}
		return nil, &domain.StoreError{Op: "create participant", Err: err}
	}

	logger.Info().
		Str("participant_id", p.ID).
		Msg("participant registered")
	return p, nil
}

func (s *DefaultService) ListAll(ctx context.Context) ([]domain.Participant, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "list participants", Err: err}
	}

	result := make([]domain.Participant, 0, len(rows))
	for _, row := range rows {
		result = append(result, *adapters.MapStoreParticipantToDomain(row))
	}
	return result, nil
}

func (s *DefaultService) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	row, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError("get participant", id, err)
	}
	return adapters.MapStoreParticipantToDomain(row), nil
}

// Update merges patch into the stored participant and returns the merged view.
func (s *DefaultService) Update(
	ctx context.Context,
	id string,
	patch domain.ParticipantPatch,
) (*domain.Participant, error) {
	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	if patch.NIK != nil {
		if strings.TrimSpace(*patch.NIK) == "" {
			return nil, &domain.ValidationError{Field: domain.FieldNIK}
		}
		if err := s.ensureNIKAvailable(ctx, *patch.NIK, id); err != nil {
			return nil, err
		}
	}

	row, err := s.store.Update(ctx, id, adapters.MapDomainPatchToStore(patch, s.now()))
	if err != nil {
		return nil, s.mapStoreError("update participant", id, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("participant_id", id).
		Msg("participant updated")
	return adapters.MapStoreParticipantToDomain(row), nil
}

func (s *DefaultService) Delete(ctx context.Context, id string) (bool, error) {
	if err := s.store.Delete(ctx, id); err != nil {
		return false, s.mapStoreError("delete participant", id, err)
	}

	zerolog.Ctx(ctx).Info().
		Str("participant_id", id).
		Msg("participant deleted")
	return true, nil
}

func (s *DefaultService) SetPerformanceStatus(
	ctx context.Context,
	id string,
	status string,
) (*domain.Participant, error) {
	patch := store.ParticipantPatch{
		PerformanceStatus: &status,
		UpdatedAt:         s.now(),
	}
	row, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, s.mapStoreError("set performance status", id, err)
	}
	return adapters.MapStoreParticipantToDomain(row), nil
}

// ensureNIKAvailable fails with a ConflictError when nik belongs to a
// participant other than exceptID. The check races with concurrent writers;
// the store's unique constraint is the final arbiter.
func (s *DefaultService) ensureNIKAvailable(ctx context.Context, nik, exceptID string) error {
	existing, err := s.store.FindByNIK(ctx, nik)
	switch {
	case err == nil:
		if existing.ID != exceptID {
			return &domain.ConflictError{Message: duplicateNIKMessage}
		}
		return nil
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return &domain.StoreError{Op: "check nik", Err: err}
	}
}

func (s *DefaultService) mapStoreError(op, id string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return &domain.NotFoundError{Entity: "participant", ID: id}
	case errors.Is(err, store.ErrDuplicate):
		return &domain.ConflictError{Message: duplicateNIKMessage}
	default:
		return &domain.StoreError{Op: op, Err: err}
	}
}
