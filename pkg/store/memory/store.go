// Package memory provides in-memory participant and report stores used by
// tests and ephemeral runs. Both stores share one lock.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/ternak-atlas/pkg/models/store"
	"github.com/de-tools/ternak-atlas/pkg/store/participants"
	"github.com/de-tools/ternak-atlas/pkg/store/reports"
)

var (
	_ participants.Store = (*ParticipantStore)(nil)
	_ reports.Store      = (*ReportStore)(nil)
)

type state struct {
	mu           sync.RWMutex
	participants map[string]store.Participant
	reports      map[string]store.Report
}

type Store struct {
	participants *ParticipantStore
	reports      *ReportStore
}

func NewStore() *Store {
	s := &state{
		participants: make(map[string]store.Participant),
		reports:      make(map[string]store.Report),
	}
	return &Store{
		participants: &ParticipantStore{state: s},
		reports:      &ReportStore{state: s},
	}
}

func (s *Store) Participants() *ParticipantStore { return s.participants }

func (s *Store) Reports() *ReportStore { return s.reports }

type ParticipantStore struct {
	*state
}

func (s *ParticipantStore) Insert(_ context.Context, p *store.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[p.ID]; ok {
		return fmt.Errorf("insert participant %s: %w", p.ID, store.ErrDuplicate)
	}
	if s.nikTakenLocked(p.NIK, "") {
		return fmt.Errorf("insert participant: %w", store.ErrDuplicate)
	}
	s.participants[p.ID] = *p
	return nil
}

func (s *ParticipantStore) Get(_ context.Context, id string) (*store.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[id]
	if !ok {
		return nil, fmt.Errorf("get participant %s: %w", id, store.ErrNotFound)
	}
	return &p, nil
}

func (s *ParticipantStore) List(_ context.Context) ([]*store.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*store.Participant, 0, len(s.participants))
	for _, p := range s.participants {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *ParticipantStore) FindByNIK(_ context.Context, nik string) (*store.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.participants {
		if p.NIK == nik {
			p := p
			return &p, nil
		}
	}
	return nil, fmt.Errorf("find participant by nik: %w", store.ErrNotFound)
}

func (s *ParticipantStore) Update(
	_ context.Context,
	id string,
	patch store.ParticipantPatch,
) (*store.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[id]
	if !ok {
		return nil, fmt.Errorf("update participant %s: %w", id, store.ErrNotFound)
	}
	if patch.NIK != nil && s.nikTakenLocked(*patch.NIK, id) {
		return nil, fmt.Errorf("update participant %s: %w", id, store.ErrDuplicate)
	}

	applyPatch(&p, patch)
	s.participants[id] = p
	return &p, nil
}

func (s *ParticipantStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[id]; !ok {
		return fmt.Errorf("delete participant %s: %w", id, store.ErrNotFound)
	}
	delete(s.participants, id)
	return nil
}

func (s *state) nikTakenLocked(nik, exceptID string) bool {
	for id, p := range s.participants {
		if p.NIK == nik && id != exceptID {
			return true
		}
	}
	return false
}

func applyPatch(p *store.Participant, patch store.ParticipantPatch) {
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.NIK != nil {
		p.NIK = *patch.NIK
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.CycleStatus != nil {
		p.CycleStatus = *patch.CycleStatus
	}
	if patch.PerformanceStatus != nil {
		p.PerformanceStatus = *patch.PerformanceStatus
	}
	if patch.EnrolledAt != nil {
		p.EnrolledAt = *patch.EnrolledAt
	}
	if patch.InitialCount != nil {
		p.InitialCount = *patch.InitialCount
	}
	if patch.ReturnTarget != nil {
		p.ReturnTarget = *patch.ReturnTarget
	}
	p.UpdatedAt = patch.UpdatedAt
}

type ReportStore struct {
	*state
}

func (s *ReportStore) Insert(_ context.Context, r *store.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[r.ID]; ok {
		return fmt.Errorf("insert report %s: %w", r.ID, store.ErrDuplicate)
	}
	for _, existing := range s.reports {
		if existing.ParticipantID == r.ParticipantID && existing.Quarter == r.Quarter {
			return fmt.Errorf("insert report: %w", store.ErrDuplicate)
		}
	}
	s.reports[r.ID] = *r
	return nil
}

func (s *ReportStore) Get(_ context.Context, id string) (*store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, fmt.Errorf("get report %s: %w", id, store.ErrNotFound)
	}
	return &r, nil
}

func (s *ReportStore) List(_ context.Context) ([]*store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterLocked(func(store.Report) bool { return true }), nil
}

func (s *ReportStore) ListByParticipant(_ context.Context, participantID string) ([]*store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterLocked(func(r store.Report) bool { return r.ParticipantID == participantID }), nil
}

func (s *ReportStore) Update(_ context.Context, r *store.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.reports[r.ID]
	if !ok {
		return fmt.Errorf("update report %s: %w", r.ID, store.ErrNotFound)
	}
	updated := *r
	updated.ParticipantID = existing.ParticipantID
	updated.Quarter = existing.Quarter
	updated.CreatedAt = existing.CreatedAt
	s.reports[r.ID] = updated
	return nil
}

func (s *ReportStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return fmt.Errorf("delete report %s: %w", id, store.ErrNotFound)
	}
	delete(s.reports, id)
	return nil
}

func (s *state) filterLocked(keep func(store.Report) bool) []*store.Report {
	out := make([]*store.Report, 0)
	for _, r := range s.reports {
		if keep(r) {
			r := r
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ParticipantID != out[j].ParticipantID {
			return out[i].ParticipantID < out[j].ParticipantID
		}
		return out[i].Quarter < out[j].Quarter
	})
	return out
}
