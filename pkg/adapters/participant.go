package adapters

import (
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/api"
	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/de-tools/ternak-atlas/pkg/models/store"
)

const DateLayout = "2006-01-02"

func MapStoreParticipantToDomain(p *store.Participant) *domain.Participant {
	if p == nil {
		return nil
	}

	return &domain.Participant{
		ID:                p.ID,
		FullName:          p.FullName,
		NIK:               p.NIK,
		Address:           p.Address,
		Phone:             p.Phone,
		Gender:            p.Gender,
		CycleStatus:       p.CycleStatus,
		PerformanceStatus: p.PerformanceStatus,
		EnrolledAt:        p.EnrolledAt,
		InitialCount:      p.InitialCount,
		ReturnTarget:      p.ReturnTarget,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func MapDomainParticipantToStore(p *domain.Participant) *store.Participant {
	return &store.Participant{
		ID:                p.ID,
		FullName:          p.FullName,
		NIK:               p.NIK,
		Address:           p.Address,
		Phone:             p.Phone,
		Gender:            p.Gender,
		CycleStatus:       p.CycleStatus,
		PerformanceStatus: p.PerformanceStatus,
		EnrolledAt:        p.EnrolledAt,
		InitialCount:      p.InitialCount,
		ReturnTarget:      p.ReturnTarget,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func MapDomainPatchToStore(p domain.ParticipantPatch, updatedAt time.Time) store.ParticipantPatch {
	return store.ParticipantPatch{
		FullName:          p.FullName,
		NIK:               p.NIK,
		Address:           p.Address,
		Phone:             p.Phone,
		Gender:            p.Gender,
		CycleStatus:       p.CycleStatus,
		PerformanceStatus: p.PerformanceStatus,
		EnrolledAt:        p.EnrolledAt,
		InitialCount:      p.InitialCount,
		ReturnTarget:      p.ReturnTarget,
		UpdatedAt:         updatedAt,
	}
}

func MapDomainParticipantToAPI(p domain.Participant) api.Participant {
	return api.Participant{
		ID:                p.ID,
		FullName:          p.FullName,
		NIK:               p.NIK,
		Address:           p.Address,
		Phone:             p.Phone,
		Gender:            p.Gender,
		CycleStatus:       p.CycleStatus,
		PerformanceStatus: p.PerformanceStatus,
		EnrolledAt:        formatDate(p.EnrolledAt),
		InitialCount:      p.InitialCount,
		ReturnTarget:      p.ReturnTarget,
	}
}

// MapAPIRequestToInput converts a registration request. A malformed
// enrollment date is reported as a validation error on that field.
func MapAPIRequestToInput(r api.ParticipantRequest) (domain.ParticipantInput, error) {
	enrolledAt, err := parseOptionalDate(r.EnrolledAt, domain.FieldEnrolledAt)
	if err != nil {
		return domain.ParticipantInput{}, err
	}

	in := domain.ParticipantInput{
		FullName:          deref(r.FullName),
		NIK:               deref(r.NIK),
		Address:           deref(r.Address),
		Phone:             deref(r.Phone),
		Gender:            deref(r.Gender),
		CycleStatus:       deref(r.CycleStatus),
		PerformanceStatus: deref(r.PerformanceStatus),
		InitialCount:      r.InitialCount,
		ReturnTarget:      r.ReturnTarget,
		CurrentCount:      r.CurrentCount,
	}
	if enrolledAt != nil {
		in.EnrolledAt = *enrolledAt
	}
	return in, nil
}

// MapAPIRequestToPatch converts an update request. CurrentCount is ignored.
func MapAPIRequestToPatch(r api.ParticipantRequest) (domain.ParticipantPatch, error) {
	enrolledAt, err := parseOptionalDate(r.EnrolledAt, domain.FieldEnrolledAt)
	if err != nil {
		return domain.ParticipantPatch{}, err
	}

	return domain.ParticipantPatch{
		FullName:          r.FullName,
		NIK:               r.NIK,
		Address:           r.Address,
		Phone:             r.Phone,
		Gender:            r.Gender,
		CycleStatus:       r.CycleStatus,
		PerformanceStatus: r.PerformanceStatus,
		EnrolledAt:        enrolledAt,
		InitialCount:      r.InitialCount,
		ReturnTarget:      r.ReturnTarget,
	}, nil
}

func parseOptionalDate(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Message: "expected format YYYY-MM-DD"}
	}
	return &t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
