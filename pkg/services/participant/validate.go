package participant

import (
	"strings"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
)

// validateInput checks the required registration fields in declaration
// order and reports the first one that is missing.
func validateInput(in domain.ParticipantInput) error {
	required := []struct {
		field   string
		present bool
	}{
		{domain.FieldFullName, notBlank(in.FullName)},
		{domain.FieldNIK, notBlank(in.NIK)},
		{domain.FieldAddress, notBlank(in.Address)},
		{domain.FieldPhone, notBlank(in.Phone)},
		{domain.FieldGender, notBlank(in.Gender)},
		{domain.FieldCycleStatus, notBlank(in.CycleStatus)},
		{domain.FieldEnrolledAt, !in.EnrolledAt.IsZero()},
		{domain.FieldInitialCount, in.InitialCount != nil},
		{domain.FieldReturnTarget, in.ReturnTarget != nil},
	}

	for _, r := range required {
		if !r.present {
			return &domain.ValidationError{Field: r.field}
		}
	}

	if *in.InitialCount < 0 {
		return &domain.ValidationError{Field: domain.FieldInitialCount, Message: "must be a non-negative integer"}
	}
	if *in.ReturnTarget < 0 {
		return &domain.ValidationError{Field: domain.FieldReturnTarget, Message: "must be a non-negative integer"}
	}
	return nil
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
