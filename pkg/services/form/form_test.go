package form

import (
	"errors"
	"testing"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 7, 10, 16, 0, 0, 0, time.UTC)

func participant() *domain.Participant {
	return &domain.Participant{ID: "p-1", InitialCount: 10, ReturnTarget: 12}
}

func eligible(quarter int) *domain.NextQuarter {
	return &domain.NextQuarter{
		QuarterNumber: quarter,
		CanCreate:     true,
		QuarterInfo: &domain.QuarterInfo{
			Number:      quarter,
			Year:        2024,
			Label:       domain.QuarterLabel(quarter, 2024),
			PeriodStart: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

func filled(s State) State {
	return Apply(s, Values{
		Initial:    "10",
		Born:       "2",
		Died:       "1",
		Sold:       "3",
		ReportDate: "2024-07-01",
		Notes:      "sehat",
	})
}

func TestDeriveCurrent(t *testing.T) {
	assert.Equal(t, 8, DeriveCurrent(Values{Initial: "10", Born: "2", Died: "1", Sold: "3"}))
	assert.Equal(t, 0, DeriveCurrent(Values{Initial: "2", Died: "5"}))
	assert.Equal(t, 4, DeriveCurrent(Values{Initial: "4", Born: "abc"}))
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		errs := Validate(Values{Initial: "10", Born: "0", Died: "0", Sold: "0", ReportDate: "2024-07-10"}, now)
		assert.Empty(t, errs)
	})

	t.Run("missing and malformed fields", func(t *testing.T) {
		errs := Validate(Values{Initial: "", Born: "-1", Died: "x", Sold: "0", ReportDate: "10/07/2024"}, now)
		assert.Equal(t, msgRequired, errs[domain.FieldInitialCount])
		assert.Equal(t, msgNonNegative, errs[domain.FieldBorn])
		assert.Equal(t, msgNonNegative, errs[domain.FieldDied])
		assert.NotContains(t, errs, domain.FieldSold)
		assert.Equal(t, msgDateFormat, errs[domain.FieldReportDate])
		assert.NotContains(t, errs, FormErrorKey)
	})

	t.Run("died and sold exceed initial", func(t *testing.T) {
		errs := Validate(Values{Initial: "3", Born: "0", Died: "2", Sold: "2", ReportDate: "2024-07-01"}, now)
		assert.Equal(t, domain.ErrMsgDiedSoldExceedInitial, errs[FormErrorKey])
		assert.Len(t, errs, 1)
	})

	t.Run("report date", func(t *testing.T) {
		base := Values{Initial: "1", Born: "0", Died: "0", Sold: "0"}

		base.ReportDate = ""
		assert.Equal(t, msgRequired, Validate(base, now)[domain.FieldReportDate])

		base.ReportDate = "2024-07-11"
		assert.Equal(t, msgFutureDate, Validate(base, now)[domain.FieldReportDate])

		base.ReportDate = "2024-07-10"
		assert.NotContains(t, Validate(base, now), domain.FieldReportDate)
	})
}

func TestLoad(t *testing.T) {
	t.Run("eligible prefill", func(t *testing.T) {
		s := Load(New(participant()), eligible(2), domain.Prefill{InitialCount: 6, CurrentCount: 6})
		assert.Equal(t, PhaseEligible, s.Phase)
		assert.True(t, s.Editable())
		assert.Equal(t, "6", s.Values.Initial)
		assert.Equal(t, 6, s.Current)
	})

	t.Run("cycle complete", func(t *testing.T) {
		s := Load(New(participant()), &domain.NextQuarter{QuarterNumber: 9}, domain.Prefill{})
		assert.Equal(t, PhaseIneligible, s.Phase)
		assert.False(t, s.Editable())
		assert.Equal(t, ineligibleMessage, s.Message)

		_, _, err := BeginSubmit(filled(s), now)
		assert.ErrorIs(t, err, ErrNotEditable)
	})

	t.Run("no quarter info", func(t *testing.T) {
		s := Load(New(participant()), nil, domain.Prefill{})
		assert.Equal(t, PhaseIneligible, s.Phase)
		assert.Equal(t, unavailableMessage, s.Message)
	})
}

func TestSetField(t *testing.T) {
	s := Load(New(participant()), eligible(1), domain.Prefill{InitialCount: 10, CurrentCount: 10})

	s, err := SetField(s, domain.FieldBorn, "2")
	require.NoError(t, err)
	s, err = SetField(s, domain.FieldDied, "1")
	require.NoError(t, err)
	s, err = SetField(s, domain.FieldSold, "3")
	require.NoError(t, err)
	assert.Equal(t, 8, s.Current)

	s, err = SetField(s, FieldObstacle, "pakan")
	require.NoError(t, err)
	assert.Equal(t, "pakan", s.Values.Obstacle)

	_, err = SetField(s, "jumlah_saat_ini", "100")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSubmitFlow(t *testing.T) {
	t.Run("payload from quarter info", func(t *testing.T) {
		s := filled(Load(New(participant()), eligible(3), domain.Prefill{InitialCount: 10}))

		s, payload, err := BeginSubmit(s, now)
		require.NoError(t, err)
		require.NotNil(t, payload)
		assert.Equal(t, PhaseSubmitting, s.Phase)
		assert.True(t, s.InFlight)

		assert.Equal(t, "p-1", payload.ParticipantID)
		assert.Equal(t, 3, payload.Quarter)
		assert.Equal(t, 2024, payload.Year)
		assert.Equal(t, "Triwulan 3 2024", payload.Label)
		assert.Equal(t, 8, payload.CurrentCount)
		assert.Equal(t, 12, payload.ReturnTarget)
		assert.Equal(t, "sehat", payload.Notes)
		assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), payload.ReportDate)

		_, again, err := BeginSubmit(s, now)
		assert.ErrorIs(t, err, ErrSubmitInFlight)
		assert.Nil(t, again)

		done := CompleteSubmit(s, nil)
		assert.Equal(t, PhaseSuccess, done.Phase)
		assert.False(t, done.InFlight)
	})

	t.Run("invalid form is not submitted", func(t *testing.T) {
		s := Load(New(participant()), eligible(1), domain.Prefill{InitialCount: 3})
		s = Apply(s, Values{Initial: "3", Born: "0", Died: "2", Sold: "2", ReportDate: "2024-07-01"})

		s, payload, err := BeginSubmit(s, now)
		assert.ErrorIs(t, err, ErrInvalid)
		assert.Nil(t, payload)
		assert.Equal(t, PhaseEligible, s.Phase)
		assert.Contains(t, s.Errors, FormErrorKey)
	})

	t.Run("failure keeps the form editable", func(t *testing.T) {
		s := filled(Load(New(participant()), eligible(1), domain.Prefill{InitialCount: 10}))
		s, _, err := BeginSubmit(s, now)
		require.NoError(t, err)

		s = CompleteSubmit(s, errors.New("database unavailable"))
		assert.Equal(t, PhaseFailure, s.Phase)
		assert.Equal(t, "database unavailable", s.Message)
		assert.True(t, s.Editable())
		assert.Equal(t, "10", s.Values.Initial)

		_, payload, err := BeginSubmit(s, now)
		require.NoError(t, err)
		assert.NotNil(t, payload)
	})

	t.Run("defaults without quarter info", func(t *testing.T) {
		s := filled(New(nil))
		s.Phase = PhaseEligible

		_, payload, err := BeginSubmit(s, now)
		require.NoError(t, err)
		assert.Equal(t, 1, payload.Quarter)
		assert.Equal(t, 2024, payload.Year)
		assert.Equal(t, "Triwulan 1 2024", payload.Label)
		assert.Empty(t, payload.ParticipantID)
	})

	t.Run("editing keeps the stored quarter", func(t *testing.T) {
		existing := domain.Report{
			ID:            "r-1",
			ParticipantID: "p-1",
			Quarter:       4,
			Year:          2023,
			Label:         "Triwulan 4 2023",
			InitialCount:  10,
			Born:          1,
			ReportDate:    time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
		}
		s := LoadExisting(New(participant()), existing)
		assert.Equal(t, "2023-12-01", s.Values.ReportDate)
		assert.Equal(t, 11, s.Current)

		s, err := SetField(s, domain.FieldSold, "5")
		require.NoError(t, err)

		_, payload, err := BeginSubmit(s, now)
		require.NoError(t, err)
		assert.Equal(t, "r-1", payload.ID)
		assert.Equal(t, 4, payload.Quarter)
		assert.Equal(t, 2023, payload.Year)
		assert.Equal(t, "Triwulan 4 2023", payload.Label)
		assert.Equal(t, 6, payload.CurrentCount)
	})
}
