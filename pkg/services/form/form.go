// Package form holds the quarterly report form as an explicit state record.
// Every transition is a pure function returning a new State; nothing here
// touches storage. Callers persist the payload returned by BeginSubmit and
// report the outcome back through CompleteSubmit.
package form

import (
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
)

type Phase string

const (
	PhaseLoading    Phase = "loading-quarter-info"
	PhaseIneligible Phase = "ineligible"
	PhaseEligible   Phase = "eligible"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseFailure    Phase = "failure"
)

var (
	ErrSubmitInFlight = errors.New("report submission already in progress")
	ErrNotEditable    = errors.New("report form is not editable")
	ErrInvalid        = errors.New("report form has validation errors")
	ErrUnknownField   = errors.New("unknown report form field")
)

const (
	ineligibleMessage  = "Peternak telah menyelesaikan 8 triwulan. Laporan baru tidak dapat dibuat."
	unavailableMessage = "Informasi triwulan tidak tersedia."
)

// Values are the operator inputs, kept as typed.
type Values struct {
	Initial    string
	Born       string
	Died       string
	Sold       string
	ReportDate string
	Obstacle   string
	Solution   string
	Notes      string
}

type State struct {
	Phase       Phase
	Participant *domain.Participant
	Quarter     *domain.NextQuarter
	Editing     *domain.Report
	Values      Values
	Current     int
	Errors      map[string]string
	Message     string
	InFlight    bool
}

// Editable reports whether operator input is accepted.
func (s State) Editable() bool {
	return s.Phase == PhaseEligible || s.Phase == PhaseFailure
}

func New(participant *domain.Participant) State {
	return State{
		Phase:       PhaseLoading,
		Participant: participant,
		Errors:      map[string]string{},
	}
}

// Load applies the eligibility outcome. A nil outcome or a completed cycle
// leaves the form ineligible for good.
func Load(s State, next *domain.NextQuarter, prefill domain.Prefill) State {
	s.Errors = map[string]string{}
	s.Quarter = next

	switch {
	case next == nil:
		s.Phase = PhaseIneligible
		s.Message = unavailableMessage
	case !next.CanCreate:
		s.Phase = PhaseIneligible
		s.Message = ineligibleMessage
	default:
		s.Phase = PhaseEligible
		s.Message = ""
		s.Values.Initial = fmt.Sprint(prefill.InitialCount)
		s.Current = prefill.CurrentCount
	}
	return s
}

// LoadExisting opens a stored report for editing.
func LoadExisting(s State, r domain.Report) State {
	s.Phase = PhaseEligible
	s.Editing = &r
	s.Errors = map[string]string{}
	s.Message = ""
	s.Values = Values{
		Initial:    fmt.Sprint(r.InitialCount),
		Born:       fmt.Sprint(r.Born),
		Died:       fmt.Sprint(r.Died),
		Sold:       fmt.Sprint(r.Sold),
		ReportDate: formatDate(r.ReportDate),
		Obstacle:   r.Obstacle,
		Solution:   r.Solution,
		Notes:      r.Notes,
	}
	s.Current = DeriveCurrent(s.Values)
	return s
}

// SetField updates one input. The derived current count is recomputed.
func SetField(s State, field, value string) (State, error) {
	switch field {
	case domain.FieldInitialCount:
		s.Values.Initial = value
	case domain.FieldBorn:
		s.Values.Born = value
	case domain.FieldDied:
		s.Values.Died = value
	case domain.FieldSold:
		s.Values.Sold = value
	case domain.FieldReportDate:
		s.Values.ReportDate = value
	case FieldObstacle:
		s.Values.Obstacle = value
	case FieldSolution:
		s.Values.Solution = value
	case FieldNotes:
		s.Values.Notes = value
	default:
		return s, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	s.Current = DeriveCurrent(s.Values)
	return s, nil
}

// Apply replaces every input at once.
func Apply(s State, v Values) State {
	s.Values = v
	s.Current = DeriveCurrent(v)
	return s
}

// BeginSubmit validates the form and, when valid, moves it to submitting and
// returns the payload to persist. A second call while a submission is in
// flight fails with ErrSubmitInFlight.
func BeginSubmit(s State, now time.Time) (State, *domain.Report, error) {
	if s.InFlight {
		return s, nil, ErrSubmitInFlight
	}
	if !s.Editable() {
		return s, nil, ErrNotEditable
	}

	s.Errors = Validate(s.Values, now)
	if len(s.Errors) > 0 {
		return s, nil, ErrInvalid
	}

	payload := BuildPayload(s, now)
	s.Phase = PhaseSubmitting
	s.InFlight = true
	s.Message = ""
	return s, &payload, nil
}

// CompleteSubmit records the persistence outcome. On failure the message is
// surfaced and the form stays editable.
func CompleteSubmit(s State, err error) State {
	s.InFlight = false
	if err != nil {
		s.Phase = PhaseFailure
		s.Message = err.Error()
		return s
	}
	s.Phase = PhaseSuccess
	s.Message = ""
	return s
}

// BuildPayload assembles the report to persist. Quarter data comes from the
// report being edited, else from the eligibility outcome, else quarter 1 of
// the current year.
func BuildPayload(s State, now time.Time) domain.Report {
	r := domain.Report{
		Quarter: 1,
		Year:    now.Year(),
	}
	if s.Participant != nil {
		r.ParticipantID = s.Participant.ID
		r.ReturnTarget = s.Participant.ReturnTarget
	}

	switch {
	case s.Editing != nil:
		r.ID = s.Editing.ID
		r.ParticipantID = s.Editing.ParticipantID
		r.Quarter = s.Editing.Quarter
		r.Year = s.Editing.Year
		r.PeriodStart = s.Editing.PeriodStart
		r.PeriodEnd = s.Editing.PeriodEnd
		r.Label = s.Editing.Label
	case s.Quarter != nil && s.Quarter.QuarterInfo != nil:
		info := s.Quarter.QuarterInfo
		r.Quarter = info.Number
		r.Year = info.Year
		r.PeriodStart = info.PeriodStart
		r.PeriodEnd = info.PeriodEnd
		r.Label = info.Label
	}
	if r.Label == "" {
		r.Label = domain.QuarterLabel(r.Quarter, r.Year)
	}

	r.InitialCount = intOrZero(s.Values.Initial)
	r.Born = intOrZero(s.Values.Born)
	r.Died = intOrZero(s.Values.Died)
	r.Sold = intOrZero(s.Values.Sold)
	r.CurrentCount = DeriveCurrent(s.Values)
	r.Obstacle = s.Values.Obstacle
	r.Solution = s.Values.Solution
	r.Notes = s.Values.Notes
	if d, err := parseDate(s.Values.ReportDate); err == nil {
		r.ReportDate = d
	}
	return r
}
