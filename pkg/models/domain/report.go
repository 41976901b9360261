package domain

import (
	"fmt"
	"time"
)

// MaxQuarters is the length of a participant's program cycle.
const MaxQuarters = 8

// Report is a quarterly progress report (laporan triwulan).
type Report struct {
	ID            string
	ParticipantID string
	Quarter       int
	Year          int
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Label         string
	InitialCount  int
	CurrentCount  int
	ReturnTarget  int
	Died          int
	Born          int
	Sold          int
	Notes         string
	Obstacle      string
	Solution      string
	ReportDate    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// QuarterInfo describes the display period of a quarter.
type QuarterInfo struct {
	Number      int
	Year        int
	Label       string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// NextQuarter is the outcome of an eligibility check for a new report.
type NextQuarter struct {
	QuarterNumber   int
	QuarterInfo     *QuarterInfo
	CanCreate       bool
	ExistingReports []Report
}

// Prefill holds the counts a new report form starts with.
type Prefill struct {
	InitialCount int
	CurrentCount int
}

// QuarterLabel renders the display label of a quarter.
func QuarterLabel(n, year int) string {
	return fmt.Sprintf("Triwulan %d %d", n, year)
}

// CurrentCount applies the balance equation, floored at zero.
func CurrentCount(initial, born, died, sold int) int {
	current := initial + born - died - sold
	if current < 0 {
		return 0
	}
	return current
}

// CheckBalance verifies the counts of a report. The returned error is a
// *ValidationError; the died+sold rule is not bound to a single field.
func CheckBalance(initial, born, died, sold int) error {
	counts := []struct {
		field string
		value int
	}{
		{FieldInitialCount, initial},
		{FieldBorn, born},
		{FieldDied, died},
		{FieldSold, sold},
	}
	for _, c := range counts {
		if c.value < 0 {
			return &ValidationError{Field: c.field, Message: "must be a non-negative integer"}
		}
	}
	if died+sold > initial {
		return &ValidationError{Message: ErrMsgDiedSoldExceedInitial}
	}
	return nil
}

// Report field names, matching the API JSON keys.
const (
	FieldBorn         = "jumlah_lahir"
	FieldDied         = "jumlah_mati"
	FieldSold         = "jumlah_terjual"
	FieldCurrentCount = "jumlah_saat_ini"
	FieldReportDate   = "tanggal_laporan"
)

const ErrMsgDiedSoldExceedInitial = "jumlah mati dan terjual tidak boleh melebihi jumlah awal"

// AfterToday reports whether date falls on a later calendar day than now.
// Both values are compared by their own year, month and day.
func AfterToday(date, now time.Time) bool {
	dy, dm, dd := date.Date()
	ny, nm, nd := now.Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).After(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
}
