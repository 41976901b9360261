package report

import (
	"sort"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/models/domain"
)

// NextQuarter determines the quarter a new report may be filed for.
//
// The next quarter is one past the number of existing reports; once all
// domain.MaxQuarters quarters are reported the cycle is complete and
// CanCreate is false. The nominal period of an eligible quarter runs from the
// enrollment date (first quarter) or the day after the previous period's end,
// up to now. The year is always taken from now.
func NextQuarter(enrolledAt time.Time, existing []domain.Report, now time.Time) domain.NextQuarter {
	sorted := sortByQuarter(existing)
	next := len(sorted) + 1

	result := domain.NextQuarter{
		QuarterNumber:   next,
		ExistingReports: sorted,
	}
	if next > domain.MaxQuarters {
		return result
	}

	start := startOfDay(enrolledAt)
	if last := LastReport(sorted); last != nil && !last.PeriodEnd.IsZero() {
		start = startOfDay(last.PeriodEnd).AddDate(0, 0, 1)
	}

	year := now.Year()
	result.CanCreate = true
	result.QuarterInfo = &domain.QuarterInfo{
		Number:      next,
		Year:        year,
		Label:       domain.QuarterLabel(next, year),
		PeriodStart: start,
		PeriodEnd:   startOfDay(now),
	}
	return result
}

// CalculatePrefillData returns the starting counts of a new report: the
// previous report's current count, or the participant's initial count when
// there is no previous report.
func CalculatePrefillData(last *domain.Report, participant *domain.Participant) domain.Prefill {
	initial := 0
	switch {
	case last != nil:
		initial = last.CurrentCount
	case participant != nil:
		initial = participant.InitialCount
	}
	return domain.Prefill{
		InitialCount: initial,
		CurrentCount: initial,
	}
}

// LastReport returns the report with the highest quarter number, or nil.
func LastReport(reports []domain.Report) *domain.Report {
	var last *domain.Report
	for i := range reports {
		if last == nil || reports[i].Quarter > last.Quarter {
			last = &reports[i]
		}
	}
	return last
}

func sortByQuarter(reports []domain.Report) []domain.Report {
	sorted := make([]domain.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quarter < sorted[j].Quarter
	})
	return sorted
}

func startOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
