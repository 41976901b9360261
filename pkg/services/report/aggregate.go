package report

import (
	"github.com/de-tools/ternak-atlas/pkg/models/domain"
)

// CountByParticipant folds the report collection into a per-participant count.
func CountByParticipant(reports []domain.Report) map[string]int {
	counts := make(map[string]int)
	for _, r := range reports {
		counts[r.ParticipantID]++
	}
	return counts
}

// LatestByParticipant keeps the highest-quarter report of each participant.
func LatestByParticipant(reports []domain.Report) map[string]domain.Report {
	latest := make(map[string]domain.Report)
	for _, r := range reports {
		if cur, ok := latest[r.ParticipantID]; !ok || r.Quarter > cur.Quarter {
			latest[r.ParticipantID] = r
		}
	}
	return latest
}

// Summarize derives the program view from the participant list and the one
// canonical report collection. Participants without reports keep their
// initial count as current count.
func Summarize(participants []domain.Participant, reports []domain.Report) domain.ProgramSummary {
	counts := CountByParticipant(reports)
	latest := LatestByParticipant(reports)

	summary := domain.ProgramSummary{
		Title:        "Ringkasan Program",
		Participants: make([]domain.ParticipantSummary, 0, len(participants)),
	}
	for _, p := range participants {
		ps := domain.ParticipantSummary{
			ParticipantID: p.ID,
			FullName:      p.FullName,
			ReportCount:   counts[p.ID],
			InitialCount:  p.InitialCount,
			CurrentCount:  p.InitialCount,
			ReturnTarget:  p.ReturnTarget,
		}
		if r, ok := latest[p.ID]; ok {
			ps.LatestQuarter = r.Quarter
			ps.CurrentCount = r.CurrentCount
		}
		ps.Completed = ps.ReportCount >= domain.MaxQuarters

		summary.TotalInitial += ps.InitialCount
		summary.TotalCurrent += ps.CurrentCount
		if ps.Completed {
			summary.Completed++
		}
		summary.Participants = append(summary.Participants, ps)
	}
	return summary
}
