package adapters

import (
	"github.com/de-tools/ternak-atlas/pkg/models/api"
	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/de-tools/ternak-atlas/pkg/models/store"
	"github.com/de-tools/ternak-atlas/pkg/services/form"
)

func MapStoreReportToDomain(r *store.Report) *domain.Report {
	if r == nil {
		return nil
	}

	return &domain.Report{
		ID:            r.ID,
		ParticipantID: r.ParticipantID,
		Quarter:       r.Quarter,
		Year:          r.Year,
		PeriodStart:   r.PeriodStart,
		PeriodEnd:     r.PeriodEnd,
		Label:         r.Label,
		InitialCount:  r.InitialCount,
		CurrentCount:  r.CurrentCount,
		ReturnTarget:  r.ReturnTarget,
		Died:          r.Died,
		Born:          r.Born,
		Sold:          r.Sold,
		Notes:         r.Notes,
		Obstacle:      r.Obstacle,
		Solution:      r.Solution,
		ReportDate:    r.ReportDate,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func MapStoreReportsToDomain(rs []*store.Report) []domain.Report {
	out := make([]domain.Report, 0, len(rs))
	for _, r := range rs {
		out = append(out, *MapStoreReportToDomain(r))
	}
	return out
}

func MapDomainReportToStore(r *domain.Report) *store.Report {
	return &store.Report{
		ID:            r.ID,
		ParticipantID: r.ParticipantID,
		Quarter:       r.Quarter,
		Year:          r.Year,
		PeriodStart:   r.PeriodStart,
		PeriodEnd:     r.PeriodEnd,
		Label:         r.Label,
		InitialCount:  r.InitialCount,
		CurrentCount:  r.CurrentCount,
		ReturnTarget:  r.ReturnTarget,
		Died:          r.Died,
		Born:          r.Born,
		Sold:          r.Sold,
		Notes:         r.Notes,
		Obstacle:      r.Obstacle,
		Solution:      r.Solution,
		ReportDate:    r.ReportDate,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func MapDomainReportToAPI(r domain.Report) api.Report {
	return api.Report{
		ID:            r.ID,
		ParticipantID: r.ParticipantID,
		Quarter:       r.Quarter,
		Year:          r.Year,
		PeriodStart:   formatDate(r.PeriodStart),
		PeriodEnd:     formatDate(r.PeriodEnd),
		Label:         r.Label,
		InitialCount:  r.InitialCount,
		CurrentCount:  r.CurrentCount,
		ReturnTarget:  r.ReturnTarget,
		Died:          r.Died,
		Born:          r.Born,
		Sold:          r.Sold,
		Notes:         r.Notes,
		Obstacle:      r.Obstacle,
		Solution:      r.Solution,
		ReportDate:    formatDate(r.ReportDate),
	}
}

func MapDomainReportsToAPI(rs []domain.Report) []api.Report {
	out := make([]api.Report, 0, len(rs))
	for _, r := range rs {
		out = append(out, MapDomainReportToAPI(r))
	}
	return out
}

func MapDomainNextQuarterToAPI(nq domain.NextQuarter, prefill domain.Prefill) api.NextQuarter {
	resp := api.NextQuarter{
		QuarterNumber:   nq.QuarterNumber,
		CanCreate:       nq.CanCreate,
		ExistingReports: MapDomainReportsToAPI(nq.ExistingReports),
		Prefill: api.Prefill{
			InitialCount: prefill.InitialCount,
			CurrentCount: prefill.CurrentCount,
		},
	}
	if nq.QuarterInfo != nil {
		resp.QuarterInfo = &api.QuarterInfo{
			Number:      nq.QuarterInfo.Number,
			Year:        nq.QuarterInfo.Year,
			Label:       nq.QuarterInfo.Label,
			PeriodStart: formatDate(nq.QuarterInfo.PeriodStart),
			PeriodEnd:   formatDate(nq.QuarterInfo.PeriodEnd),
		}
	}
	return resp
}

func MapDomainSummaryToAPI(s domain.ParticipantSummary) api.ParticipantSummary {
	return api.ParticipantSummary{
		ParticipantID: s.ParticipantID,
		FullName:      s.FullName,
		ReportCount:   s.ReportCount,
		LatestQuarter: s.LatestQuarter,
		InitialCount:  s.InitialCount,
		CurrentCount:  s.CurrentCount,
		ReturnTarget:  s.ReturnTarget,
		Completed:     s.Completed,
	}
}

func MapAPIFormToValues(f api.ReportForm) form.Values {
	return form.Values{
		Initial:    string(f.InitialCount),
		Born:       string(f.Born),
		Died:       string(f.Died),
		Sold:       string(f.Sold),
		ReportDate: f.ReportDate,
		Obstacle:   f.Obstacle,
		Solution:   f.Solution,
		Notes:      f.Notes,
	}
}
