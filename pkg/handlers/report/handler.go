package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/adapters"
	"github.com/de-tools/ternak-atlas/pkg/handlers/response"
	"github.com/de-tools/ternak-atlas/pkg/models/api"
	"github.com/de-tools/ternak-atlas/pkg/models/domain"
	"github.com/de-tools/ternak-atlas/pkg/services/form"
	"github.com/de-tools/ternak-atlas/pkg/services/participant"
	reportsvc "github.com/de-tools/ternak-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type persistFunc func(ctx context.Context, payload domain.Report) (*domain.Report, error)

type Handler struct {
	participants participant.Service
	reports      reportsvc.Service
	now          func() time.Time
}

func NewHandler(participants participant.Service, reports reportsvc.Service) *Handler {
	return &Handler{
		participants: participants,
		reports:      reports,
		now:          time.Now,
	}
}

// NextQuarter reports whether a new report can be filed for the participant
// and with which prefilled counts.
func (h *Handler) NextQuarter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	p, err := h.participants.GetByID(ctx, id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	nq, err := h.reports.GetNextAllowedQuarter(ctx, id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	prefill := h.reports.CalculatePrefillData(reportsvc.LastReport(nq.ExistingReports), p)
	response.JSON(w, r, http.StatusOK, adapters.MapDomainNextQuarterToAPI(*nq, prefill))
}

func (h *Handler) ListByParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rs, err := h.reports.ListByParticipant(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, adapters.MapDomainReportsToAPI(rs))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rs, err := h.reports.ListAll(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, adapters.MapDomainReportsToAPI(rs))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")

	rep, err := h.reports.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, adapters.MapDomainReportToAPI(*rep))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")

	ok, err := h.reports.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, api.DeleteResponse{Success: ok})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.Summary(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	result := make([]api.ParticipantSummary, 0, len(summary.Participants))
	for _, ps := range summary.Participants {
		result = append(result, adapters.MapDomainSummaryToAPI(ps))
	}
	response.JSON(w, r, http.StatusOK, result)
}

// Create runs the report form for the participant's next quarter and
// persists the resulting payload as a new report.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	values, ok := decodeForm(w, r)
	if !ok {
		return
	}

	p, err := h.participants.GetByID(ctx, id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	nq, err := h.reports.GetNextAllowedQuarter(ctx, id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	prefill := h.reports.CalculatePrefillData(reportsvc.LastReport(nq.ExistingReports), p)
	state := form.Load(form.New(p), nq, prefill)
	if state.Phase == form.PhaseIneligible {
		response.Error(w, r, &domain.ConflictError{Message: state.Message})
		return
	}

	state = form.Apply(state, values)
	h.submit(w, r, state, h.reports.Create, http.StatusCreated)
}

// Update runs the report form over a stored report and persists the edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "reportID")

	values, ok := decodeForm(w, r)
	if !ok {
		return
	}

	existing, err := h.reports.Get(ctx, id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	p, err := h.participants.GetByID(ctx, existing.ParticipantID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	state := form.LoadExisting(form.New(p), *existing)
	state = form.Apply(state, values)
	h.submit(w, r, state, func(ctx context.Context, payload domain.Report) (*domain.Report, error) {
		return h.reports.Update(ctx, id, payload)
	}, http.StatusOK)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, state form.State, persist persistFunc, status int) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	state, payload, err := form.BeginSubmit(state, h.now())
	if err != nil {
		if errors.Is(err, form.ErrInvalid) {
			response.ValidationErrors(w, r, state.Errors)
			return
		}
		response.Error(w, r, &domain.ConflictError{Message: err.Error()})
		return
	}

	saved, err := persist(ctx, *payload)
	state = form.CompleteSubmit(state, err)
	if err != nil {
		logger.Warn().
			Err(err).
			Str("phase", string(state.Phase)).
			Msg("report submission failed")
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, status, adapters.MapDomainReportToAPI(*saved))
}

func decodeForm(w http.ResponseWriter, r *http.Request) (form.Values, bool) {
	var body api.ReportForm
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode report form")
		response.BadRequest(w, r, "invalid request body")
		return form.Values{}, false
	}
	return adapters.MapAPIFormToValues(body), true
}
