package participant

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/ternak-atlas/pkg/adapters"
	"github.com/de-tools/ternak-atlas/pkg/handlers/response"
	"github.com/de-tools/ternak-atlas/pkg/models/api"
	"github.com/de-tools/ternak-atlas/pkg/services/participant"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	participants participant.Service
}

func NewHandler(participants participant.Service) *Handler {
	return &Handler{
		participants: participants,
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ps, err := h.participants.ListAll(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	result := make([]api.Participant, 0, len(ps))
	for _, p := range ps {
		result = append(result, adapters.MapDomainParticipantToAPI(p))
	}
	response.JSON(w, r, http.StatusOK, result)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("failed to decode participant")
		response.BadRequest(w, r, "invalid request body")
		return
	}

	in, err := adapters.MapAPIRequestToInput(req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	p, err := h.participants.Create(ctx, in)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, adapters.MapDomainParticipantToAPI(*p))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.participants.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, adapters.MapDomainParticipantToAPI(*p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req api.ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("id", id).Msg("failed to decode participant patch")
		response.BadRequest(w, r, "invalid request body")
		return
	}

	patch, err := adapters.MapAPIRequestToPatch(req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	p, err := h.participants.Update(ctx, id, patch)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, adapters.MapDomainParticipantToAPI(*p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.participants.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, api.DeleteResponse{Success: ok})
}

func (h *Handler) SetPerformanceStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req api.PerformanceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body")
		return
	}

	p, err := h.participants.SetPerformanceStatus(r.Context(), id, req.Status)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, adapters.MapDomainParticipantToAPI(*p))
}
