package api

import (
	"net/http"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/models/dtos"
	"kras-kickers/volunteers/internal/services"
)

const maxImageUpload = 5 << 20

// ListOpportunities handles GET /api/v1/opportunities
//
// @Summary List open opportunities
// @Tags Opportunities
// @Param q query string false "Fuzzy search over title and description"
// @Param mode query string false "Exact mode filter"
// @Param duration query string false "Exact duration filter"
// @Router /api/v1/opportunities [get]
func (h *Handlers) ListOpportunities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		query := r.URL.Query()
		filter := services.OpportunityFilter{
			Query:    query.Get("q"),
			Mode:     query.Get("mode"),
			Duration: query.Get("duration"),
		}

		list, err := h.deps.Services.Opportunity.ListOpen(r.Context(), filter)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgOpportunitiesListed, dtos.NewOpportunityResponses(list))
	}
}

// ListClosedOpportunities handles GET /api/v1/opportunities/closed (admin)
func (h *Handlers) ListClosedOpportunities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		list, err := h.deps.Services.Opportunity.ListClosed(r.Context(), auth.GetUserClaims(r.Context()))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgOpportunitiesListed, dtos.NewOpportunityResponses(list))
	}
}

// GetOpportunity handles GET /api/v1/opportunities/{id}
func (h *Handlers) GetOpportunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		opp, err := h.deps.Services.Opportunity.Get(r.Context(), id)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgOpportunityFetched, dtos.NewOpportunityResponse(opp))
	}
}

// CreateOpportunity handles POST /api/v1/opportunities (admin)
func (h *Handlers) CreateOpportunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.OpportunityReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		opp, err := h.deps.Services.Opportunity.Create(r.Context(), auth.GetUserClaims(r.Context()), req)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgOpportunityAdded, dtos.NewOpportunityResponse(opp), http.StatusCreated)
	}
}

// UpdateOpportunity handles PUT /api/v1/opportunities/{id} (admin)
func (h *Handlers) UpdateOpportunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		var req dtos.OpportunityReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		opp, err := h.deps.Services.Opportunity.Update(r.Context(), auth.GetUserClaims(r.Context()), id, req)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgOpportunityUpdated, dtos.NewOpportunityResponse(opp))
	}
}

// DeleteOpportunity handles DELETE /api/v1/opportunities/{id} (admin)
func (h *Handlers) DeleteOpportunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		if err := h.deps.Services.Opportunity.Delete(r.Context(), auth.GetUserClaims(r.Context()), id); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgOpportunityDeleted, nil)
	}
}

// CloseOpportunity handles POST /api/v1/opportunities/{id}/close (admin).
// The response reports how many open applications were closed with it.
func (h *Handlers) CloseOpportunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		closed, err := h.deps.Services.Opportunity.Close(r.Context(), auth.GetUserClaims(r.Context()), id)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgOpportunityClosed, map[string]int{
			"applications_closed": closed,
		})
	}
}

// ReopenOpportunity handles POST /api/v1/opportunities/{id}/reopen (admin)
func (h *Handlers) ReopenOpportunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		if err := h.deps.Services.Opportunity.Reopen(r.Context(), auth.GetUserClaims(r.Context()), id); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgOpportunityReopened, nil)
	}
}

// UploadOpportunityImage handles POST /api/v1/opportunities/{id}/image (admin).
// Expects a multipart form with an "image" file field.
func (h *Handlers) UploadOpportunityImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload)
		if err := r.ParseMultipartForm(maxImageUpload); err != nil {
			common.RespondServiceError(w, initTime, common.ValidationError(constants.ErrCodeValidation, "invalid multipart form"))
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			common.RespondServiceError(w, initTime, common.ValidationError(constants.ErrCodeValidation, "image file is required"))
			return
		}
		defer file.Close()

		ref, err := h.deps.Services.Opportunity.UploadImage(r.Context(), auth.GetUserClaims(r.Context()), id, header.Filename, file)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgImageUploaded, dtos.ImageUploadResponse{Image: ref})
	}
}

// ListApplicants handles GET /api/v1/opportunities/{id}/applicants
func (h *Handlers) ListApplicants() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		list, err := h.deps.Services.Opportunity.Applicants(r.Context(), auth.GetUserClaims(r.Context()), id)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		out := make([]dtos.ApplicationResponse, 0, len(list))
		for i := range list {
			out = append(out, dtos.NewApplicationResponse(&list[i]))
		}
		common.RespondSuccess(w, initTime, constants.MsgApplicantsListed, out)
	}
}
