package api

import (
	"net/http"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/models/dtos"
)

// AssignChampion handles POST /api/v1/opportunities/{id}/champions (admin)
func (h *Handlers) AssignChampion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		oppID, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		var req dtos.AssignChampionReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		if err := common.ValidateRequest(req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		if err := h.deps.Services.Champion.AssignChampion(r.Context(), auth.GetUserClaims(r.Context()), oppID, req.ApplicationID); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgChampionAssigned, nil)
	}
}

// UnassignChampion handles DELETE /api/v1/opportunities/{id}/champions/{appId} (admin)
func (h *Handlers) UnassignChampion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		oppID, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		appID, err := urlID(r, "appId")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		if err := h.deps.Services.Champion.UnassignChampion(r.Context(), auth.GetUserClaims(r.Context()), oppID, appID); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgChampionUnassigned, nil)
	}
}

// ListChampions handles GET /api/v1/opportunities/{id}/champions (admin)
func (h *Handlers) ListChampions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		oppID, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		rows, err := h.deps.Services.Champion.ListChampions(r.Context(), auth.GetUserClaims(r.Context()), oppID)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgChampionsListed, dtos.ChampionListResponse{
			OpportunityID: oppID,
			Champions:     rows,
		})
	}
}
