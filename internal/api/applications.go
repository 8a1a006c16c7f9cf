package api

import (
	"net/http"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/models/dtos"
)

// SubmitApplication handles POST /api/v1/applications.
// The caller must hold an email capability matching the submitted address.
func (h *Handlers) SubmitApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SubmitApplicationReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		app, err := h.deps.Services.Lifecycle.SubmitApplication(r.Context(), auth.GetUserClaims(r.Context()), req)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgApplicationSubmitted, dtos.NewApplicationResponse(app), http.StatusCreated)
	}
}

// ListApplications handles GET /api/v1/applications
func (h *Handlers) ListApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		list, err := h.deps.Services.Lifecycle.ListApplications(r.Context(), auth.GetUserClaims(r.Context()))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgApplicationsListed, dtos.ApplicationListResponse{
			Applications: list,
			Count:        len(list),
		})
	}
}

// GetApplication handles GET /api/v1/applications/{id}
func (h *Handlers) GetApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		app, err := h.deps.Services.Lifecycle.GetApplication(r.Context(), auth.GetUserClaims(r.Context()), id)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgApplicationFetched, dtos.NewApplicationResponse(app))
	}
}

// TransitionStatus handles POST /api/v1/applications/{id}/status
func (h *Handlers) TransitionStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		var req dtos.TransitionStatusReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		app, err := h.deps.Services.Lifecycle.TransitionStatus(r.Context(), auth.GetUserClaims(r.Context()), id, req)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgStatusUpdated, dtos.NewApplicationResponse(app))
	}
}

// AddNote handles POST /api/v1/applications/{id}/notes
func (h *Handlers) AddNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		id, err := urlID(r, "id")
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		var req dtos.AddNoteReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		app, err := h.deps.Services.Lifecycle.AddNote(r.Context(), auth.GetUserClaims(r.Context()), id, req)
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgNoteAdded, dtos.NewApplicationResponse(app))
	}
}

// CheckVolunteer handles GET /api/v1/check?email=
func (h *Handlers) CheckVolunteer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		checkIn, err := h.deps.Services.Lifecycle.CheckVolunteer(r.Context(), r.URL.Query().Get("email"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		if checkIn == nil {
			common.RespondSuccess(w, initTime, constants.MsgVolunteerNotFound, dtos.VolunteerCheckResponse{Found: false})
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgVolunteerFound, dtos.VolunteerCheckResponse{
			Found:     true,
			Volunteer: checkIn,
		})
	}
}
