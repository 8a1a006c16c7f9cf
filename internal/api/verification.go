package api

import (
	"net/http"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/models/dtos"
)

// RequestEmailVerification handles POST /api/v1/verify/email
func (h *Handlers) RequestEmailVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.VerifyEmailReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		if err := h.deps.Services.Verification.RequestEmailVerification(r.Context(), req.Email); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgVerificationSent, nil, http.StatusAccepted)
	}
}

// ActivateEmail handles GET /api/v1/verify/email/activate?token=
func (h *Handlers) ActivateEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		session := auth.GetSession(r.Context())
		email, err := h.deps.Services.Verification.ActivateEmail(r.Context(), session, r.URL.Query().Get("token"))
		if err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgEmailVerified, sessionResponse(session, email))
	}
}

// RequestAdminVerification handles POST /api/v1/verify/admin.
// Only addresses in the admin domain receive a link.
func (h *Handlers) RequestAdminVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.VerifyEmailReq
		if err := decodeJSON(r, &req); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}

		if err := h.deps.Services.Verification.RequestAdminVerification(r.Context(), req.Email); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgVerificationSent, nil, http.StatusAccepted)
	}
}

// ActivateAdmin handles GET /api/v1/verify/admin/activate?token=
func (h *Handlers) ActivateAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		session := auth.GetSession(r.Context())
		if _, err := h.deps.Services.Verification.ActivateAdmin(r.Context(), session, r.URL.Query().Get("token")); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgAdminVerified, sessionResponse(session, session.VerifiedEmail()))
	}
}

// GetSession handles GET /api/v1/session
func (h *Handlers) GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		session := auth.GetSession(r.Context())
		email := ""
		if session != nil {
			email = session.VerifiedEmail()
		}
		common.RespondSuccess(w, initTime, constants.MsgSessionFetched, sessionResponse(session, email))
	}
}

// Logout handles POST /api/v1/session/logout
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := h.deps.Services.Verification.Logout(r.Context(), auth.GetSession(r.Context())); err != nil {
			common.RespondServiceError(w, initTime, err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     constants.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		common.RespondSuccess(w, initTime, constants.MsgLoggedOut, nil)
	}
}

func sessionResponse(session *auth.Session, email string) dtos.SessionResponse {
	claims := auth.ClaimsFromSession(session)
	return dtos.SessionResponse{
		SessionID:     claims.SessionID(),
		Role:          claims.Role().String(),
		EmailVerified: email != "",
		VerifiedEmail: email,
		AdminVerified: claims.IsAdmin(),
		AdminEmail:    claims.AdminEmail(),
	}
}
