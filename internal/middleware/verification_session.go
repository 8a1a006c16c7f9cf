package middleware

import (
	"net/http"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
	"kras-kickers/volunteers/internal/logging"
)

// VerificationSessionMiddleware loads the caller's verification session, lapses
// capabilities idle past the timeout, refreshes the rest and exposes the
// session and derived claims on the request context. It runs once per request
// ahead of routing.
func VerificationSessionMiddleware(sessions *common.SessionService, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			sessionID := ""
			if cookie, err := r.Cookie(constants.SessionCookieName); err == nil {
				sessionID = cookie.Value
			}

			session, created, err := sessions.Load(r.Context(), sessionID)
			if err != nil {
				logging.Error("Failed to load session", "error", err.Error())
				common.RespondError(w, time.Now(), nil, constants.GetErrorMessage(constants.ErrCodeInternal), http.StatusServiceUnavailable)
				return
			}

			if err := sessions.Refresh(r.Context(), session); err != nil {
				// capabilities were still evaluated in memory; the request proceeds
				logging.Warn("Failed to refresh session", "session_id", session.ID, "error", err.Error())
			}

			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     constants.SessionCookieName,
					Value:    session.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := auth.SetSession(r.Context(), session)
			ctx = auth.SetUserClaims(ctx, auth.ClaimsFromSession(session))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
