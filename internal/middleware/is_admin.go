package middleware

import (
	"net/http"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
)

func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if !claims.IsAdmin() {
				common.RespondServiceError(w, time.Now(), common.UnauthorizedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
