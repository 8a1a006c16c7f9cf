package middleware

import (
	"net/http"
	"time"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/common"
	"kras-kickers/volunteers/internal/constants"
)

// IsVerifiedMiddleware admits callers holding any live capability.
func IsVerifiedMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims.Role() == constants.RoleAnonymous {
				common.RespondServiceError(w, time.Now(), common.UnauthorizedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
