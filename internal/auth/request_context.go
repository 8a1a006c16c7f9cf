package auth

import (
	"context"
)

type contextKey string

var userClaimsKey contextKey = "user_claims"
var sessionDataKey contextKey = "session_data"

func SetUserClaims(ctx context.Context, claims UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// GetUserClaims returns the claims set by the session middleware, or anonymous claims.
func GetUserClaims(ctx context.Context) UserClaims {
	val := ctx.Value(userClaimsKey)
	if claims, ok := val.(UserClaims); ok {
		return claims
	}
	return Anonymous()
}

// SetSession stores the verification session in context so handlers can grant capabilities
func SetSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionDataKey, s)
}

// GetSession retrieves the verification session from context
func GetSession(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionDataKey).(*Session); ok {
		return s
	}
	return nil
}
