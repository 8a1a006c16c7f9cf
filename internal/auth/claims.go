package auth

import "kras-kickers/volunteers/internal/constants"

// UserClaims is what handlers and services know about the caller.
type UserClaims interface {
	SessionID() string
	Role() constants.ActorRole
	IsAdmin() bool
	VerifiedEmail() string
	AdminEmail() string
}

// SessionClaims derives claims from a verification session.
type SessionClaims struct {
	session *Session
}

// ClaimsFromSession wraps s. A nil session yields anonymous claims.
func ClaimsFromSession(s *Session) *SessionClaims {
	return &SessionClaims{session: s}
}

func (c *SessionClaims) SessionID() string {
	if c.session == nil {
		return ""
	}
	return c.session.ID
}

func (c *SessionClaims) Role() constants.ActorRole {
	switch {
	case c.IsAdmin():
		return constants.RoleAdmin
	case c.VerifiedEmail() != "":
		return constants.RoleVolunteer
	default:
		return constants.RoleAnonymous
	}
}

func (c *SessionClaims) IsAdmin() bool {
	return c.session != nil && c.session.AdminVerified()
}

func (c *SessionClaims) VerifiedEmail() string {
	if c.session == nil {
		return ""
	}
	return c.session.VerifiedEmail()
}

func (c *SessionClaims) AdminEmail() string {
	if c.session == nil {
		return ""
	}
	return c.session.AdminEmail()
}

// Anonymous returns claims carrying no capability.
func Anonymous() UserClaims {
	return ClaimsFromSession(nil)
}
