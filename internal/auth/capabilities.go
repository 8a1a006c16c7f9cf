package auth

import (
	"strings"
	"time"
)

// Capability is a verified email address held by a browser session. It lapses
// when LastSeen falls further behind than the idle timeout.
type Capability struct {
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
	LastSeen time.Time `json:"last_seen"`
}

// EmailCapability proves control of an applicant email address.
type EmailCapability struct {
	Capability
}

// AdminCapability proves control of an address in the admin domain.
type AdminCapability struct {
	Capability
}

func newCapability(email string, now time.Time) Capability {
	return Capability{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		IssuedAt: now,
		LastSeen: now,
	}
}

func (c Capability) expired(now time.Time, idle time.Duration) bool {
	return now.Sub(c.LastSeen) > idle
}

// Session is the verification state of one browser session.
type Session struct {
	ID    string           `json:"id"`
	Email *EmailCapability `json:"email,omitempty"`
	Admin *AdminCapability `json:"admin,omitempty"`
}

// NewSession returns an empty session with the given id.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// GrantEmail records a successful email activation.
func (s *Session) GrantEmail(email string, now time.Time) {
	s.Email = &EmailCapability{Capability: newCapability(email, now)}
}

// GrantAdmin records a successful admin activation.
func (s *Session) GrantAdmin(email string, now time.Time) {
	s.Admin = &AdminCapability{Capability: newCapability(email, now)}
}

// Clear drops both capabilities.
func (s *Session) Clear() {
	s.Email = nil
	s.Admin = nil
}

// Touch expires each capability idle for longer than idle and refreshes the
// rest. It reports whether anything was held before the call.
func (s *Session) Touch(now time.Time, idle time.Duration) bool {
	touched := false
	if s.Email != nil {
		touched = true
		if s.Email.expired(now, idle) {
			s.Email = nil
		} else {
			s.Email.LastSeen = now
		}
	}
	if s.Admin != nil {
		touched = true
		if s.Admin.expired(now, idle) {
			s.Admin = nil
		} else {
			s.Admin.LastSeen = now
		}
	}
	return touched
}

// IsEmpty reports whether the session holds no capability.
func (s *Session) IsEmpty() bool {
	return s.Email == nil && s.Admin == nil
}

// EmailVerified reports whether the session holds a live email capability.
func (s *Session) EmailVerified() bool { return s.Email != nil }

// AdminVerified reports whether the session holds a live admin capability.
func (s *Session) AdminVerified() bool { return s.Admin != nil }

// VerifiedEmail returns the email capability address or "".
func (s *Session) VerifiedEmail() string {
	if s.Email == nil {
		return ""
	}
	return s.Email.Email
}

// AdminEmail returns the admin capability address or "".
func (s *Session) AdminEmail() string {
	if s.Admin == nil {
		return ""
	}
	return s.Admin.Email
}
