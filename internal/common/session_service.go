package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kras-kickers/volunteers/internal/auth"
	"kras-kickers/volunteers/internal/logging"
)

// ErrSessionNotFound is returned by stores for unknown or lapsed sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists verification sessions with a TTL.
type SessionStore interface {
	Get(ctx context.Context, id string) (*auth.Session, error)
	Set(ctx context.Context, session *auth.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// SessionService manages verification sessions
type SessionService struct {
	store       SessionStore
	idleTimeout time.Duration
	now         func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(store SessionStore, idleTimeout time.Duration) *SessionService {
	return &SessionService{
		store:       store,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// WithClock overrides the clock, mainly for tests.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *SessionService) Now() time.Time { return s.now() }

func (s *SessionService) IdleTimeout() time.Duration { return s.idleTimeout }

// Load returns the stored session for id, or a fresh unsaved session when
// there is none. The second result reports whether a new id was minted.
func (s *SessionService) Load(ctx context.Context, id string) (*auth.Session, bool, error) {
	if id != "" {
		session, err := s.store.Get(ctx, id)
		if err == nil {
			return session, false, nil
		}
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, false, fmt.Errorf("failed to get session: %w", err)
		}
	}
	return auth.NewSession(uuid.New().String()), true, nil
}

// Refresh applies the idle expiry to session and persists the outcome.
func (s *SessionService) Refresh(ctx context.Context, session *auth.Session) error {
	if !session.Touch(s.now(), s.idleTimeout) {
		return nil
	}
	return s.Save(ctx, session)
}

// Save persists session, or removes it once it holds no capability.
func (s *SessionService) Save(ctx context.Context, session *auth.Session) error {
	if session.IsEmpty() {
		return s.Destroy(ctx, session.ID)
	}
	if err := s.store.Set(ctx, session, s.idleTimeout); err != nil {
		logging.Error("Failed to store session", "session_id", session.ID, "error", err.Error())
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Destroy deletes a session
func (s *SessionService) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping checks the backing store.
func (s *SessionService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
