package common

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kras-kickers/volunteers/internal/constants"
)

// activationClaims is the body of an activation token
type activationClaims struct {
	Purpose string `json:"purpose"`
	Payload string `json:"payload"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies purpose-scoped activation tokens. The
// purpose is folded into the HMAC key, so a token signed for one purpose never
// verifies under another.
type TokenService struct {
	secretKey []byte
	now       func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(secretKey []byte) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		now:       time.Now,
	}
}

// WithClock overrides the clock, mainly for tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *TokenService) purposeKey(purpose constants.TokenPurpose) []byte {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write([]byte(purpose))
	return mac.Sum(nil)
}

// Issue signs payload for purpose.
func (s *TokenService) Issue(purpose constants.TokenPurpose, payload string) (string, error) {
	claims := activationClaims{
		Purpose: string(purpose),
		Payload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.purposeKey(purpose))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify returns the payload of a token issued for purpose no more than maxAge
// ago. Tampered, foreign-purpose, undecodable and expired tokens all return false.
func (s *TokenService) Verify(purpose constants.TokenPurpose, tokenString string, maxAge time.Duration) (string, bool) {
	claims := &activationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.purposeKey(purpose), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", false
	}

	if claims.Purpose != string(purpose) || claims.IssuedAt == nil {
		return "", false
	}

	// iat carries whole seconds, so ages are measured in whole seconds too
	if s.now().Truncate(time.Second).Sub(claims.IssuedAt.Time) > maxAge {
		return "", false
	}

	return claims.Payload, true
}
