package common

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

func asServiceError(err error, target **ServiceError) bool {
	if err == nil {
		return false
	}
	return errors.As(err, target)
}

// NormalizeEmail lowercases and trims an address for comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailInDomain reports whether email belongs to domain, compared case-insensitively.
func EmailInDomain(email, domain string) bool {
	domain = strings.TrimPrefix(NormalizeEmail(domain), "@")
	if domain == "" {
		return false
	}
	email = NormalizeEmail(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}
	return email[at+1:] == domain
}
