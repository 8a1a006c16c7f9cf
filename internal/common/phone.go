package common

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats a parseable number as E.164, reading national
// numbers in region. Anything unparseable is kept as typed.
func NormalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
