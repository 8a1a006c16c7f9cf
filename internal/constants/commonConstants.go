package constants

import "time"

type (
	APIStatus    string
	CachePrefix  string
	TokenPurpose string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSession CachePrefix = "VOLUNTEER_SESSION_"
)

const (
	TokenPurposeEmailActivate TokenPurpose = "email-activate"
	TokenPurposeAdminActivate TokenPurpose = "admin-activate"
)

func (p TokenPurpose) String() string { return string(p) }

const (
	DefaultTokenMaxAge        = time.Hour
	DefaultSessionIdleTimeout = 30 * time.Minute

	SessionCookieName = "volunteer_session"

	// AuditTimeLayout is the legacy minute-resolution layout found in older rows.
	AuditTimeLayout = "2006-01-02 15:04"

	DefaultOpportunityImage = "default.png"

	// DefaultPhoneRegion is used to read applicant numbers written without a country code.
	DefaultPhoneRegion = "SI"
)

// History event texts
const (
	EventApplicationSubmitted = "Application submitted"
	EventStatusUpdatedFmt     = "Status updated to %s"
	EventNoteAddedFmt         = "Note added: %s"
)
