package constants

const (
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeUnauthorized      = "NOT_AUTHORIZED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeActivationFailed  = "ACTIVATION_FAILED"
	ErrCodeTransport         = "MAIL_TRANSPORT_FAILED"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeStaleApplication  = "STALE_APPLICATION"
	ErrCodeOpportunityClosed = "OPPORTUNITY_CLOSED"
	ErrCodeEmailNotVerified  = "EMAIL_NOT_VERIFIED"
	ErrCodeReferenced        = "OPPORTUNITY_REFERENCED"
	ErrCodeNotChampion       = "NOT_A_CHAMPION"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInternal          = "INTERNAL"
)

var ErrorMessages = map[string]string{
	ErrCodeValidation:        "The request failed validation",
	ErrCodeUnauthorized:      "Not authorized",
	ErrCodeNotFound:          "The requested record was not found",
	ErrCodeActivationFailed:  "Activation link is invalid or has expired",
	ErrCodeTransport:         "We could not send the email. Please try again",
	ErrCodeConflict:          "The request conflicts with the current state",
	ErrCodeInvalidTransition: "This status change is not allowed",
	ErrCodeStaleApplication:  "The application was changed by someone else. Reload and try again",
	ErrCodeOpportunityClosed: "This opportunity is closed and no longer accepts applications",
	ErrCodeEmailNotVerified:  "Please verify your email address before applying",
	ErrCodeReferenced:        "Opportunity still has applications and cannot be deleted",
	ErrCodeNotChampion:       "Only champion applications can be assigned",
	ErrCodeRateLimited:       "Too many requests",
	ErrCodeInternal:          "Internal server error",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}

const (
	MsgApplicationSubmitted = "Application submitted successfully!"
	MsgStatusUpdated        = "Status updated successfully"
	MsgNoteAdded            = "Note added successfully."
	MsgNoteEmpty            = "Note cannot be empty."
	MsgOpportunityAdded     = "Opportunity added!"
	MsgOpportunityUpdated   = "Opportunity updated!"
	MsgOpportunityDeleted   = "Opportunity deleted"
	MsgOpportunityClosed    = "Opportunity closed"
	MsgOpportunityReopened  = "Opportunity reopened"
	MsgVerificationSent     = "Verification email sent"
	MsgEmailVerified        = "Email verified"
	MsgAdminVerified        = "Admin verified"
	MsgChampionAssigned     = "Champion assigned"
	MsgChampionUnassigned   = "Champion unassigned"
	MsgChampionsListed      = "Champions retrieved"
	MsgOpportunitiesListed  = "Opportunities retrieved"
	MsgOpportunityFetched   = "Opportunity retrieved"
	MsgApplicantsListed     = "Applicants retrieved"
	MsgApplicationsListed   = "Applications retrieved"
	MsgApplicationFetched   = "Application retrieved"
	MsgImageUploaded        = "Image uploaded"
	MsgVolunteerFound       = "Volunteer found"
	MsgVolunteerNotFound    = "No application for this email"
	MsgSessionFetched       = "Session retrieved"
	MsgLoggedOut            = "Logged out"
)
