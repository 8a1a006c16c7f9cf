package constants

// sqlx queries use '?' bindvars and are passed through Rebind for the active driver.
const (
	applicationSummaryColumns = `a.id, a.first_name, a.last_name, a.email, a.phone, a.title,
	a.opportunity_id, a.status, a.timestamp, a.is_champion`

	GetVolunteerCheckInByEmail = `
	SELECT a.first_name, a.last_name, a.email
	FROM applications a
	WHERE LOWER(a.email) = ?
	ORDER BY a.timestamp DESC, a.id DESC
	LIMIT 1
	`

	ListApplicationSummaries = `
	SELECT ` + applicationSummaryColumns + `
	FROM applications a
	ORDER BY a.timestamp DESC, a.id DESC
	`

	ListApplicationSummariesForOpportunities = `
	SELECT ` + applicationSummaryColumns + `
	FROM applications a
	WHERE a.opportunity_id IN (?)
	ORDER BY a.timestamp DESC, a.id DESC
	`

	ListChampionsForOpportunity = `
	SELECT ca.application_id, ca.opportunity_id, a.first_name, a.last_name, a.email, ca.created_at
	FROM champion_assignments ca
	JOIN applications a ON a.id = ca.application_id
	WHERE ca.opportunity_id = ?
	ORDER BY ca.created_at ASC, ca.application_id ASC
	`
)
