package entities

import "time"

// ApplicationSummary is the read projection used by review and check-in listings.
type ApplicationSummary struct {
	ID            uint      `db:"id" json:"id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	Title         string    `db:"title" json:"title"`
	OpportunityID *uint     `db:"opportunity_id" json:"opportunity_id"`
	Status        string    `db:"status" json:"status"`
	Timestamp     time.Time `db:"timestamp" json:"timestamp"`
	IsChampion    bool      `db:"is_champion" json:"is_champion"`
}

// VolunteerCheckIn is what the public check-in desk may see about an applicant.
type VolunteerCheckIn struct {
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}

// ChampionRow joins an assignment to its champion application.
type ChampionRow struct {
	ApplicationID uint      `db:"application_id" json:"application_id"`
	OpportunityID uint      `db:"opportunity_id" json:"opportunity_id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	Email         string    `db:"email" json:"email"`
	AssignedAt    time.Time `db:"created_at" json:"assigned_at"`
}
