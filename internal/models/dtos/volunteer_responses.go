package dtos

import (
	"time"

	"kras-kickers/volunteers/internal/audit"
	"kras-kickers/volunteers/internal/models/entities"
	gormModels "kras-kickers/volunteers/internal/models/gorm"
)

type OpportunityResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Mode         string     `json:"mode"`
	Time         string     `json:"time"`
	Duration     string     `json:"duration"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Tags         []string   `json:"tags"`
	Image        string     `json:"image"`
	Closed       bool       `json:"closed"`
	ClosedDate   *time.Time `json:"closed_date,omitempty"`
}

func NewOpportunityResponse(o *gormModels.Opportunity) OpportunityResponse {
	tags := []string(o.Tags)
	if tags == nil {
		tags = []string{}
	}
	return OpportunityResponse{
		ID:           o.ID,
		Title:        o.Title,
		Mode:         o.Mode,
		Time:         o.Time,
		Duration:     o.Duration,
		Location:     o.Location,
		Description:  o.Description,
		Requirements: o.Requirements,
		Tags:         tags,
		Image:        o.Image,
		Closed:       o.Closed,
		ClosedDate:   o.ClosedDate,
	}
}

func NewOpportunityResponses(list []gormModels.Opportunity) []OpportunityResponse {
	out := make([]OpportunityResponse, 0, len(list))
	for i := range list {
		out = append(out, NewOpportunityResponse(&list[i]))
	}
	return out
}

type ApplicationResponse struct {
	ID            uint                 `json:"id"`
	OpportunityID *uint                `json:"opportunity_id"`
	FirstName     string               `json:"first_name"`
	LastName      string               `json:"last_name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Contact       string               `json:"contact"`
	Title         string               `json:"title"`
	Time          string               `json:"time"`
	Duration      string               `json:"duration"`
	Location      string               `json:"location"`
	Comments      string               `json:"comments"`
	Status        string               `json:"status"`
	Timestamp     time.Time            `json:"timestamp"`
	History       []audit.HistoryEntry `json:"history"`
	Notes         []audit.NoteEntry    `json:"notes"`
	IsChampion    bool                 `json:"is_champion"`
	Revision      int                  `json:"revision"`
}

func NewApplicationResponse(a *gormModels.Application) ApplicationResponse {
	history := []audit.HistoryEntry(a.History)
	if history == nil {
		history = []audit.HistoryEntry{}
	}
	notes := []audit.NoteEntry(a.Notes)
	if notes == nil {
		notes = []audit.NoteEntry{}
	}
	return ApplicationResponse{
		ID:            a.ID,
		OpportunityID: a.OpportunityID,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Email:         a.Email,
		Phone:         a.Phone,
		Contact:       a.Contact,
		Title:         a.Title,
		Time:          a.Time,
		Duration:      a.Duration,
		Location:      a.Location,
		Comments:      a.Comments,
		Status:        string(a.Status),
		Timestamp:     a.Timestamp,
		History:       history,
		Notes:         notes,
		IsChampion:    a.IsChampion,
		Revision:      a.Revision,
	}
}

type ApplicationListResponse struct {
	Applications []entities.ApplicationSummary `json:"applications"`
	Count        int                           `json:"count"`
}

type VolunteerCheckResponse struct {
	Found     bool                       `json:"found"`
	Volunteer *entities.VolunteerCheckIn `json:"volunteer,omitempty"`
}

type SessionResponse struct {
	SessionID     string `json:"-"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
	VerifiedEmail string `json:"verified_email,omitempty"`
	AdminVerified bool   `json:"admin_verified"`
	AdminEmail    string `json:"admin_email,omitempty"`
}

type ChampionListResponse struct {
	OpportunityID uint                   `json:"opportunity_id"`
	Champions     []entities.ChampionRow `json:"champions"`
}

type ImageUploadResponse struct {
	Image string `json:"image"`
}
