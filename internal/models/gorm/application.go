package gorm

import (
	"time"

	"kras-kickers/volunteers/internal/audit"
	"kras-kickers/volunteers/internal/constants"
)

type Application struct {
	ID            uint                        `gorm:"column:id;primaryKey" json:"id"`
	FirstName     string                      `gorm:"column:first_name" json:"first_name"`
	LastName      string                      `gorm:"column:last_name" json:"last_name"`
	Email         string                      `gorm:"column:email;index" json:"email"`
	Phone         string                      `gorm:"column:phone" json:"phone"`
	Contact       string                      `gorm:"column:contact" json:"contact"`
	Title         string                      `gorm:"column:title;index" json:"title"`
	OpportunityID *uint                       `gorm:"column:opportunity_id;index" json:"opportunity_id"`
	Time          string                      `gorm:"column:time" json:"time"`
	Duration      string                      `gorm:"column:duration" json:"duration"`
	Location      string                      `gorm:"column:location" json:"location"`
	Comments      string                      `gorm:"column:comments" json:"comments"`
	Status        constants.ApplicationStatus `gorm:"column:status;type:varchar(32);index" json:"status"`
	Timestamp     time.Time                   `gorm:"column:timestamp;index" json:"timestamp"`
	History       audit.History               `gorm:"column:history;type:text" json:"history"`
	Notes         audit.Notes                 `gorm:"column:notes;type:text" json:"notes"`
	IsChampion    bool                        `gorm:"column:is_champion;default:false" json:"is_champion"`
	Revision      int                         `gorm:"column:revision;not null;default:0" json:"revision"`
}

// TableName specifies the table name for GORM
func (Application) TableName() string {
	return "applications"
}

// IsChampionLeader reports whether the application targets the champion leader role.
func (a *Application) IsChampionLeader() bool {
	return NormalizeTitle(a.Title) == NormalizeTitle(constants.ChampionLeaderTitle)
}

// ChampionAssignment links a champion application to an opportunity it may manage.
type ChampionAssignment struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	ApplicationID uint      `gorm:"column:application_id;not null;uniqueIndex:idx_champion_pair" json:"application_id"`
	OpportunityID uint      `gorm:"column:opportunity_id;not null;uniqueIndex:idx_champion_pair;index" json:"opportunity_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ChampionAssignment) TableName() string {
	return "champion_assignments"
}
