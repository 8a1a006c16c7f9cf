package constants

import (
	"database/sql/driver"
	"fmt"
)

// ActorRole is the management role a request is evaluated under
type ActorRole string

const (
	RoleAnonymous ActorRole = "anonymous"
	RoleVolunteer ActorRole = "volunteer"
	RoleAdmin     ActorRole = "admin"
)

func (r ActorRole) String() string { return string(r) }

// ApplicationStatus mirrors the status column of the applications table
type ApplicationStatus string

const (
	StatusPending           ApplicationStatus = "Pending"
	StatusAssigned          ApplicationStatus = "Assigned"
	StatusClosedCompleted   ApplicationStatus = "Closed-Completed"
	StatusClosedNotAssigned ApplicationStatus = "Closed-Not Assigned"
)

// ApplicationStatuses is the fixed set of storable statuses.
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusAssigned,
	StatusClosedCompleted,
	StatusClosedNotAssigned,
}

func (s ApplicationStatus) String() string { return string(s) }

// IsTerminal reports whether no transition may leave s.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusClosedCompleted || s == StatusClosedNotAssigned
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (s *ApplicationStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = ApplicationStatus(v)
	case []byte:
		*s = ApplicationStatus(v)
	default:
		return fmt.Errorf("ApplicationStatus: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s ApplicationStatus) Value() (driver.Value, error) { return string(s), nil }

// ChampionLeaderTitle is the opportunity whose assigned applicants become champions.
const ChampionLeaderTitle = "Champion-Leader"
