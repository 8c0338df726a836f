package activity

import "time"

// Type identifies the kind of admin mutation recorded in the log.
type Type string

const (
	TypeLeagueCreated    Type = "league_created"
	TypeLeagueUpdated    Type = "league_updated"
	TypeSeasonCreated    Type = "season_created"
	TypeSeasonUpdated    Type = "season_updated"
	TypeSeasonDeleted    Type = "season_deleted"
	TypeSeasonVisibility Type = "season_visibility"
	TypeAdminLogin       Type = "admin_login"
	TypeAdminLoginFailed Type = "admin_login_failed"
	TypeAdminLogout      Type = "admin_logout"
)

// Entry is one event in the audit log.
type Entry struct {
	ID        int64     `json:"id"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	Details   string    `json:"details,omitempty"` // JSON string
	LeagueID  *int64    `json:"league_id,omitempty"`
	SeasonID  *int64    `json:"season_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
