package league

import "time"

// Source values record where a league entry came from.
const (
	SourceSeed   = "seed"
	SourceManual = "manual"
)

// League is an organization that runs seasons for one sport.
type League struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Organization string    `json:"organization,omitempty"`
	Sport        string    `json:"sport"`
	Website      string    `json:"website"`
	Source       string    `json:"source"`
	Active       bool      `json:"active"`
	SeasonCount  int       `json:"season_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
