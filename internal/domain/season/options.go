package season

import "cloud.google.com/go/civil"

// ListOptions provides filtering options for listing seasons.
type ListOptions struct {
	Sport    string
	LeagueID int64
	// From and To select seasons whose signup window, play window, or
	// signup-start-to-season-end span overlaps [From, To]. Both must be set
	// for the filter to apply.
	From          *civil.Date
	To            *civil.Date
	IncludeHidden bool
}
