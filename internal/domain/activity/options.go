package activity

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	LeagueID *int64
	SeasonID *int64
	Type     *Type
	Limit    int
	Offset   int
}
