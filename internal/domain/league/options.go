package league

// ListOptions provides filtering options for listing leagues.
type ListOptions struct {
	Sport      string
	ActiveOnly bool
}
