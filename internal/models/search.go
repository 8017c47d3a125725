package models

// SearchQuery captures the inputs of a single run. Empty fields are absent.
type SearchQuery struct {
	Keyword  string
	Location string
}

// HasKeyword reports whether the run should filter headings by keyword. Any
// non-empty word counts, including one made only of spaces.
func (q SearchQuery) HasKeyword() bool {
	return q.Keyword != ""
}
