package models

// JobListing is one complete posting taken from a listing card.
type JobListing struct {
	Title    string
	Link     string
	Company  string
	Location string
}

// KeywordMatch is a result heading whose text contains the filter keyword.
type KeywordMatch struct {
	Title string
	Link  string
}
