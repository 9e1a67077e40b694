package domain

// JobRecord is one scraped job posting as handed over by the scraper.
// Immutable once read; Index is the position in the input table and is
// what the checkpoint tracks.
type JobRecord struct {
	Company  string
	Title    string
	Location string
	URL      string
	Index    int
}
