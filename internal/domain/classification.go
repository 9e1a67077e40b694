package domain

// Service buckets: coarse category of game-dev service implied by a title.
const (
	BucketArt   = "Art"
	BucketCoDev = "Co-Dev"
	BucketFull  = "Full"
	BucketNone  = "None"
)

// ServiceClassification is produced once per distinct normalized title
// and cached indefinitely under that key.
type ServiceClassification struct {
	DetailedService string `json:"detailed_service"`
	ServiceBucket   string `json:"service_bucket"`
}

// Source tags which resolution branch produced a value, so callers and
// tests can tell a rule hit from a cached or defaulted one.
type Source string

const (
	SourceRule      Source = "rule"
	SourceCurated   Source = "curated"
	SourceCache     Source = "cache"
	SourceOracle    Source = "oracle"
	SourceHeuristic Source = "heuristic"
	SourceExcluded  Source = "excluded"
	SourceDefault   Source = "default"
)
