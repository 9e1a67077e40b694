package domain

// Decision values.
const (
	Qualified    = "Qualified"
	NotQualified = "Not Qualified"
)

// QualificationResult is one output row, keyed by the source row index.
type QualificationResult struct {
	Company         string  `db:"company" json:"company"`
	Title           string  `db:"title" json:"title"`
	DetailedService string  `db:"detailed_service" json:"detailed_service"`
	ServiceBucket   string  `db:"service_bucket" json:"service_bucket"`
	HQ              string  `db:"hq" json:"hq"`
	Employees       string  `db:"employees" json:"employees"`
	Revenue         string  `db:"revenue" json:"revenue"`
	IndustryMatch   bool    `db:"industry_match" json:"industry_match"`
	Decision        string  `db:"decision" json:"decision"`
	Reason          string  `db:"reason" json:"reason"`
	Confidence      string  `db:"confidence" json:"confidence"`
	Score           float64 `db:"score" json:"score"`
	URL             string  `db:"url" json:"url"`
	SourceIndex     int     `db:"source_index" json:"source_index"`
}
