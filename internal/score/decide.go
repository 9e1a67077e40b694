package score

import (
	"fmt"

	"leadqual-engine/internal/config"
	"leadqual-engine/internal/domain"
)

// Decision is a verdict with the weighted score attached for reporting.
type Decision struct {
	Verdict
	Score float64
}

// Decide reconciles the two policies. The legacy gate wins when it
// qualifies; otherwise a weighted score at or above the threshold
// overrides to Qualified, so a company failing one hard criterion can
// still qualify on aggregate strength. Otherwise the legacy verdict
// stands, score attached.
func Decide(company, bucket, hq, employees, revenue string, industry bool, icp config.ICPRules) Decision {
	legacy := LegacyGate(company, bucket, hq, employees, revenue, industry, icp.GoodRegions)
	weighted := Weighted(bucket, hq, employees, revenue, industry, icp.GoodRegions, icp.Weights)

	if legacy.Decision == domain.Qualified {
		return Decision{Verdict: legacy, Score: weighted}
	}

	if weighted >= icp.ScoreThreshold {
		return Decision{
			Verdict: Verdict{
				Decision:   domain.Qualified,
				Reason:     fmt.Sprintf("%s passes weighted score (%v >= %v).", company, weighted, icp.ScoreThreshold),
				Confidence: fmt.Sprintf("%d%%", int(weighted)),
				Reasons:    []string{"passes weighted score"},
			},
			Score: weighted,
		}
	}

	return Decision{Verdict: legacy, Score: weighted}
}
