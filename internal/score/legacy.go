package score

import (
	"fmt"
	"strings"

	"leadqual-engine/internal/domain"
)

// Verdict is a structured qualification verdict: the decision, a
// confidence label, the human-readable reason, and the individual reason
// fragments that contributed.
type Verdict struct {
	Decision   string
	Reason     string
	Confidence string
	Reasons    []string
}

// LegacyGate is the all-or-nothing five-criterion rule that predates the
// weighted score: employee range mid/large, revenue mid/large, HQ in a
// good region, a relevant service bucket, and a gaming-industry match.
func LegacyGate(company, bucket, hq, employees, revenue string, industry bool, goodRegions []string) Verdict {
	var reasons []string
	pass := true

	check := func(ok bool, good, bad string) {
		if ok {
			reasons = append(reasons, good)
		} else {
			reasons = append(reasons, bad)
			pass = false
		}
	}

	check(Employees(employees) > 0, "employee size ok", "employee size too small")
	check(Revenue(revenue) > 0, "revenue ok", "revenue too low")
	check(regionMatches(hq, goodRegions), "region ok", "region outside ICP")
	check(bucket != domain.BucketNone, "service relevant", "service mismatch")
	check(industry, "gaming industry match", "not gaming industry")

	if pass {
		return Verdict{
			Decision:   domain.Qualified,
			Reason:     fmt.Sprintf("%s matches ICP (%s).", company, strings.Join(reasons, ", ")),
			Confidence: "95%",
			Reasons:    reasons,
		}
	}
	return Verdict{
		Decision:   domain.NotQualified,
		Reason:     strings.Join(reasons, ", "),
		Confidence: "75%",
		Reasons:    reasons,
	}
}
