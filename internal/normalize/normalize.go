package normalize

import (
	"regexp"
	"strings"
)

var (
	seniorityRe = regexp.MustCompile(`\b(senior|sr|lead|principal|ii|iii|iv|jr|junior|mid|intern|internship)\b`)
	nonAlnumRe  = regexp.MustCompile(`[^a-z0-9 ]`)
)

// Text collapses whitespace, trims, and lowercases.
func Text(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Title reduces a job title to its canonical form: lowercased, seniority
// and level words stripped, punctuation removed, whitespace collapsed.
// "Senior Unreal Engineer II" and "unreal engineer" normalize to the same
// string, so they share one cache entry and one classification path.
func Title(title string) string {
	if title == "" {
		return ""
	}
	t := strings.ToLower(title)
	t = seniorityRe.ReplaceAllString(t, "")
	t = nonAlnumRe.ReplaceAllString(t, " ")
	return strings.Join(strings.Fields(t), " ")
}

// Company is the canonical company cache key.
func Company(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
