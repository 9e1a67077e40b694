package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"leadqual-engine/internal/cachestore"
	"leadqual-engine/internal/config"
	"leadqual-engine/internal/domain"
	"leadqual-engine/internal/normalize"
)

// Company names containing any of these tokens are assumed gaming-adjacent.
var gamingNameTokens = []string{
	"games", "studio", "interactive", "entertainment", "gamedev", "game",
	"play", "mobile",
}

const industryPromptTemplate = `Does the company '%s' operate in game development / publishing or interactive entertainment? Answer YES or NO.`

// IndustryDetector decides whether a company is in the gaming sector.
// Resolution order: forced exclusion, trusted list, name heuristics,
// cache, oracle. Every branch writes through to the cache.
//
// The cache key includes the normalized title even though the exclusion
// and trusted branches are title-independent; only the heuristic/oracle
// branches actually vary by title. Keying by company alone would be a
// product decision, not a refactor.
type IndustryDetector struct {
	excluded map[string]bool
	trusted  *ahocorasick.Matcher
	tokens   *ahocorasick.Matcher
	cache    *cachestore.Cache[bool]
	oracle   Completer
	log      *slog.Logger
}

func NewIndustryDetector(
	lists config.IndustryLists,
	cache *cachestore.Cache[bool],
	completer Completer,
	log *slog.Logger,
) *IndustryDetector {
	excluded := make(map[string]bool, len(lists.ForcedNonGaming))
	for _, name := range lists.ForcedNonGaming {
		excluded[strings.ToLower(name)] = true
	}

	var trusted *ahocorasick.Matcher
	if len(lists.TrustedGameCompanies) > 0 {
		lowered := make([]string, len(lists.TrustedGameCompanies))
		for i, name := range lists.TrustedGameCompanies {
			lowered[i] = strings.ToLower(name)
		}
		trusted = ahocorasick.NewStringMatcher(lowered)
	}

	return &IndustryDetector{
		excluded: excluded,
		trusted:  trusted,
		tokens:   ahocorasick.NewStringMatcher(gamingNameTokens),
		cache:    cache,
		oracle:   completer,
		log:      log,
	}
}

func industryKey(company, title string) string {
	return normalize.Company(company) + "||" + normalize.Title(title)
}

// Detect reports whether the company looks like a gaming business, and
// which branch decided it.
func (d *IndustryDetector) Detect(ctx context.Context, company, title string) (bool, domain.Source) {
	key := industryKey(company, title)
	name := normalize.Company(company)

	if d.excluded[name] {
		d.cache.Put(key, false)
		return false, domain.SourceExcluded
	}

	if d.trusted != nil && len(d.trusted.Match([]byte(name))) > 0 {
		d.cache.Put(key, true)
		return true, domain.SourceCurated
	}

	if len(d.tokens.Match([]byte(name))) > 0 {
		d.cache.Put(key, true)
		return true, domain.SourceHeuristic
	}

	if flag, ok := d.cache.Get(key); ok {
		return flag, domain.SourceCache
	}

	out, ok := d.oracle.Query(ctx, fmt.Sprintf(industryPromptTemplate, company), 12)
	flag := ok && strings.Contains(strings.ToLower(out), "yes")
	d.cache.Put(key, flag)
	if !ok {
		return flag, domain.SourceDefault
	}
	return flag, domain.SourceOracle
}
