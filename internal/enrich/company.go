package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"leadqual-engine/internal/cachestore"
	"leadqual-engine/internal/domain"
	"leadqual-engine/internal/normalize"
	"leadqual-engine/internal/oracle"
)

// Completer mirrors classify.Completer; the enricher only needs Query.
type Completer interface {
	Query(ctx context.Context, prompt string, maxTokens int) (string, bool)
}

const companyPromptTemplate = `Estimate HQ country, employee range, and revenue range for the company.
Employees must be one of: <10, 10-50, 50-500, 500-5000, 5000-20000, >20000
Revenue must be one of: <5M, 5M-50M, 50M-500M, 500M-1B, >1B
Return STRICT JSON with keys: hq_country, employees, revenue
Company: "%s"`

// CompanyEnricher resolves a company name to its profile. The curated
// trusted-stats table takes absolute precedence and is never overwritten
// by cached or oracle-derived data.
type CompanyEnricher struct {
	trusted *cachestore.Cache[domain.CompanyProfile]
	cache   *cachestore.Cache[domain.CompanyProfile]
	oracle  Completer
	log     *slog.Logger
}

func NewCompanyEnricher(
	trusted, cache *cachestore.Cache[domain.CompanyProfile],
	completer Completer,
	log *slog.Logger,
) *CompanyEnricher {
	return &CompanyEnricher{trusted: trusted, cache: cache, oracle: completer, log: log}
}

// Profile returns the company profile and the branch that resolved it.
// Oracle answers missing any of the three keys degrade to all-Unknown;
// the cache records the outcome either way so the question is asked once.
func (e *CompanyEnricher) Profile(ctx context.Context, company string) (domain.CompanyProfile, domain.Source) {
	key := normalize.Company(company)

	if p, ok := e.trusted.Get(key); ok {
		return p, domain.SourceCurated
	}
	if p, ok := e.cache.Get(key); ok {
		return p, domain.SourceCache
	}

	out, ok := e.oracle.Query(ctx, fmt.Sprintf(companyPromptTemplate, company), 180)
	if ok {
		if parsed := oracle.Repair(out); parsed != nil {
			hq, okH := oracle.StringField(parsed, "hq_country")
			emp, okE := oracle.StringField(parsed, "employees")
			rev, okR := oracle.StringField(parsed, "revenue")
			if okH && okE && okR {
				p := domain.CompanyProfile{HQCountry: hq, Employees: emp, Revenue: rev}
				e.cache.Put(key, p)
				return p, domain.SourceOracle
			}
		}
		e.log.Debug("oracle company answer unusable", "company", company)
	}

	p := domain.UnknownProfile()
	e.cache.Put(key, p)
	return p, domain.SourceDefault
}
