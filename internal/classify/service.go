package classify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"strings"

	"leadqual-engine/internal/cachestore"
	"leadqual-engine/internal/domain"
	"leadqual-engine/internal/normalize"
	"leadqual-engine/internal/oracle"
)

// Completer is the oracle surface the classifiers need. Not-ok means
// unavailable or exhausted; callers fall back to a conservative default.
type Completer interface {
	Query(ctx context.Context, prompt string, maxTokens int) (string, bool)
}

const servicePromptTemplate = `Classify the job title into a JSON with keys:
"detailed_service" and "service_bucket" (Art / Co-Dev / Full / None).
Job Title: "%s"`

// ServiceClassifier resolves a job title to a service bucket: configured
// rule table first, cache second, oracle third. Every resolution is
// written through to the cache so the rule table's effect stays
// observable in the cache file.
type ServiceClassifier struct {
	mapping map[string]domain.ServiceClassification
	keys    []string // mapping keys, longest first
	cache   *cachestore.Cache[domain.ServiceClassification]
	oracle  Completer
	log     *slog.Logger
}

func NewServiceClassifier(
	mapping map[string]domain.ServiceClassification,
	cache *cachestore.Cache[domain.ServiceClassification],
	completer Completer,
	log *slog.Logger,
) *ServiceClassifier {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	// Longest key first so "engine programmer" beats "engineer".
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return &ServiceClassifier{
		mapping: mapping,
		keys:    keys,
		cache:   cache,
		oracle:  completer,
		log:     log,
	}
}

// Classify returns the service classification for a title and the branch
// that produced it. Rule hits never touch the oracle, regardless of its
// availability.
func (c *ServiceClassifier) Classify(ctx context.Context, title string) (domain.ServiceClassification, domain.Source) {
	key := normalize.Title(title)

	for _, k := range c.keys {
		if strings.Contains(key, k) {
			svc := c.mapping[k]
			c.cache.Put(key, svc)
			return svc, domain.SourceRule
		}
	}

	if svc, ok := c.cache.Get(key); ok {
		return svc, domain.SourceCache
	}

	out, ok := c.oracle.Query(ctx, fmt.Sprintf(servicePromptTemplate, title), 150)
	if ok {
		if parsed := oracle.Repair(out); parsed != nil {
			detailed, okD := oracle.StringField(parsed, "detailed_service")
			bucket, okB := oracle.StringField(parsed, "service_bucket")
			if okD && okB {
				svc := domain.ServiceClassification{DetailedService: detailed, ServiceBucket: bucket}
				c.cache.Put(key, svc)
				return svc, domain.SourceOracle
			}
		}
		c.log.Debug("oracle classification unusable", "title", title)
	}

	svc := domain.ServiceClassification{DetailedService: "Unknown", ServiceBucket: domain.BucketNone}
	c.cache.Put(key, svc)
	return svc, domain.SourceDefault
}
