package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"leadqual-engine/internal/domain"
)

// IndustryLists drive the industry detector: forced_non_gaming is an
// exact-match exclusion list, trusted_game_companies a substring
// allowlist.
type IndustryLists struct {
	TrustedGameCompanies []string `json:"trusted_game_companies"`
	ForcedNonGaming      []string `json:"forced_non_gaming"`
}

type RevenueTable struct {
	Ranges []string `json:"ranges"`
}

type Weights struct {
	Employees float64 `json:"employees"`
	Revenue   float64 `json:"revenue"`
	Region    float64 `json:"region"`
	Service   float64 `json:"service"`
	Industry  float64 `json:"industry"`
}

type ICPRules struct {
	GoodRegions    []string `json:"good_regions"`
	Weights        Weights  `json:"weights"`
	ScoreThreshold float64  `json:"score_threshold"`
}

// RuleTables holds the five operator-editable rule documents.
type RuleTables struct {
	ServiceMapping map[string]domain.ServiceClassification
	RegionMapping  map[string][]string
	Industry       IndustryLists
	Revenue        RevenueTable
	ICP            ICPRules
}

// LoadRules reads the rule documents from <dir>, seeding any missing file
// with its default so the schema is discoverable without code changes. A
// malformed file yields its default in memory but is left on disk
// untouched. Never fails: every degradation is a logged fallback.
func LoadRules(dir string, log *slog.Logger) *RuleTables {
	r := &RuleTables{
		ServiceMapping: loadOrSeed(dir, "service_mapping", defaultServiceMapping(), log),
		RegionMapping:  loadOrSeed(dir, "region_mapping", defaultRegionMapping(), log),
		Industry:       loadOrSeed(dir, "industry_mapping", defaultIndustryLists(), log),
		Revenue:        loadOrSeed(dir, "revenue_mapping", RevenueTable{Ranges: domain.RevenueRanges}, log),
	}
	r.ICP = loadOrSeed(dir, "icp_rules", defaultICPRules(), log)

	// A partial operator edit (say, only good_regions) must not zero out
	// the weights or the threshold; missing sections fall back per-field.
	def := defaultICPRules()
	if r.ICP.Weights == (Weights{}) {
		log.Warn("icp_rules has no weights, using defaults")
		r.ICP.Weights = def.Weights
	}
	if r.ICP.ScoreThreshold <= 0 {
		log.Warn("icp_rules has no score_threshold, using default", "threshold", def.ScoreThreshold)
		r.ICP.ScoreThreshold = def.ScoreThreshold
	}
	if len(r.ICP.GoodRegions) == 0 {
		r.ICP.GoodRegions = def.GoodRegions
	}

	for i, reg := range r.ICP.GoodRegions {
		r.ICP.GoodRegions[i] = strings.ToLower(reg)
	}
	return r
}

func loadOrSeed[T any](dir, name string, def T, log *slog.Logger) T {
	path := filepath.Join(dir, name+".json")

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := writeJSON(path, def); werr != nil {
			log.Warn("could not seed rule table", "table", name, "error", werr)
		}
		return def
	}
	if err != nil {
		log.Warn("rule table unreadable, using defaults", "table", name, "error", err)
		return def
	}

	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		// Keep the malformed file so the operator's edits are not lost.
		log.Warn("rule table malformed, using defaults", "table", name, "error", err)
		return def
	}
	return out
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
