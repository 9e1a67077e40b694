package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadqual-engine/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var ruleFiles = []string{
	"service_mapping.json", "region_mapping.json", "industry_mapping.json",
	"revenue_mapping.json", "icp_rules.json",
}

func TestLoadRulesSeedsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	r := LoadRules(dir, testLogger())

	for _, name := range ruleFiles {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	svc, ok := r.ServiceMapping["animator"]
	require.True(t, ok)
	assert.Equal(t, domain.BucketArt, svc.ServiceBucket)

	assert.Equal(t, 75.0, r.ICP.ScoreThreshold)
	assert.Equal(t, 25.0, r.ICP.Weights.Employees)
	assert.Contains(t, r.ICP.GoodRegions, "united states")
	assert.Contains(t, r.Industry.ForcedNonGaming, "linkedin")
	assert.Equal(t, domain.RevenueRanges, r.Revenue.Ranges)
}

func TestLoadRulesReadsOperatorEdits(t *testing.T) {
	dir := t.TempDir()
	LoadRules(dir, testLogger())

	custom := map[string]domain.ServiceClassification{
		"shader wizard": {DetailedService: "Rendering", ServiceBucket: domain.BucketCoDev},
	}
	b, err := json.Marshal(custom)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service_mapping.json"), b, 0o644))

	r := LoadRules(dir, testLogger())
	assert.Equal(t, custom, r.ServiceMapping)
}

func TestLoadRulesMalformedFileKeptOnDisk(t *testing.T) {
	dir := t.TempDir()
	broken := []byte("{ this is not json")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icp_rules.json"), broken, 0o644))

	r := LoadRules(dir, testLogger())

	// Defaults in memory, operator's file untouched.
	assert.Equal(t, 75.0, r.ICP.ScoreThreshold)
	b, err := os.ReadFile(filepath.Join(dir, "icp_rules.json"))
	require.NoError(t, err)
	assert.Equal(t, broken, b)
}

func TestLoadRulesBackfillsPartialICPRules(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icp_rules.json"),
		[]byte(`{"good_regions": ["Mars"]}`), 0o644))

	r := LoadRules(dir, testLogger())

	// The operator's regions stick; absent weights and threshold fall
	// back instead of zeroing out and qualifying every lead.
	assert.Equal(t, []string{"mars"}, r.ICP.GoodRegions)
	assert.Equal(t, defaultICPRules().Weights, r.ICP.Weights)
	assert.Equal(t, 75.0, r.ICP.ScoreThreshold)
}

func TestLoadRulesBackfillsEmptyICPFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "icp_rules.json"), []byte(`{}`), 0o644))

	r := LoadRules(dir, testLogger())

	def := defaultICPRules()
	assert.Equal(t, def.Weights, r.ICP.Weights)
	assert.Equal(t, def.ScoreThreshold, r.ICP.ScoreThreshold)
	assert.Equal(t, def.GoodRegions, r.ICP.GoodRegions)
}

func TestLoadRulesLowercasesGoodRegions(t *testing.T) {
	dir := t.TempDir()
	icp := defaultICPRules()
	icp.GoodRegions = []string{"United States", "FRANCE"}
	require.NoError(t, writeJSON(filepath.Join(dir, "icp_rules.json"), icp))

	r := LoadRules(dir, testLogger())
	assert.Equal(t, []string{"united states", "france"}, r.ICP.GoodRegions)
}
