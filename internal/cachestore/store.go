package cachestore

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"leadqual-engine/internal/domain"
)

// Store owns the four on-disk caches plus the progress checkpoint. It is
// loaded once at startup and mutated in place for the process lifetime;
// the batch run is the only writer.
type Store struct {
	Classify *Cache[domain.ServiceClassification] // key: normalized title
	Company  *Cache[domain.CompanyProfile]        // key: lowercased trimmed company
	Industry *Cache[bool]                         // key: company||normalized title
	Trusted  *Cache[domain.CompanyProfile]        // curated, never written by the enricher

	checkpointPath string
	log            *slog.Logger
}

// Checkpoint records which input row indices have been processed.
type Checkpoint struct {
	ProcessedIndices []int  `json:"processed_indices"`
	LastSaved        string `json:"last_saved"`
}

// Open loads every cache from <dir>, seeding the curated trusted-stats
// file on first run.
func Open(dir string, log *slog.Logger) *Store {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("cache dir not writable", "dir", dir, "error", err)
	}

	s := &Store{
		Classify:       LoadCache[domain.ServiceClassification](filepath.Join(dir, "classify_cache.json"), log),
		Company:        LoadCache[domain.CompanyProfile](filepath.Join(dir, "company_cache.json"), log),
		Industry:       LoadCache[bool](filepath.Join(dir, "industry_cache.json"), log),
		Trusted:        LoadCache[domain.CompanyProfile](filepath.Join(dir, "trusted_stats.json"), log),
		checkpointPath: filepath.Join(dir, "progress_checkpoint.json"),
		log:            log,
	}

	if _, err := os.Stat(filepath.Join(dir, "trusted_stats.json")); os.IsNotExist(err) {
		for name, profile := range seedTrustedStats() {
			s.Trusted.m[name] = profile
		}
		if err := s.Trusted.Flush(); err != nil {
			log.Warn("trusted stats seed failed", "error", err)
		}
	}

	return s
}

// Flush rewrites every cache file. The files are independent, so they
// flush concurrently.
func (s *Store) Flush() error {
	var g errgroup.Group
	g.Go(s.Classify.Flush)
	g.Go(s.Company.Flush)
	g.Go(s.Industry.Flush)
	g.Go(s.Trusted.Flush)
	return g.Wait()
}

// LoadCheckpoint returns the persisted checkpoint, or an empty one if the
// file is missing or malformed.
func (s *Store) LoadCheckpoint() Checkpoint {
	var cp Checkpoint
	b, err := os.ReadFile(s.checkpointPath)
	if err != nil {
		return cp
	}
	if err := json.Unmarshal(b, &cp); err != nil {
		s.log.Warn("checkpoint malformed, starting from scratch", "error", err)
		return Checkpoint{}
	}
	return cp
}

// SaveCheckpoint persists the processed-index set with a timestamp.
func (s *Store) SaveCheckpoint(processed map[int]bool) error {
	indices := make([]int, 0, len(processed))
	for idx := range processed {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	cp := Checkpoint{
		ProcessedIndices: indices,
		LastSaved:        time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.checkpointPath, b, 0o644)
}

func seedTrustedStats() map[string]domain.CompanyProfile {
	return map[string]domain.CompanyProfile{
		"epic games":     {HQCountry: "United States", Employees: ">20000", Revenue: ">1B"},
		"ubisoft":        {HQCountry: "France", Employees: ">20000", Revenue: ">1B"},
		"riot games":     {HQCountry: "United States", Employees: "5000-20000", Revenue: ">1B"},
		"ea":             {HQCountry: "United States", Employees: ">20000", Revenue: ">1B"},
		"cd projekt red": {HQCountry: "Poland", Employees: "5000-20000", Revenue: "500M-1B"},
	}
}
