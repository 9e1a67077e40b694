package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"

	"leadqual-engine/internal/domain"
)

// UpsertResult writes one qualification result keyed by its source row
// index. Re-running a row replaces its previous record, which keeps
// resumed runs idempotent.
func UpsertResult(ctx context.Context, db *sqlx.DB, r domain.QualificationResult) error {
	_, err := db.NamedExecContext(ctx, `
INSERT OR REPLACE INTO results
  (source_index, company, title, detailed_service, service_bucket,
   hq, employees, revenue, industry_match, decision, reason, confidence, score, url)
VALUES
  (:source_index, :company, :title, :detailed_service, :service_bucket,
   :hq, :employees, :revenue, :industry_match, :decision, :reason, :confidence, :score, :url);`, r)
	if err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

// LoadResults returns every stored result in source order.
func LoadResults(ctx context.Context, db *sqlx.DB) ([]domain.QualificationResult, error) {
	var out []domain.QualificationResult
	err := db.SelectContext(ctx, &out, `
SELECT source_index, company, title, detailed_service, service_bucket,
       hq, employees, revenue, industry_match, decision, reason, confidence, score, url
FROM results
ORDER BY source_index;`)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	return out, nil
}

// ProcessedIndices returns the source indices already present, for
// reconciling the checkpoint against the partial results on resume.
func ProcessedIndices(ctx context.Context, db *sqlx.DB) ([]int, error) {
	var out []int
	err := db.SelectContext(ctx, &out, `SELECT source_index FROM results ORDER BY source_index;`)
	if err != nil {
		return nil, fmt.Errorf("processed indices: %w", err)
	}
	return out, nil
}

// SeenURLs rebuilds the duplicate-suppression set from stored results.
func SeenURLs(ctx context.Context, db *sqlx.DB) (map[string]bool, error) {
	var urls []string
	err := db.SelectContext(ctx, &urls, `SELECT url FROM results WHERE url != '';`)
	if err != nil {
		return nil, fmt.Errorf("seen urls: %w", err)
	}
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		seen[u] = true
	}
	return seen, nil
}

var csvHeader = []string{
	"company", "title", "detailed_service", "service_bucket",
	"hq", "employees", "revenue", "industry_match",
	"decision", "reason", "confidence", "score", "url", "source_index",
}

// ExportCSV writes the full result set to path, overwriting. This is the
// artifact of record handed to the dashboard.
func ExportCSV(ctx context.Context, db *sqlx.DB, path string) error {
	results, err := LoadResults(ctx, db)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Company, r.Title, r.DetailedService, r.ServiceBucket,
			r.HQ, r.Employees, r.Revenue, strconv.FormatBool(r.IndustryMatch),
			r.Decision, r.Reason, r.Confidence,
			strconv.FormatFloat(r.Score, 'f', -1, 64),
			r.URL, strconv.Itoa(r.SourceIndex),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
