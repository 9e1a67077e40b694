package store

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadqual-engine/internal/domain"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleResult(idx int) domain.QualificationResult {
	return domain.QualificationResult{
		Company:         "Epic Games",
		Title:           "Gameplay Programmer",
		DetailedService: "Programming",
		ServiceBucket:   domain.BucketCoDev,
		HQ:              "United States",
		Employees:       ">20000",
		Revenue:         ">1B",
		IndustryMatch:   true,
		Decision:        domain.Qualified,
		Reason:          "Epic Games matches ICP (employee size ok, revenue ok, region ok, service relevant, gaming industry match).",
		Confidence:      "95%",
		Score:           100,
		URL:             "https://jobs/1",
		SourceIndex:     idx,
	}
}

func TestUpsertAndLoadResults(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	r0 := sampleResult(0)
	r2 := sampleResult(2)
	r2.Company = "Ubisoft"
	r2.URL = "https://jobs/2"

	require.NoError(t, UpsertResult(ctx, db, r2))
	require.NoError(t, UpsertResult(ctx, db, r0))

	got, err := LoadResults(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, r0, got[0]) // source order, not insert order
	assert.Equal(t, r2, got[1])
}

func TestUpsertReplacesByIndex(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	r := sampleResult(5)
	require.NoError(t, UpsertResult(ctx, db, r))

	r.Decision = domain.NotQualified
	r.Score = 40
	require.NoError(t, UpsertResult(ctx, db, r))

	got, err := LoadResults(ctx, db)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.NotQualified, got[0].Decision)
	assert.Equal(t, 40.0, got[0].Score)
}

func TestProcessedIndicesAndSeenURLs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	r0 := sampleResult(0)
	r3 := sampleResult(3)
	r3.URL = "" // manual score rows carry no URL

	require.NoError(t, UpsertResult(ctx, db, r0))
	require.NoError(t, UpsertResult(ctx, db, r3))

	idx, err := ProcessedIndices(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, idx)

	seen, err := SeenURLs(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"https://jobs/1": true}, seen)
}

func TestExportCSV(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, UpsertResult(ctx, db, sampleResult(0)))

	out := filepath.Join(t.TempDir(), "qualified.csv")
	require.NoError(t, ExportCSV(ctx, db, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Epic Games", rows[1][0])
	assert.Equal(t, "true", rows[1][7])
	assert.Equal(t, "100", rows[1][11])
	assert.Equal(t, "0", rows[1][13])
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, UpsertResult(context.Background(), db, sampleResult(0)))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := LoadResults(context.Background(), db)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
