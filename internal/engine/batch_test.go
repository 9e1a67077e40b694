package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadqual-engine/internal/cachestore"
	"leadqual-engine/internal/config"
	"leadqual-engine/internal/domain"
	"leadqual-engine/internal/store"
)

type batchFixture struct {
	dir    string
	orc    *fakeOracle
	caches *cachestore.Store
	db     *sqlx.DB
	batch  *Batch
}

func newBatchFixture(t *testing.T, dir string, orc *fakeOracle) *batchFixture {
	t.Helper()

	rules := config.LoadRules(filepath.Join(dir, "config"), testLogger())
	caches := cachestore.Open(filepath.Join(dir, "cache"), testLogger())

	db, err := store.Open(filepath.Join(dir, "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	eng := New(rules, caches, orc, testLogger())
	b := NewBatch(eng, caches, db, BatchOptions{
		SaveEveryN: 2,
		LockPath:   filepath.Join(dir, "run.lock"),
		OutputCSV:  filepath.Join(dir, "qualified.csv"),
	}, testLogger())
	b.sleep = func(time.Duration) {}

	return &batchFixture{dir: dir, orc: orc, caches: caches, db: db, batch: b}
}

func batchRows() []domain.JobRecord {
	return []domain.JobRecord{
		{Company: "Epic Games", Title: "Senior Gameplay Engineer", URL: "https://jobs/1", Index: 0},
		{Company: "Ubisoft", Title: "VFX Artist", URL: "https://jobs/1", Index: 1}, // same posting, reposted
		{Company: "Ghost Inc", Title: "", URL: "https://jobs/3", Index: 2},
		{Company: "Acme Corp", Title: "Level Designer", URL: "https://jobs/4", Index: 3},
	}
}

func TestBatchRun(t *testing.T) {
	f := newBatchFixture(t, t.TempDir(), &fakeOracle{ok: false})

	results, err := f.batch.Run(context.Background(), batchRows())
	require.NoError(t, err)

	// Row 1 is a duplicate URL, row 2 has no title: both skipped, both
	// still marked processed.
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].SourceIndex)
	assert.Equal(t, 3, results[1].SourceIndex)

	assert.Equal(t, domain.Qualified, results[0].Decision)
	assert.Equal(t, domain.NotQualified, results[1].Decision)

	cp := f.caches.LoadCheckpoint()
	assert.Equal(t, []int{0, 1, 2, 3}, cp.ProcessedIndices)

	// Acme needed one profile query and one industry query; the trusted
	// row needed none.
	assert.Equal(t, 2, f.orc.calls)

	_, err = os.Stat(filepath.Join(f.dir, "qualified.csv"))
	assert.NoError(t, err)
}

func TestBatchResumeSkipsProcessedRows(t *testing.T) {
	dir := t.TempDir()

	first := newBatchFixture(t, dir, &fakeOracle{ok: false})
	_, err := first.batch.Run(context.Background(), batchRows())
	require.NoError(t, err)
	require.NoError(t, first.db.Close())

	// Fresh process: everything reloaded from disk.
	second := newBatchFixture(t, dir, &fakeOracle{ok: false})
	results, err := second.batch.Run(context.Background(), batchRows())
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.Zero(t, second.orc.calls)
}

func TestBatchResumeFromCheckpointOnly(t *testing.T) {
	dir := t.TempDir()
	f := newBatchFixture(t, dir, &fakeOracle{ok: false})

	// Simulate a prior run that checkpointed row 3 before crashing.
	require.NoError(t, f.caches.SaveCheckpoint(map[int]bool{3: true}))

	results, err := f.batch.Run(context.Background(), batchRows())
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].SourceIndex)
	assert.Zero(t, f.orc.calls)
}

func TestBatchRowWriteFailureSkipsAndContinues(t *testing.T) {
	f := newBatchFixture(t, t.TempDir(), &fakeOracle{})

	// Make the middle row's write fail, as a disk error would.
	_, err := f.db.Exec(`
CREATE TRIGGER results_fail BEFORE INSERT ON results
WHEN NEW.source_index = 1
BEGIN SELECT RAISE(ABORT, 'simulated write failure'); END;`)
	require.NoError(t, err)

	rows := []domain.JobRecord{
		{Company: "Epic Games", Title: "Senior Gameplay Engineer", URL: "https://jobs/1", Index: 0},
		{Company: "Ubisoft", Title: "VFX Artist", URL: "https://jobs/2", Index: 1},
		{Company: "Riot Games", Title: "Animator", URL: "https://jobs/3", Index: 2},
	}

	results, err := f.batch.Run(context.Background(), rows)
	require.NoError(t, err)

	// The failed row is dropped from output and left unprocessed so a
	// later run can retry it; the rest of the batch completes.
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].SourceIndex)
	assert.Equal(t, 2, results[1].SourceIndex)
	assert.Equal(t, []int{0, 2}, f.caches.LoadCheckpoint().ProcessedIndices)

	// Once the write path recovers, a resumed run picks the row up.
	_, err = f.db.Exec(`DROP TRIGGER results_fail;`)
	require.NoError(t, err)

	results, err = f.batch.Run(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []int{0, 1, 2}, f.caches.LoadCheckpoint().ProcessedIndices)
}

func TestBatchRefusesSecondLock(t *testing.T) {
	f := newBatchFixture(t, t.TempDir(), &fakeOracle{})

	fl := flock.New(f.batch.opts.LockPath)
	locked, err := fl.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer func() { _ = fl.Unlock() }()

	_, err = f.batch.Run(context.Background(), batchRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another run holds")
}

func TestBatchOptionDefaults(t *testing.T) {
	b := NewBatch(nil, nil, nil, BatchOptions{}, testLogger())

	assert.Equal(t, 50, b.opts.SaveEveryN)
	assert.Equal(t, 50*time.Millisecond, b.opts.JitterMin)
	assert.Equal(t, 150*time.Millisecond, b.opts.JitterMax)
}

func TestJitterStaysInBounds(t *testing.T) {
	b := NewBatch(nil, nil, nil, BatchOptions{
		JitterMin: 5 * time.Millisecond,
		JitterMax: 10 * time.Millisecond,
	}, testLogger())

	for i := 0; i < 100; i++ {
		d := b.jitter()
		assert.GreaterOrEqual(t, d, 5*time.Millisecond)
		assert.Less(t, d, 10*time.Millisecond)
	}
}
