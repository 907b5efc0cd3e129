package dataset_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/matchweather/internal/dataset"
	"github.com/pitchside/matchweather/internal/ingest"
	"github.com/pitchside/matchweather/internal/observability"
)

const matchCSV = `date,city,total_runs,season
2021-04-10,Mumbai,180,2021
2021-04-11,Chennai,325,2021
not-a-date,Delhi,312,2021
`

const weatherCSV = `date,city,temp_c,humidity
2021-04-10,Mumbai,32,60
2021-04-11,Chennai,34.5,71
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestStore(t *testing.T) (*dataset.Store, string, string) {
	t.Helper()
	dir := t.TempDir()
	matchPath := writeFixture(t, dir, "matches.csv", matchCSV)
	weatherPath := writeFixture(t, dir, "weather.csv", weatherCSV)
	store := dataset.New(matchPath, weatherPath, testLogger(), observability.NewMetricsForTesting())
	return store, matchPath, weatherPath
}

func TestStore_SnapshotLoadsAndJoins(t *testing.T) {
	store, _, _ := newTestStore(t)

	snap, err := store.Snapshot()
	require.NoError(t, err)

	assert.Len(t, snap.Merged.Rows, 2)
	assert.Equal(t, 1, snap.MatchDropped.UnparseableDate)
	assert.Zero(t, snap.WeatherDropped.Total())
	assert.Equal(t, []string{"Chennai", "Mumbai"}, snap.Facets.Cities)
}

func TestStore_SnapshotIsCached(t *testing.T) {
	store, _, _ := newTestStore(t)

	first, err := store.Snapshot()
	require.NoError(t, err)
	second, err := store.Snapshot()
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestStore_InvalidateForcesReload(t *testing.T) {
	store, _, _ := newTestStore(t)

	first, err := store.Snapshot()
	require.NoError(t, err)

	store.Invalidate()

	second, err := store.Snapshot()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Merged.Rows, len(first.Merged.Rows))
}

func TestStore_SourceChangeMarksSnapshotStale(t *testing.T) {
	store, _, weatherPath := newTestStore(t)

	first, err := store.Snapshot()
	require.NoError(t, err)
	require.Len(t, first.Merged.Rows, 2)

	// Rewrite the weather file with one fewer row; the size change alone
	// must trigger a reload even when mtime granularity hides the write.
	writeFixture(t, filepath.Dir(weatherPath), "weather.csv",
		"date,city,temp_c,humidity\n2021-04-10,Mumbai,32,60\n")

	second, err := store.Snapshot()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Merged.Rows, 1)
}

func TestStore_MissingColumnsIsFatal(t *testing.T) {
	dir := t.TempDir()
	matchPath := writeFixture(t, dir, "matches.csv", "date,city\n2021-04-10,Mumbai\n")
	weatherPath := writeFixture(t, dir, "weather.csv", weatherCSV)
	store := dataset.New(matchPath, weatherPath, testLogger(), observability.NewMetricsForTesting())

	_, err := store.Snapshot()
	require.Error(t, err)

	var missing *ingest.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"total_runs"}, missing.Missing)

	// Still failing and not ready: a schema error is a hard stop, never a
	// partially loaded table.
	require.Error(t, store.CheckReadiness(context.Background()))
}

func TestStore_ZeroRowJoinIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	matchPath := writeFixture(t, dir, "matches.csv",
		"date,city,total_runs\n2021-04-10,Bengaluru,289\n")
	weatherPath := writeFixture(t, dir, "weather.csv", weatherCSV)
	store := dataset.New(matchPath, weatherPath, testLogger(), observability.NewMetricsForTesting())

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Merged.Rows)
}

func TestStore_CheckReadiness(t *testing.T) {
	store, _, _ := newTestStore(t)

	require.Error(t, store.CheckReadiness(context.Background()))

	_, err := store.Snapshot()
	require.NoError(t, err)

	assert.NoError(t, store.CheckReadiness(context.Background()))
}

func TestStore_LoadedAtUsesInjectedClock(t *testing.T) {
	frozen := time.Date(2021, 4, 20, 12, 0, 0, 0, time.UTC)
	dataset.SetClock(clockwork.NewFakeClockAt(frozen))
	defer dataset.SetClock(nil)

	store, _, _ := newTestStore(t)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, frozen, snap.LoadedAt)
}

func TestStore_WatchInvalidatesOnSourceWrite(t *testing.T) {
	store, _, weatherPath := newTestStore(t)

	first, err := store.Snapshot()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()

	// Give the watcher a moment to register, then touch the file.
	time.Sleep(100 * time.Millisecond)
	writeFixture(t, filepath.Dir(weatherPath), "weather.csv",
		"date,city,temp_c,humidity\n2021-04-10,Mumbai,32,60\n")

	require.Eventually(t, func() bool {
		snap, err := store.Snapshot()
		return err == nil && snap != first
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
