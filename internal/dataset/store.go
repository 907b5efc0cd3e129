// Package dataset is the memoization boundary between the load/join core
// and the dashboard. The merged table is computed once and cached; the
// cache is invalidated explicitly (Invalidate, or POST /api/reload above),
// or implicitly when a source file's size or mtime changes.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/pitchside/matchweather/internal/domain"
	"github.com/pitchside/matchweather/internal/ingest"
	"github.com/pitchside/matchweather/internal/observability"
)

// Snapshot is one immutable load-and-join result. Handlers read from a
// snapshot without locking; a reload produces a new one.
type Snapshot struct {
	Merged domain.MergedTable
	Facets domain.Facets

	LoadedAt       time.Time
	MatchDropped   ingest.DroppedRows
	WeatherDropped ingest.DroppedRows

	sources []fileState
}

type fileState struct {
	path    string
	modTime time.Time
	size    int64
}

// Store owns the cached snapshot and knows how to rebuild it.
type Store struct {
	matchPath   string
	weatherPath string
	logger      *slog.Logger
	metrics     *observability.Metrics

	mu   sync.Mutex
	snap *Snapshot
}

// New creates a Store reading from the two source CSV paths. Nothing is
// loaded until the first Snapshot call.
func New(matchPath, weatherPath string, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		matchPath:   matchPath,
		weatherPath: weatherPath,
		logger:      logger,
		metrics:     metrics,
	}
}

// Snapshot returns the cached merged dataset, rebuilding it when no
// snapshot exists or a source file changed on disk. Load failures leave any
// previous snapshot discarded: a schema error is a hard stop, not something
// to paper over with stale data.
func (s *Store) Snapshot() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil && !s.stale() {
		s.metrics.SnapshotCache.WithLabelValues("hit").Inc()
		return s.snap, nil
	}
	s.metrics.SnapshotCache.WithLabelValues("miss").Inc()

	snap, err := s.load()
	if err != nil {
		s.snap = nil
		return nil, err
	}
	s.snap = snap
	return snap, nil
}

// Invalidate drops the cached snapshot. The next Snapshot call reloads.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = nil
}

// CheckReadiness reports nil once a snapshot has been loaded.
func (s *Store) CheckReadiness(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// stale compares the recorded source file states against the filesystem.
// A stat failure counts as stale so the next load surfaces the real error.
func (s *Store) stale() bool {
	for _, src := range s.snap.sources {
		st, err := os.Stat(src.path)
		if err != nil || !st.ModTime().Equal(src.modTime) || st.Size() != src.size {
			return true
		}
	}
	return false
}

// load runs one full load-validate-join cycle. Source states are captured
// before reading so a write racing the load marks the snapshot stale rather
// than being missed.
func (s *Store) load() (*Snapshot, error) {
	start := time.Now()
	sources := []fileState{statOf(s.matchPath), statOf(s.weatherPath)}

	matches, err := ingest.LoadMatchesFile(s.matchPath)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	weather, err := ingest.LoadWeatherFile(s.weatherPath)
	if err != nil {
		return nil, fmt.Errorf("load weather: %w", err)
	}

	merged := domain.Join(matches.Table, weather.Table)

	s.observeLoad(matches, weather, merged, time.Since(start))

	return &Snapshot{
		Merged:         merged,
		Facets:         domain.FacetsOf(merged),
		LoadedAt:       clock.Now(),
		MatchDropped:   matches.Dropped,
		WeatherDropped: weather.Dropped,
		sources:        sources,
	}, nil
}

func (s *Store) observeLoad(matches ingest.MatchLoadResult, weather ingest.WeatherLoadResult, merged domain.MergedTable, elapsed time.Duration) {
	s.metrics.RowsLoaded.WithLabelValues("match").Add(float64(len(matches.Table.Rows)))
	s.metrics.RowsLoaded.WithLabelValues("weather").Add(float64(len(weather.Table.Rows)))
	s.metrics.RowsDropped.WithLabelValues("match", "unparseable_date").Add(float64(matches.Dropped.UnparseableDate))
	s.metrics.RowsDropped.WithLabelValues("match", "bad_value").Add(float64(matches.Dropped.BadValue))
	s.metrics.RowsDropped.WithLabelValues("weather", "unparseable_date").Add(float64(weather.Dropped.UnparseableDate))
	s.metrics.RowsDropped.WithLabelValues("weather", "bad_value").Add(float64(weather.Dropped.BadValue))
	s.metrics.MergedRows.Set(float64(len(merged.Rows)))
	s.metrics.SnapshotLoads.Inc()
	s.metrics.LoadDuration.Observe(elapsed.Seconds())

	s.logger.Info("dataset loaded",
		"match_rows", len(matches.Table.Rows),
		"match_dropped", matches.Dropped.Total(),
		"weather_rows", len(weather.Table.Rows),
		"weather_dropped", weather.Dropped.Total(),
		"merged_rows", len(merged.Rows),
		"duration", elapsed,
	)
	if len(merged.Rows) == 0 {
		s.logger.Warn("join produced zero rows; no (date, city) keys overlap")
	}
}

func statOf(path string) fileState {
	st, err := os.Stat(path)
	if err != nil {
		return fileState{path: path}
	}
	return fileState{path: path, modTime: st.ModTime(), size: st.Size()}
}
