// Package pipeline orchestrates source loading, caching, and the
// per-indicator projection engines.
package pipeline

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/source"
)

// ProgressFunc is called as sources finish loading.
type ProgressFunc func(current, total int)

// Options configures a load cycle.
type Options struct {
	DataDir        string
	ReferenceYear  int
	ReferenceMonth time.Month
	Rng            *rand.Rand // nil means time-seeded
	Progress       ProgressFunc
	// Overrides maps an indicator to an explicit CSV path, taking
	// precedence over conventional-name discovery for that source.
	Overrides map[model.Indicator]string
}

// resolveSources discovers the conventional CSVs under DataDir, then applies
// the explicit per-indicator overrides on top.
func resolveSources(opts Options) map[model.Indicator]source.SourceFile {
	found := make(map[model.Indicator]source.SourceFile, len(model.AllIndicators))
	for _, f := range source.Discover(opts.DataDir) {
		found[f.Indicator] = f
	}
	for ind, path := range opts.Overrides {
		if path != "" {
			found[ind] = source.SourceFile{Path: path, Indicator: ind}
		}
	}
	return found
}

// Load discovers the four consumption CSVs under DataDir, parses them
// concurrently, and computes every indicator's report. Sources fail
// independently: a missing or broken file marks only its own indicator
// unavailable.
func Load(opts Options) *Session {
	s := NewSession(opts.DataDir, opts.ReferenceYear, opts.ReferenceMonth, opts.Rng)

	found := resolveSources(opts)

	type loaded struct {
		ind     model.Indicator
		series  source.SeriesResult
		mats    source.RowsResult[source.MaterialRow]
		svcs    source.RowsResult[source.ServiceRow]
		skipped int
		err     error
	}

	results := make([]loaded, len(model.AllIndicators))
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for i, ind := range model.AllIndicators {
		wg.Add(1)
		go func(i int, ind model.Indicator) {
			defer wg.Done()
			defer func() {
				mu.Lock()
				done++
				if opts.Progress != nil {
					opts.Progress(done, len(model.AllIndicators))
				}
				mu.Unlock()
			}()

			f, ok := found[ind]
			if !ok {
				results[i] = loaded{ind: ind, err: fmt.Errorf("no %s source in %s", ind, opts.DataDir)}
				return
			}

			switch ind {
			case model.Electricity, model.Water:
				var res source.SeriesResult
				var err error
				if ind == model.Electricity {
					res, err = source.ParseElectricity(f.Path)
				} else {
					res, err = source.ParseWater(f.Path)
				}
				results[i] = loaded{ind: ind, series: res, skipped: res.Skipped, err: err}
			case model.Materials:
				res, err := source.ParseMaterials(f.Path)
				results[i] = loaded{ind: ind, mats: res, skipped: res.Skipped, err: err}
			case model.Services:
				res, err := source.ParseServices(f.Path)
				results[i] = loaded{ind: ind, svcs: res, skipped: res.Skipped, err: err}
			}
		}(i, ind)
	}
	wg.Wait()

	for _, r := range results {
		s.Skipped[r.ind] = r.skipped
		if r.err != nil {
			s.Errors[r.ind] = r.err
			continue
		}
		s.compute(r.ind, r.series.Points, r.mats.Rows, r.svcs.Rows)
	}

	return s
}

// compute runs the matching projector and caches its output on the session.
func (s *Session) compute(ind model.Indicator, points []model.TimePoint,
	mats []source.MaterialRow, svcs []source.ServiceRow) {
	switch ind {
	case model.Electricity:
		s.ElectricitySeries = points
		rep := ProjectElectricity(points, s.rng)
		s.Electricity = &rep
	case model.Water:
		s.WaterSeries = points
		rep, ratios := ProjectWater(points, s.ReferenceYear, s.ReferenceMonth)
		s.Water = &rep
		s.WaterRatios = &ratios
	case model.Materials:
		rep := AggregateMaterials(mats)
		s.Materials = &rep
	case model.Services:
		rep := AggregateServices(svcs)
		s.Services = &rep
	}
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "facast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "facast")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "sources.db")
}
