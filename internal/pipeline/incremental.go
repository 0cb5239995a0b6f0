package pipeline

import (
	"os"
	"sync"

	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/source"
	"github.com/facastdev/facast/internal/store"
)

// CacheStats reports how a cached load resolved its sources.
type CacheStats struct {
	CacheHits int
	Reparsed  int
}

// LoadWithCache behaves like Load but diffs each discovered CSV against the
// row cache by mtime and size, re-parsing only changed files. Cache errors
// for a single source fall back to a direct parse of that source.
func LoadWithCache(opts Options, cache *store.Cache) (*Session, CacheStats) {
	s := NewSession(opts.DataDir, opts.ReferenceYear, opts.ReferenceMonth, opts.Rng)
	var stats CacheStats

	found := resolveSources(opts)

	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		tracked = nil // treat every file as changed
	}

	type loaded struct {
		ind     model.Indicator
		file    source.SourceFile
		series  source.SeriesResult
		mats    source.RowsResult[source.MaterialRow]
		svcs    source.RowsResult[source.ServiceRow]
		hit     bool
		mtimeNs int64
		size    int64
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
				results[i] = loaded{ind: ind, err: model.ErrDataUnavailable}
				return
			}
			r := loaded{ind: ind, file: f}

			info, statErr := os.Stat(f.Path)
			if statErr == nil {
				r.mtimeNs = info.ModTime().UnixNano()
				r.size = info.Size()
				if fi, ok := tracked[f.Path]; ok &&
					fi.MtimeNs == r.mtimeNs && fi.SizeBytes == r.size {
					if loadCached(cache, f, &r.series, &r.mats, &r.svcs) {
						r.hit = true
						results[i] = r
						return
					}
				}
			}

			switch ind {
			case model.Electricity:
				r.series, r.err = source.ParseElectricity(f.Path)
			case model.Water:
				r.series, r.err = source.ParseWater(f.Path)
			case model.Materials:
				r.mats, r.err = source.ParseMaterials(f.Path)
			case model.Services:
				r.svcs, r.err = source.ParseServices(f.Path)
			}
			results[i] = r
		}(i, ind)
	}
	wg.Wait()

	// Persist freshly parsed sources serially; SQLite writes do not need to race.
	for _, r := range results {
		if r.err != nil || r.hit || r.file.Path == "" {
			continue
		}
		switch r.ind {
		case model.Electricity, model.Water:
			_ = cache.SaveSeries(r.file.Path, r.ind, r.series, r.mtimeNs, r.size)
		case model.Materials:
			_ = cache.SaveMaterials(r.file.Path, r.mats, r.mtimeNs, r.size)
		case model.Services:
			_ = cache.SaveServices(r.file.Path, r.svcs, r.mtimeNs, r.size)
		}
	}

	for _, r := range results {
		if r.hit {
			stats.CacheHits++
		} else if r.err == nil && r.file.Path != "" {
			stats.Reparsed++
		}
		if r.err != nil {
			s.Errors[r.ind] = r.err
			continue
		}
		switch r.ind {
		case model.Electricity, model.Water:
			s.Skipped[r.ind] = r.series.Skipped
		case model.Materials:
			s.Skipped[r.ind] = r.mats.Skipped
		case model.Services:
			s.Skipped[r.ind] = r.svcs.Skipped
		}
		s.compute(r.ind, r.series.Points, r.mats.Rows, r.svcs.Rows)
	}

	return s, stats
}

func loadCached(cache *store.Cache, f source.SourceFile,
	series *source.SeriesResult,
	mats *source.RowsResult[source.MaterialRow],
	svcs *source.RowsResult[source.ServiceRow]) bool {
	var err error
	switch f.Indicator {
	case model.Electricity, model.Water:
		*series, err = cache.LoadSeries(f.Path)
	case model.Materials:
		*mats, err = cache.LoadMaterials(f.Path)
	case model.Services:
		*svcs, err = cache.LoadServices(f.Path)
	}
	return err == nil
}
