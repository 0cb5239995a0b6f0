// Package watch polls the consumption CSVs and recomputes reports when a
// source file changes on disk.
package watch

import (
	"context"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/pipeline"
	"github.com/facastdev/facast/internal/source"
)

// Config controls the watcher runtime behavior.
type Config struct {
	DataDir        string
	ReferenceYear  int
	ReferenceMonth time.Month
	Interval       time.Duration
	Rng            *rand.Rand
}

// Snapshot is a compact per-poll state of the four indicators.
type Snapshot struct {
	At        time.Time
	Available map[model.Indicator]bool
	// AnnualProjection is each indicator's headline next-year figure.
	AnnualProjection map[model.Indicator]float64
}

// Delta captures projection changes between polls.
type Delta struct {
	Changed map[model.Indicator]float64
}

func (d Delta) isZero() bool {
	return len(d.Changed) == 0
}

// Event is emitted whenever the source files change and reports recompute.
type Event struct {
	Type     string // "snapshot" or "update"
	Snapshot Snapshot
	Delta    Delta
}

// Watcher polls source file mtimes and reloads on change.
type Watcher struct {
	cfg     Config
	onEvent func(Event)

	mu         sync.Mutex
	lastPollAt time.Time
	pollCount  int64
	seen       map[string]fileStamp
	snapshot   Snapshot
	hasSnap    bool
}

type fileStamp struct {
	mtimeNs int64
	size    int64
}

// New returns a watcher that calls onEvent for every recompute.
func New(cfg Config, onEvent func(Event)) *Watcher {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	return &Watcher{
		cfg:     cfg,
		onEvent: onEvent,
		seen:    make(map[string]fileStamp),
	}
}

// Run polls until ctx is canceled. The first poll always emits a snapshot
// event so callers have a useful state immediately.
func (w *Watcher) Run(ctx context.Context) error {
	w.pollOnce(true)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.pollOnce(false)
		}
	}
}

// PollCount reports how many polls ran.
func (w *Watcher) PollCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pollCount
}

func (w *Watcher) pollOnce(force bool) {
	now := time.Now()

	w.mu.Lock()
	w.lastPollAt = now
	w.pollCount++
	changed := w.stampSources()
	w.mu.Unlock()

	if !force && !changed {
		return
	}

	s := pipeline.Load(pipeline.Options{
		DataDir:        w.cfg.DataDir,
		ReferenceYear:  w.cfg.ReferenceYear,
		ReferenceMonth: w.cfg.ReferenceMonth,
		Rng:            w.cfg.Rng,
	})
	snap := snapshotSession(s, now)

	var (
		ev      Event
		publish bool
	)

	w.mu.Lock()
	prev := w.snapshot
	prevExists := w.hasSnap
	w.snapshot = snap
	w.hasSnap = true
	w.mu.Unlock()

	if !prevExists {
		ev = Event{Type: "snapshot", Snapshot: snap}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			ev = Event{Type: "update", Snapshot: snap, Delta: delta}
			publish = true
		}
	}

	if publish && w.onEvent != nil {
		w.onEvent(ev)
	}
}

// stampSources refreshes the mtime+size stamps for the discovered CSVs and
// reports whether anything changed since the previous poll. Callers hold mu.
func (w *Watcher) stampSources() bool {
	changed := false
	current := make(map[string]fileStamp)

	for _, f := range source.Discover(w.cfg.DataDir) {
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		stamp := fileStamp{mtimeNs: info.ModTime().UnixNano(), size: info.Size()}
		current[f.Path] = stamp
		if prev, ok := w.seen[f.Path]; !ok || prev != stamp {
			changed = true
		}
	}
	if len(current) != len(w.seen) {
		changed = true
	}

	w.seen = current
	return changed
}

func snapshotSession(s *pipeline.Session, at time.Time) Snapshot {
	snap := Snapshot{
		At:               at,
		Available:        make(map[model.Indicator]bool),
		AnnualProjection: make(map[model.Indicator]float64),
	}
	for _, ind := range model.AllIndicators {
		snap.Available[ind] = s.Available(ind)
	}
	if s.Electricity != nil {
		snap.AnnualProjection[model.Electricity] = s.Electricity.NextYear
	}
	if s.Water != nil {
		snap.AnnualProjection[model.Water] = s.Water.NextYear
	}
	if s.Materials != nil {
		snap.AnnualProjection[model.Materials] = s.Materials.NextYear
	}
	if s.Services != nil {
		snap.AnnualProjection[model.Services] = s.Services.NextYear
	}
	return snap
}

func diffSnapshots(prev, curr Snapshot) Delta {
	delta := Delta{Changed: make(map[model.Indicator]float64)}
	for _, ind := range model.AllIndicators {
		p := prev.AnnualProjection[ind]
		c := curr.AnnualProjection[ind]
		if math.Abs(c-p) > 1e-9 || prev.Available[ind] != curr.Available[ind] {
			delta.Changed[ind] = c - p
		}
	}
	return delta
}
