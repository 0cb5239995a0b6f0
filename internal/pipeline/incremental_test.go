package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/store"
)

func openTestCache(t *testing.T) *store.Cache {
	t.Helper()
	cache, err := store.Open(filepath.Join(t.TempDir(), "sources.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestLoadWithCache_SecondRunHits(t *testing.T) {
	dir := writeSources(t)
	cache := openTestCache(t)

	s, stats := LoadWithCache(testOptions(dir), cache)
	if stats.Reparsed != 4 || stats.CacheHits != 0 {
		t.Fatalf("first run stats = %+v, want 4 reparsed", stats)
	}
	for _, ind := range model.AllIndicators {
		if !s.Available(ind) {
			t.Fatalf("%s unavailable: %v", ind, s.Errors[ind])
		}
	}

	s2, stats2 := LoadWithCache(testOptions(dir), cache)
	if stats2.CacheHits != 4 || stats2.Reparsed != 0 {
		t.Fatalf("second run stats = %+v, want 4 cache hits", stats2)
	}

	// The cached load must reproduce the parsed-path reports exactly for
	// everything that does not depend on jitter.
	if *s2.Water != *s.Water {
		t.Errorf("water report differs:\n%+v\n%+v", *s.Water, *s2.Water)
	}
	if s2.Materials.GrandTotal != s.Materials.GrandTotal {
		t.Errorf("materials differ: %v vs %v", s.Materials.GrandTotal, s2.Materials.GrandTotal)
	}
	if s2.Services.GrandTotal != s.Services.GrandTotal {
		t.Errorf("services differ: %v vs %v", s.Services.GrandTotal, s2.Services.GrandTotal)
	}
	if s2.Electricity.ObservedTotal != s.Electricity.ObservedTotal {
		t.Errorf("electricity observed totals differ: %v vs %v",
			s.Electricity.ObservedTotal, s2.Electricity.ObservedTotal)
	}
}

func TestLoadWithCache_ChangedFileReparsed(t *testing.T) {
	dir := writeSources(t)
	cache := openTestCache(t)

	_, _ = LoadWithCache(testOptions(dir), cache)

	// Rewrite the services file with a new size and mtime.
	path := filepath.Join(dir, "services.csv")
	content := "Servicios ,Precio\nAlarma,\"45,00\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	s, stats := LoadWithCache(testOptions(dir), cache)
	if stats.CacheHits != 3 || stats.Reparsed != 1 {
		t.Fatalf("stats = %+v, want 3 hits + 1 reparse", stats)
	}
	if s.Services.GrandTotal != 45 {
		t.Errorf("services GrandTotal = %v, want the rewritten 45", s.Services.GrandTotal)
	}
}

func TestLoadWithCache_MissingSource(t *testing.T) {
	dir := writeSources(t, "materials.csv")
	cache := openTestCache(t)

	s, stats := LoadWithCache(testOptions(dir), cache)
	if stats.Reparsed != 3 {
		t.Errorf("stats = %+v, want 3 reparsed", stats)
	}
	if s.Available(model.Materials) {
		t.Error("materials should be unavailable")
	}
}
