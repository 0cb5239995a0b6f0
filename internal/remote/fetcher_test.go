package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/facastdev/facast/internal/config"
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/source"
)

const waterCSV = "Dia,Consumo (litros)\n05/02/2024,100\n"

func TestFetch_WritesConventionalFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(waterCSV))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := NewFetcher(config.RemoteConfig{WaterURL: srv.URL})

	res := f.Fetch(context.Background(), model.Water, dir)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	want := filepath.Join(dir, source.DefaultFileName(model.Water))
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if res.Bytes != int64(len(waterCSV)) {
		t.Errorf("Bytes = %d, want %d", res.Bytes, len(waterCSV))
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != waterCSV {
		t.Errorf("file content = %q", data)
	}
}

func TestFetch_NoURL(t *testing.T) {
	f := NewFetcher(config.RemoteConfig{})
	res := f.Fetch(context.Background(), model.Water, t.TempDir())
	if !errors.Is(res.Err, ErrNoURL) {
		t.Errorf("Err = %v, want ErrNoURL", res.Err)
	}
}

func TestFetch_BadStatusKeepsExistingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, source.DefaultFileName(model.Electricity))
	if err := os.WriteFile(dest, []byte("previous data\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	f := NewFetcher(config.RemoteConfig{ElectricityURL: srv.URL})
	res := f.Fetch(context.Background(), model.Electricity, dir)
	if res.Err == nil {
		t.Fatal("expected error on 404")
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous data\n" {
		t.Errorf("existing file clobbered: %q", data)
	}
}

func TestFetchAll_IndependentFailures(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(waterCSV))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer bad.Close()

	f := NewFetcher(config.RemoteConfig{
		ElectricityURL: bad.URL,
		WaterURL:       good.URL,
	})

	results := f.FetchAll(context.Background(), t.TempDir())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	byInd := make(map[model.Indicator]Result)
	for _, r := range results {
		byInd[r.Indicator] = r
	}
	if byInd[model.Electricity].Err == nil {
		t.Error("electricity fetch should have failed")
	}
	if err := byInd[model.Water].Err; err != nil {
		t.Errorf("water fetch failed: %v", err)
	}
}

func TestConfigured(t *testing.T) {
	f := NewFetcher(config.RemoteConfig{
		MaterialsURL: "https://example.test/materials.csv",
		WaterURL:     "  ",
	})
	got := f.Configured()
	if len(got) != 1 || got[0] != model.Materials {
		t.Errorf("Configured() = %v, want [materials]", got)
	}
}
