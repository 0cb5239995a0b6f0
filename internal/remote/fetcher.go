// Package remote downloads consumption CSVs from configured URLs into the
// local data directory, one independent fetch per indicator.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/facastdev/facast/internal/config"
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/source"
)

const (
	requestTimeout = 30 * time.Second
	maxBodySize    = 16 << 20 // 16 MB per CSV
)

// ErrNoURL means no URL is configured for the requested indicator.
var ErrNoURL = errors.New("remote: no url configured")

// Fetcher downloads source CSVs.
type Fetcher struct {
	urls map[model.Indicator]string
	http *http.Client
}

// NewFetcher builds a fetcher from the configured per-indicator URLs.
// Indicators without a URL are simply absent.
func NewFetcher(rc config.RemoteConfig) *Fetcher {
	urls := make(map[model.Indicator]string)
	add := func(ind model.Indicator, u string) {
		if u = strings.TrimSpace(u); u != "" {
			urls[ind] = u
		}
	}
	add(model.Electricity, rc.ElectricityURL)
	add(model.Water, rc.WaterURL)
	add(model.Materials, rc.MaterialsURL)
	add(model.Services, rc.ServicesURL)

	return &Fetcher{
		urls: urls,
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Configured returns the indicators that have a download URL.
func (f *Fetcher) Configured() []model.Indicator {
	var out []model.Indicator
	for _, ind := range model.AllIndicators {
		if _, ok := f.urls[ind]; ok {
			out = append(out, ind)
		}
	}
	return out
}

// Result reports one indicator's fetch outcome.
type Result struct {
	Indicator model.Indicator
	Path      string
	Bytes     int64
	Err       error
}

// FetchAll downloads every configured source into dataDir. Failures are
// per-indicator; one broken URL never blocks the others.
func (f *Fetcher) FetchAll(ctx context.Context, dataDir string) []Result {
	results := make([]Result, 0, len(f.urls))
	for _, ind := range f.Configured() {
		results = append(results, f.Fetch(ctx, ind, dataDir))
	}
	return results
}

// Fetch downloads one indicator's CSV into dataDir under its conventional
// name, writing via a temp file so a failed download never clobbers data.
func (f *Fetcher) Fetch(ctx context.Context, ind model.Indicator, dataDir string) Result {
	res := Result{Indicator: ind}

	url, ok := f.urls[ind]
	if !ok {
		res.Err = fmt.Errorf("%w: %s", ErrNoURL, ind)
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		res.Err = fmt.Errorf("remote: building request: %w", err)
		return res
	}

	resp, err := f.http.Do(req)
	if err != nil {
		res.Err = fmt.Errorf("remote: fetching %s: %w", ind, err)
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		res.Err = fmt.Errorf("remote: fetching %s: status %d", ind, resp.StatusCode)
		return res
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		res.Err = fmt.Errorf("remote: creating data dir: %w", err)
		return res
	}

	dest := filepath.Join(dataDir, source.DefaultFileName(ind))
	tmp, err := os.CreateTemp(dataDir, ".facast-fetch-*")
	if err != nil {
		res.Err = fmt.Errorf("remote: temp file: %w", err)
		return res
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxBodySize))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		res.Err = fmt.Errorf("remote: writing %s: %w", ind, err)
		return res
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		res.Err = fmt.Errorf("remote: installing %s: %w", ind, err)
		return res
	}

	res.Path = dest
	res.Bytes = n
	return res
}
