// Package store provides a SQLite-backed cache for parsed consumption rows,
// so unchanged CSVs are not re-tokenized on every run.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/source"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dayFormat = "2006-01-02"

// Cache provides SQLite-backed row caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime, size, and skipped-row count for a file.
type FileInfo struct {
	Indicator   model.Indicator
	MtimeNs     int64
	SizeBytes   int64
	SkippedRows int
}

// GetTrackedFiles returns file_path -> FileInfo for every tracked source.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, indicator, mtime_ns, size_bytes, skipped_rows FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		var ind int
		if err := rows.Scan(&path, &ind, &fi.MtimeNs, &fi.SizeBytes, &fi.SkippedRows); err != nil {
			return nil, err
		}
		fi.Indicator = model.Indicator(ind)
		result[path] = fi
	}
	return result, rows.Err()
}

// track replaces the tracker entry and clears stale rows for a file.
func track(tx *sql.Tx, path string, ind model.Indicator, mtimeNs, sizeBytes int64, skipped int) error {
	for _, table := range []string{"series_points", "material_rows", "service_rows"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE file_path = ?", path); err != nil {
			return err
		}
	}
	_, err := tx.Exec(`INSERT OR REPLACE INTO file_tracker
		(file_path, indicator, mtime_ns, size_bytes, skipped_rows, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		path, int(ind), mtimeNs, sizeBytes, skipped, time.Now().UTC().Format(time.RFC3339))
	return err
}

// SaveSeries stores a parsed date/value series and its tracking info.
func (c *Cache) SaveSeries(path string, ind model.Indicator, res source.SeriesResult, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := track(tx, path, ind, mtimeNs, sizeBytes, res.Skipped); err != nil {
		return err
	}
	for i, pt := range res.Points {
		_, err := tx.Exec(`INSERT INTO series_points (file_path, pos, day, value) VALUES (?, ?, ?, ?)`,
			path, i, pt.Date.UTC().Format(dayFormat), pt.Value)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadSeries reads a cached series back in its original order.
func (c *Cache) LoadSeries(path string) (source.SeriesResult, error) {
	var res source.SeriesResult

	var skipped int
	err := c.db.QueryRow("SELECT skipped_rows FROM file_tracker WHERE file_path = ?", path).Scan(&skipped)
	if err != nil {
		return res, err
	}
	res.Skipped = skipped

	rows, err := c.db.Query("SELECT day, value FROM series_points WHERE file_path = ? ORDER BY pos", path)
	if err != nil {
		return res, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var day string
		var value float64
		if err := rows.Scan(&day, &value); err != nil {
			return res, err
		}
		d, err := time.Parse(dayFormat, day)
		if err != nil {
			return res, fmt.Errorf("cached day %q: %w", day, err)
		}
		res.Points = append(res.Points, model.TimePoint{Date: d, Value: value})
	}
	return res, rows.Err()
}

// SaveMaterials stores parsed materials rows and tracking info.
func (c *Cache) SaveMaterials(path string, res source.RowsResult[source.MaterialRow], mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := track(tx, path, model.Materials, mtimeNs, sizeBytes, res.Skipped); err != nil {
		return err
	}
	for i, r := range res.Rows {
		var purchase sql.NullString
		if r.HasPurchase {
			purchase = sql.NullString{String: r.Purchase.UTC().Format(dayFormat), Valid: true}
		}
		_, err := tx.Exec(`INSERT INTO material_rows (file_path, pos, material, total, quantity, purchase)
			VALUES (?, ?, ?, ?, ?, ?)`,
			path, i, r.Material, r.Total, r.Quantity, purchase)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadMaterials reads cached materials rows back in order.
func (c *Cache) LoadMaterials(path string) (source.RowsResult[source.MaterialRow], error) {
	var res source.RowsResult[source.MaterialRow]

	var skipped int
	err := c.db.QueryRow("SELECT skipped_rows FROM file_tracker WHERE file_path = ?", path).Scan(&skipped)
	if err != nil {
		return res, err
	}
	res.Skipped = skipped

	rows, err := c.db.Query(`SELECT material, total, quantity, purchase
		FROM material_rows WHERE file_path = ? ORDER BY pos`, path)
	if err != nil {
		return res, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r source.MaterialRow
		var purchase sql.NullString
		if err := rows.Scan(&r.Material, &r.Total, &r.Quantity, &purchase); err != nil {
			return res, err
		}
		if purchase.Valid {
			d, err := time.Parse(dayFormat, purchase.String)
			if err != nil {
				return res, fmt.Errorf("cached purchase %q: %w", purchase.String, err)
			}
			r.Purchase = d
			r.HasPurchase = true
		}
		res.Rows = append(res.Rows, r)
	}
	return res, rows.Err()
}

// SaveServices stores parsed service rows and tracking info.
func (c *Cache) SaveServices(path string, res source.RowsResult[source.ServiceRow], mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := track(tx, path, model.Services, mtimeNs, sizeBytes, res.Skipped); err != nil {
		return err
	}
	for i, r := range res.Rows {
		_, err := tx.Exec(`INSERT INTO service_rows (file_path, pos, label, price) VALUES (?, ?, ?, ?)`,
			path, i, r.Label, r.Price)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadServices reads cached service rows back in order.
func (c *Cache) LoadServices(path string) (source.RowsResult[source.ServiceRow], error) {
	var res source.RowsResult[source.ServiceRow]

	var skipped int
	err := c.db.QueryRow("SELECT skipped_rows FROM file_tracker WHERE file_path = ?", path).Scan(&skipped)
	if err != nil {
		return res, err
	}
	res.Skipped = skipped

	rows, err := c.db.Query("SELECT label, price FROM service_rows WHERE file_path = ? ORDER BY pos", path)
	if err != nil {
		return res, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r source.ServiceRow
		if err := rows.Scan(&r.Label, &r.Price); err != nil {
			return res, err
		}
		res.Rows = append(res.Rows, r)
	}
	return res, rows.Err()
}

// DeleteFileTracker removes a file tracking entry and its cached rows.
func (c *Cache) DeleteFileTracker(filePath string) error {
	_, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath)
	return err
}

// TrackedCount returns the number of tracked source files.
func (c *Cache) TrackedCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM file_tracker").Scan(&count)
	return count, err
}
