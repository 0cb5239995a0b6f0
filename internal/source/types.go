package source

import (
	"time"

	"github.com/facastdev/facast/internal/model"
)

// SourceFile is one discovered consumption CSV bound to its indicator.
type SourceFile struct {
	Path      string
	Indicator model.Indicator
}

// SeriesResult holds a parsed date/value series plus the count of rows that
// were skipped because of malformed fields.
type SeriesResult struct {
	Points  []model.TimePoint
	Skipped int
}

// MaterialRow is one parsed office-materials purchase line.
type MaterialRow struct {
	Material    string
	Total       float64
	Quantity    int
	Purchase    time.Time
	HasPurchase bool
}

// ServiceRow is one parsed recurring-service invoice line.
type ServiceRow struct {
	Label string
	Price float64
}

// RowsResult holds parsed transactional rows plus the skipped-row count.
type RowsResult[T any] struct {
	Rows    []T
	Skipped int
}
