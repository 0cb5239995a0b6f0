// Package source discovers and parses the four facility consumption CSVs.
package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/facastdev/facast/internal/model"
)

// Column names as they appear in the exported spreadsheets. The trailing
// space in "Servicios " is literal and must not be trimmed.
const (
	colPeriod      = "Statistical Period"
	colConsumption = "Consumption (kWh)"
	colDay         = "Dia"
	colLiters      = "Consumo (litros)"
	colMaterial    = "Material"
	colTotal       = "total"
	colPurchase    = "fecha compra"
	colQuantity    = "cantidad"
	colService     = "Servicios "
	colPrice       = "Precio"
)

// readTable reads a headered CSV into row maps keyed by raw header name.
// Short rows are padded with empty strings; ragged files are tolerated.
func readTable(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseAmount normalizes a localized monetary string to a float: currency
// symbol stripped, thousands dots removed, decimal comma converted to a dot.
// e.g. "1.234,56€" -> 1234.56
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	return v, nil
}

// ParseDecimalComma parses a plain decimal that may use a comma separator.
// Unlike ParseAmount, dots are kept (meter exports have no thousands dots).
func ParseDecimalComma(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q: %w", s, err)
	}
	return v, nil
}

// ParseDayMonthYear parses a literal DD/MM/YYYY date.
func ParseDayMonthYear(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("date %q: want DD/MM/YYYY", s)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date %q: out of range", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ParseElectricity reads the electricity CSV: one row per recorded day with
// an ISO date and a decimal-comma kWh value. Rows missing the period or with
// an unparseable value are skipped and counted. The series is returned
// sorted ascending by date.
func ParseElectricity(path string) (SeriesResult, error) {
	rows, err := readTable(path)
	if err != nil {
		return SeriesResult{}, err
	}

	var res SeriesResult
	for _, row := range rows {
		period := strings.TrimSpace(row[colPeriod])
		if period == "" {
			res.Skipped++
			continue
		}
		date, err := time.Parse("2006-01-02", period)
		if err != nil {
			res.Skipped++
			continue
		}
		value, err := ParseDecimalComma(row[colConsumption])
		if err != nil {
			res.Skipped++
			continue
		}
		res.Points = append(res.Points, model.TimePoint{Date: date, Value: value})
	}

	sort.SliceStable(res.Points, func(i, j int) bool {
		return res.Points[i].Date.Before(res.Points[j].Date)
	})
	return res, nil
}

// ParseWater reads the water CSV: DD/MM/YYYY dates with daily liters. A row
// with an unparseable date is skipped; an unparseable liters value counts
// as zero consumption for that day, matching the original tool.
func ParseWater(path string) (SeriesResult, error) {
	rows, err := readTable(path)
	if err != nil {
		return SeriesResult{}, err
	}

	var res SeriesResult
	for _, row := range rows {
		if strings.TrimSpace(row[colDay]) == "" {
			res.Skipped++
			continue
		}
		date, err := ParseDayMonthYear(row[colDay])
		if err != nil {
			res.Skipped++
			continue
		}
		value, err := ParseDecimalComma(row[colLiters])
		if err != nil {
			value = 0
		}
		res.Points = append(res.Points, model.TimePoint{Date: date, Value: value})
	}
	return res, nil
}

// ParseMaterials reads the office-materials CSV. Rows whose monetary total
// fails to parse are skipped, never zeroed in. Quantity falls back to 0 and
// the purchase date is optional.
func ParseMaterials(path string) (RowsResult[MaterialRow], error) {
	rows, err := readTable(path)
	if err != nil {
		return RowsResult[MaterialRow]{}, err
	}

	var res RowsResult[MaterialRow]
	for _, row := range rows {
		name := row[colMaterial]
		if strings.TrimSpace(name) == "" {
			res.Skipped++
			continue
		}
		total, err := ParseAmount(row[colTotal])
		if err != nil {
			res.Skipped++
			continue
		}
		mr := MaterialRow{Material: name, Total: total}
		if qty, err := strconv.Atoi(strings.TrimSpace(row[colQuantity])); err == nil {
			mr.Quantity = qty
		}
		if d, err := ParseDayMonthYear(row[colPurchase]); err == nil {
			mr.Purchase = d
			mr.HasPurchase = true
		}
		res.Rows = append(res.Rows, mr)
	}
	return res, nil
}

// ParseServices reads the recurring-services CSV. The category column header
// carries a trailing space in the source export; labels themselves are
// trimmed. Unparseable prices skip the row.
func ParseServices(path string) (RowsResult[ServiceRow], error) {
	rows, err := readTable(path)
	if err != nil {
		return RowsResult[ServiceRow]{}, err
	}

	var res RowsResult[ServiceRow]
	for _, row := range rows {
		label := row[colService]
		if strings.TrimSpace(label) == "" {
			res.Skipped++
			continue
		}
		price, err := ParseAmount(row[colPrice])
		if err != nil {
			res.Skipped++
			continue
		}
		res.Rows = append(res.Rows, ServiceRow{Label: strings.TrimSpace(label), Price: price})
	}
	return res, nil
}
