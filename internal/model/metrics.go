// Package model defines the shared domain types for facility consumption data.
package model

import "time"

// Indicator identifies one of the four tracked consumption categories.
type Indicator int

const (
	Electricity Indicator = iota
	Water
	Materials
	Services
)

// AllIndicators lists every indicator in display order.
var AllIndicators = []Indicator{Electricity, Water, Materials, Services}

// String returns the canonical lowercase name used on the CLI.
func (i Indicator) String() string {
	switch i {
	case Electricity:
		return "electricity"
	case Water:
		return "water"
	case Materials:
		return "materials"
	case Services:
		return "services"
	}
	return "unknown"
}

// Title returns the human-readable indicator name.
func (i Indicator) Title() string {
	switch i {
	case Electricity:
		return "Electricity"
	case Water:
		return "Water"
	case Materials:
		return "Materials"
	case Services:
		return "Services"
	}
	return "Unknown"
}

// Unit returns the measurement unit figures are reported in.
func (i Indicator) Unit() string {
	switch i {
	case Electricity:
		return "kWh"
	case Water:
		return "L"
	default:
		return "EUR"
	}
}

// ParseIndicator resolves a CLI name to an Indicator.
func ParseIndicator(s string) (Indicator, bool) {
	for _, ind := range AllIndicators {
		if ind.String() == s {
			return ind, true
		}
	}
	return 0, false
}

// TimePoint is one dated consumption observation (kWh per day, liters per day).
// Series are ordered ascending by date; duplicate dates are kept in order.
type TimePoint struct {
	Date  time.Time
	Value float64
}

// Ledger maps a category label to its accumulated monetary total.
// Order preserves first-seen category order for stable chart output.
type Ledger struct {
	Totals map[string]float64
	Order  []string
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Totals: make(map[string]float64)}
}

// Add accumulates amount under category, tracking first-seen order.
func (l *Ledger) Add(category string, amount float64) {
	if _, ok := l.Totals[category]; !ok {
		l.Order = append(l.Order, category)
	}
	l.Totals[category] += amount
}

// Set overwrites the total for category, tracking first-seen order.
func (l *Ledger) Set(category string, amount float64) {
	if _, ok := l.Totals[category]; !ok {
		l.Order = append(l.Order, category)
	}
	l.Totals[category] = amount
}

// Sum returns the sum of all category totals.
func (l *Ledger) Sum() float64 {
	var total float64
	for _, v := range l.Totals {
		total += v
	}
	return total
}

// Len returns the number of categories.
func (l *Ledger) Len() int {
	return len(l.Order)
}

// Figure is one labeled computed value for presentation.
type Figure struct {
	Label string
	Value float64
	Unit  string
}

// ElectricityReport holds the electricity projection output.
// SummerAdjusted sums June/July/August even though the original tool labeled
// the value as a winter complement; the literal filter is kept.
type ElectricityReport struct {
	ObservedTotal   float64 // sum of recorded daily values
	ObservedDays    int
	EstimatedAnnual float64 // (observed/days) * 365
	NextYear        float64 // EstimatedAnnual * 1.05
	WinterAdjusted  float64 // adjusted sum over Dec/Jan/Feb
	SummerAdjusted  float64 // adjusted sum over Jun/Jul/Aug
	PeriodAdjusted  float64 // adjusted sum over Sep-Jun observations
	PeriodEstimate  float64 // (PeriodAdjusted / period days) * 304
	JanuaryAdjusted float64 // adjusted sum over January observations
	JanuaryTimes3   float64 // JanuaryAdjusted * 3
	JanuaryTimes9   float64 // JanuaryAdjusted * 9
}

// WaterReport holds the water projection output.
type WaterReport struct {
	WeekdaySum       float64 // reference-month weekday liters
	WeekendSum       float64 // reference-month weekend liters
	WeekdayMonthly   float64 // WeekdaySum * 5 * 4
	WeekendMonthly   float64 // WeekendSum * 2 * 4
	ReferenceMonth   float64 // WeekdayMonthly + WeekendMonthly
	SeptJunTotal     float64 // (WeekdayMonthly*4 + WeekendMonthly*4) * 9
	AnnualTotal      float64 // (WeekdayMonthly + WeekendMonthly) * 52
	NextYear         float64 // AnnualTotal * 1.05
	AdjustedAnnual   float64 // sum of AnnualTotal * factor over the 12 factors
	PeriodAdjusted   float64 // SeptJunTotal * mean seasonal factor
	NextYearSeasonal float64 // NextYear * mean seasonal factor
}

// RatioModel rescales a user-supplied annual figure into the water breakdown
// produced by the historical computation. Valid only relative to the exact
// run that produced it.
type RatioModel struct {
	AnnualTotal        float64
	PeriodOverAnnual   float64
	NextYearOverAnnual float64
}

// MaterialsReport holds the office-materials aggregation output.
type MaterialsReport struct {
	Ledger        *Ledger
	GrandTotal    float64 // last year's parsed spend
	NextYear      float64 // equals GrandTotal (last year as forecast)
	SeptJun       float64 // NextYear / 12 * 10
	MonthlyAvg    float64 // NextYear / 12
	DailyAvg      float64 // NextYear / (365.25 / 12)
	ProjectedYear float64 // mean monthly spend * 12
	TotalUnits    int     // sum of quantity column
}

// ServicesReport holds the recurring-services aggregation output.
type ServicesReport struct {
	Ledger            *Ledger
	GrandTotal        float64
	NextYear          float64 // equals GrandTotal
	MonthlyAvg        float64
	DailyAvg          float64
	BimonthlyCleaning float64 // raw bimonthly cleaning invoice
	AnnualCleaning    float64 // BimonthlyCleaning * 6
	PeriodCleaning    float64 // BimonthlyCleaning * 5
}
