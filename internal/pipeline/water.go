package pipeline

import (
	"time"

	"github.com/facastdev/facast/internal/model"
)

// waterSeasonalFactors are the fixed month-name seasonal factors the
// original tool shipped with. Only their mean feeds the projections; the
// names are kept for the adjusted-annual breakdown.
var waterSeasonalFactors = []struct {
	Month  string
	Factor float64
}{
	{"January", 1.10},
	{"February", 1.05},
	{"March", 1.00},
	{"April", 1.02},
	{"May", 1.08},
	{"June", 1.15},
	{"July", 1.20},
	{"August", 1.15},
	{"September", 1.05},
	{"October", 1.02},
	{"November", 1.05},
	{"December", 1.10},
}

func meanSeasonalFactor() float64 {
	var sum float64
	for _, f := range waterSeasonalFactors {
		sum += f.Factor
	}
	return sum / float64(len(waterSeasonalFactors))
}

// isoWeekday maps a date to Monday=0..Sunday=6.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ProjectWater extrapolates the reference month (by default February of the
// recorded year) to weekly, September-June, and annual totals, applies the
// seasonal-factor mean, and derives the ratio model used to redistribute a
// user-supplied annual figure. Zero rows in the reference month is not an
// error: the category sums stay 0 and every downstream total collapses to 0.
func ProjectWater(points []model.TimePoint, refYear int, refMonth time.Month) (model.WaterReport, model.RatioModel) {
	var rep model.WaterReport

	for _, pt := range points {
		if pt.Date.Year() != refYear || pt.Date.Month() != refMonth {
			continue
		}
		if isoWeekday(pt.Date) >= 5 {
			rep.WeekendSum += pt.Value
		} else {
			rep.WeekdaySum += pt.Value
		}
	}

	// Five weekdays by four weeks, two weekend days by four weeks.
	rep.WeekdayMonthly = rep.WeekdaySum * 5 * 4
	rep.WeekendMonthly = rep.WeekendSum * 2 * 4
	rep.ReferenceMonth = rep.WeekdayMonthly + rep.WeekendMonthly

	// The reference month stands in for the nine September-June months and
	// for all 52 weeks of the year.
	rep.SeptJunTotal = (rep.WeekdayMonthly*4 + rep.WeekendMonthly*4) * 9
	rep.AnnualTotal = rep.WeekdayMonthly*52 + rep.WeekendMonthly*52
	rep.NextYear = rep.AnnualTotal * annualGrowth

	avg := meanSeasonalFactor()
	for _, f := range waterSeasonalFactors {
		rep.AdjustedAnnual += rep.AnnualTotal * f.Factor
	}
	rep.PeriodAdjusted = rep.SeptJunTotal * avg
	rep.NextYearSeasonal = rep.NextYear * avg

	ratios := model.RatioModel{AnnualTotal: rep.AnnualTotal}
	if rep.AnnualTotal != 0 {
		ratios.PeriodOverAnnual = rep.PeriodAdjusted / rep.AnnualTotal
		ratios.NextYearOverAnnual = rep.NextYearSeasonal / rep.AnnualTotal
	}
	return rep, ratios
}

// RedistributeWater linearly rescales a user-supplied annual liters figure
// through a previously derived ratio model.
func RedistributeWater(annualTarget float64, ratios model.RatioModel) model.WaterReport {
	return model.WaterReport{
		AnnualTotal:      annualTarget,
		PeriodAdjusted:   annualTarget * ratios.PeriodOverAnnual,
		NextYearSeasonal: annualTarget * ratios.NextYearOverAnnual,
	}
}
