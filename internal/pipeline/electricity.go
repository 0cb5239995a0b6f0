package pipeline

import (
	"math/rand"
	"time"

	"github.com/facastdev/facast/internal/model"
)

// annualGrowth is the fixed 5% year-over-year growth heuristic.
const annualGrowth = 1.05

// electricityFactors adjusts raw daily kWh by calendar month: heating-heavy
// winter months are scaled up, summer months down.
var electricityFactors = map[time.Month]float64{
	time.January:   1.50,
	time.February:  1.50,
	time.March:     1.10,
	time.April:     1.05,
	time.May:       0.95,
	time.June:      0.85,
	time.July:      0.80,
	time.August:    0.80,
	time.September: 0.90,
	time.October:   1.05,
	time.November:  1.10,
	time.December:  1.50,
}

var (
	winterMonths = monthSet(time.December, time.January, time.February)
	summerMonths = monthSet(time.June, time.July, time.August)
	periodMonths = monthSet(time.September, time.October, time.November,
		time.December, time.January, time.February, time.March, time.April,
		time.May, time.June)
)

func monthSet(months ...time.Month) map[time.Month]bool {
	set := make(map[time.Month]bool, len(months))
	for _, m := range months {
		set[m] = true
	}
	return set
}

// jitter draws a uniform factor in [0.90, 1.10). Each adjusted observation
// gets a fresh draw, so re-running the projector with an unseeded rng yields
// different adjusted totals, as the original tool did.
func jitter(rng *rand.Rand) float64 {
	return 0.90 + rng.Float64()*0.20
}

// ProjectElectricity derives the electricity report from an ordered daily
// series. The rng drives the per-observation jitter; callers that need
// reproducible output pass a seeded source.
func ProjectElectricity(points []model.TimePoint, rng *rand.Rand) model.ElectricityReport {
	var rep model.ElectricityReport
	if len(points) == 0 {
		return rep
	}

	for _, pt := range points {
		rep.ObservedTotal += pt.Value
	}
	rep.ObservedDays = len(points)
	rep.EstimatedAnnual = rep.ObservedTotal / float64(rep.ObservedDays) * 365
	rep.NextYear = rep.EstimatedAnnual * annualGrowth

	var periodDays int
	for _, pt := range points {
		month := pt.Date.Month()
		factor, ok := electricityFactors[month]
		if !ok {
			factor = 1
		}
		adjusted := pt.Value * factor * jitter(rng)

		if winterMonths[month] {
			rep.WinterAdjusted += adjusted
		}
		if summerMonths[month] {
			rep.SummerAdjusted += adjusted
		}
		if periodMonths[month] {
			rep.PeriodAdjusted += adjusted
			periodDays++
		}
		if month == time.January {
			rep.JanuaryAdjusted += adjusted
		}
	}

	// The September-June school period spans 304 calendar days.
	if periodDays > 0 {
		rep.PeriodEstimate = rep.PeriodAdjusted / float64(periodDays) * 304
	}
	rep.JanuaryTimes3 = rep.JanuaryAdjusted * 3
	rep.JanuaryTimes9 = rep.JanuaryAdjusted * 9

	return rep
}

// RedistributeElectricity recomputes the electricity breakdown from a single
// user-supplied annual kWh figure: the target is spread into twelve equal
// monthly averages, then adjusted and summed exactly like the historical
// path so the field semantics line up.
func RedistributeElectricity(annualTarget float64, rng *rand.Rand) model.ElectricityReport {
	rep := model.ElectricityReport{
		ObservedTotal:   annualTarget,
		EstimatedAnnual: annualTarget,
		NextYear:        annualTarget * annualGrowth,
	}

	monthlyAverage := annualTarget / 12
	for m := time.January; m <= time.December; m++ {
		factor, ok := electricityFactors[m]
		if !ok {
			factor = 1
		}
		adjusted := monthlyAverage * factor * jitter(rng)

		if winterMonths[m] {
			rep.WinterAdjusted += adjusted
		}
		if summerMonths[m] {
			rep.SummerAdjusted += adjusted
		}
		if periodMonths[m] {
			rep.PeriodAdjusted += adjusted
		}
		if m == time.January {
			rep.JanuaryAdjusted += adjusted
		}
	}

	// No day-count scaling on this path: twelve synthetic months stand in
	// for the observation series.
	rep.PeriodEstimate = rep.PeriodAdjusted
	rep.JanuaryTimes3 = rep.JanuaryAdjusted * 3
	rep.JanuaryTimes9 = rep.JanuaryAdjusted * 9

	return rep
}
