package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/facastdev/facast/internal/model"
)

// februaryWeek returns one recorded week of February 2024: Monday the 5th
// through Friday the 9th at 100 L/day, Saturday and Sunday at 50 L/day.
func februaryWeek() []model.TimePoint {
	var points []model.TimePoint
	for d := 5; d <= 9; d++ {
		points = append(points, day(2024, time.February, d, 100))
	}
	points = append(points, day(2024, time.February, 10, 50))
	points = append(points, day(2024, time.February, 11, 50))
	return points
}

func TestIsoWeekday(t *testing.T) {
	// 2024-02-05 is a Monday.
	monday := time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		got := isoWeekday(monday.AddDate(0, 0, i))
		if got != i {
			t.Errorf("isoWeekday(Monday+%d) = %d, want %d", i, got, i)
		}
	}
}

func TestProjectWater_ReferenceMonth(t *testing.T) {
	rep, ratios := ProjectWater(februaryWeek(), 2024, time.February)

	if rep.WeekdaySum != 500 {
		t.Errorf("WeekdaySum = %v, want 500", rep.WeekdaySum)
	}
	if rep.WeekendSum != 100 {
		t.Errorf("WeekendSum = %v, want 100", rep.WeekendSum)
	}
	if rep.WeekdayMonthly != 10000 {
		t.Errorf("WeekdayMonthly = %v, want 10000", rep.WeekdayMonthly)
	}
	if rep.WeekendMonthly != 800 {
		t.Errorf("WeekendMonthly = %v, want 800", rep.WeekendMonthly)
	}
	if rep.ReferenceMonth != 10800 {
		t.Errorf("ReferenceMonth = %v, want 10800", rep.ReferenceMonth)
	}
	// (10000*4 + 800*4) * 9
	if rep.SeptJunTotal != 388800 {
		t.Errorf("SeptJunTotal = %v, want 388800", rep.SeptJunTotal)
	}
	if rep.AnnualTotal != 561600 {
		t.Errorf("AnnualTotal = %v, want 561600", rep.AnnualTotal)
	}
	if math.Abs(rep.NextYear-561600*1.05) > 1e-6 {
		t.Errorf("NextYear = %v, want %v", rep.NextYear, 561600*1.05)
	}

	avg := meanSeasonalFactor()
	if math.Abs(rep.PeriodAdjusted-388800*avg) > 1e-6 {
		t.Errorf("PeriodAdjusted = %v, want %v", rep.PeriodAdjusted, 388800*avg)
	}
	if math.Abs(rep.NextYearSeasonal-rep.NextYear*avg) > 1e-6 {
		t.Errorf("NextYearSeasonal = %v, want %v", rep.NextYearSeasonal, rep.NextYear*avg)
	}

	// Every factor applied to the annual total, summed.
	var wantAdjusted float64
	for _, f := range waterSeasonalFactors {
		wantAdjusted += rep.AnnualTotal * f.Factor
	}
	if math.Abs(rep.AdjustedAnnual-wantAdjusted) > 1e-6 {
		t.Errorf("AdjustedAnnual = %v, want %v", rep.AdjustedAnnual, wantAdjusted)
	}

	if math.Abs(ratios.PeriodOverAnnual-rep.PeriodAdjusted/rep.AnnualTotal) > 1e-12 {
		t.Errorf("PeriodOverAnnual = %v", ratios.PeriodOverAnnual)
	}
	if math.Abs(ratios.NextYearOverAnnual-rep.NextYearSeasonal/rep.AnnualTotal) > 1e-12 {
		t.Errorf("NextYearOverAnnual = %v", ratios.NextYearOverAnnual)
	}
}

func TestProjectWater_IgnoresOtherMonths(t *testing.T) {
	points := append(februaryWeek(),
		day(2024, time.March, 4, 1000),
		day(2023, time.February, 6, 1000),
	)

	withNoise, _ := ProjectWater(points, 2024, time.February)
	clean, _ := ProjectWater(februaryWeek(), 2024, time.February)

	if withNoise != clean {
		t.Errorf("rows outside the reference month leaked into the report:\n%+v\n%+v", withNoise, clean)
	}
}

func TestProjectWater_MeanSeasonalFactor(t *testing.T) {
	got := meanSeasonalFactor()
	want := 12.97 / 12
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("meanSeasonalFactor = %v, want %v", got, want)
	}
}

func TestProjectWater_NoData(t *testing.T) {
	rep, ratios := ProjectWater(nil, 2024, time.February)

	if rep.AnnualTotal != 0 || rep.PeriodAdjusted != 0 {
		t.Errorf("empty series report = %+v, want zeros", rep)
	}
	// Ratios must stay finite so redistribution degrades to zero, not NaN.
	if ratios.PeriodOverAnnual != 0 || ratios.NextYearOverAnnual != 0 {
		t.Errorf("ratios = %+v, want zeros", ratios)
	}
	red := RedistributeWater(50000, ratios)
	if red.PeriodAdjusted != 0 || red.NextYearSeasonal != 0 {
		t.Errorf("redistribution with zero ratios = %+v, want zeros", red)
	}
}

func TestRedistributeWater_Linear(t *testing.T) {
	_, ratios := ProjectWater(februaryWeek(), 2024, time.February)

	x := RedistributeWater(10000, ratios)
	x2 := RedistributeWater(20000, ratios)

	if math.Abs(x2.PeriodAdjusted-2*x.PeriodAdjusted) > 1e-9 {
		t.Errorf("PeriodAdjusted not linear: %v vs %v", x.PeriodAdjusted, x2.PeriodAdjusted)
	}
	if math.Abs(x2.NextYearSeasonal-2*x.NextYearSeasonal) > 1e-9 {
		t.Errorf("NextYearSeasonal not linear: %v vs %v", x.NextYearSeasonal, x2.NextYearSeasonal)
	}
	if x.AnnualTotal != 10000 {
		t.Errorf("AnnualTotal = %v, want the target itself", x.AnnualTotal)
	}
}

func TestRedistributeWater_RoundTrip(t *testing.T) {
	// Feeding the historical annual total back through the ratios must
	// reproduce the historical projections.
	rep, ratios := ProjectWater(februaryWeek(), 2024, time.February)

	red := RedistributeWater(rep.AnnualTotal, ratios)
	if math.Abs(red.PeriodAdjusted-rep.PeriodAdjusted) > 1e-6 {
		t.Errorf("PeriodAdjusted = %v, want %v", red.PeriodAdjusted, rep.PeriodAdjusted)
	}
	if math.Abs(red.NextYearSeasonal-rep.NextYearSeasonal) > 1e-6 {
		t.Errorf("NextYearSeasonal = %v, want %v", red.NextYearSeasonal, rep.NextYearSeasonal)
	}
}
