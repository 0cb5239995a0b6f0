package pipeline

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/facastdev/facast/internal/model"
)

func seededRng() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func day(y int, m time.Month, d int, v float64) model.TimePoint {
	return model.TimePoint{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Value: v}
}

func TestJitterBounds(t *testing.T) {
	rng := seededRng()
	for i := 0; i < 10000; i++ {
		j := jitter(rng)
		if j < 0.90 || j >= 1.10 {
			t.Fatalf("jitter = %v, want [0.90, 1.10)", j)
		}
	}
}

func TestProjectElectricity_Annualization(t *testing.T) {
	points := []model.TimePoint{
		day(2024, time.January, 1, 10),
		day(2024, time.January, 2, 20),
		day(2024, time.January, 3, 30),
	}

	rep := ProjectElectricity(points, seededRng())

	if rep.ObservedTotal != 60 {
		t.Errorf("ObservedTotal = %v, want 60", rep.ObservedTotal)
	}
	if rep.ObservedDays != 3 {
		t.Errorf("ObservedDays = %d, want 3", rep.ObservedDays)
	}
	// 60/3*365, then 5% growth.
	if math.Abs(rep.EstimatedAnnual-7300) > 1e-9 {
		t.Errorf("EstimatedAnnual = %v, want 7300", rep.EstimatedAnnual)
	}
	if math.Abs(rep.NextYear-7665) > 1e-9 {
		t.Errorf("NextYear = %v, want 7665", rep.NextYear)
	}
}

func TestProjectElectricity_AdjustedBounds(t *testing.T) {
	// January carries a 1.50 factor and jitter in [0.90, 1.10), so every
	// adjusted January total lands in [value*1.35, value*1.65).
	points := []model.TimePoint{day(2024, time.January, 15, 100)}

	rep := ProjectElectricity(points, seededRng())

	if rep.JanuaryAdjusted < 135 || rep.JanuaryAdjusted >= 165 {
		t.Errorf("JanuaryAdjusted = %v, want [135, 165)", rep.JanuaryAdjusted)
	}
	// January is both a winter and a period month.
	if rep.WinterAdjusted != rep.JanuaryAdjusted {
		t.Errorf("WinterAdjusted = %v, want %v", rep.WinterAdjusted, rep.JanuaryAdjusted)
	}
	if rep.PeriodAdjusted != rep.JanuaryAdjusted {
		t.Errorf("PeriodAdjusted = %v, want %v", rep.PeriodAdjusted, rep.JanuaryAdjusted)
	}
	if rep.SummerAdjusted != 0 {
		t.Errorf("SummerAdjusted = %v, want 0", rep.SummerAdjusted)
	}

	if rep.JanuaryTimes3 != rep.JanuaryAdjusted*3 {
		t.Errorf("JanuaryTimes3 = %v, want x3", rep.JanuaryTimes3)
	}
	if rep.JanuaryTimes9 != rep.JanuaryAdjusted*9 {
		t.Errorf("JanuaryTimes9 = %v, want x9", rep.JanuaryTimes9)
	}
	// One period day extrapolated over the 304-day September-June span.
	if math.Abs(rep.PeriodEstimate-rep.PeriodAdjusted*304) > 1e-9 {
		t.Errorf("PeriodEstimate = %v, want %v", rep.PeriodEstimate, rep.PeriodAdjusted*304)
	}
}

func TestProjectElectricity_JulyNotInPeriod(t *testing.T) {
	points := []model.TimePoint{day(2024, time.July, 10, 50)}

	rep := ProjectElectricity(points, seededRng())

	if rep.PeriodAdjusted != 0 {
		t.Errorf("PeriodAdjusted = %v, want 0 for July-only data", rep.PeriodAdjusted)
	}
	if rep.PeriodEstimate != 0 {
		t.Errorf("PeriodEstimate = %v, want 0", rep.PeriodEstimate)
	}
	if rep.SummerAdjusted == 0 {
		t.Error("SummerAdjusted = 0, want July consumption counted")
	}
}

func TestProjectElectricity_Empty(t *testing.T) {
	rep := ProjectElectricity(nil, seededRng())
	if rep != (model.ElectricityReport{}) {
		t.Errorf("empty series report = %+v, want zero value", rep)
	}
}

func TestProjectElectricity_SeededReproducible(t *testing.T) {
	points := []model.TimePoint{
		day(2024, time.January, 1, 10),
		day(2024, time.June, 1, 20),
		day(2024, time.October, 1, 30),
	}

	a := ProjectElectricity(points, rand.New(rand.NewSource(7)))
	b := ProjectElectricity(points, rand.New(rand.NewSource(7)))
	if a != b {
		t.Errorf("same seed produced different reports:\n%+v\n%+v", a, b)
	}

	c := ProjectElectricity(points, rand.New(rand.NewSource(8)))
	if a.WinterAdjusted == c.WinterAdjusted {
		t.Error("different seeds produced identical winter adjustment")
	}
}

func TestRedistributeElectricity(t *testing.T) {
	rep := RedistributeElectricity(1200, seededRng())

	if rep.EstimatedAnnual != 1200 {
		t.Errorf("EstimatedAnnual = %v, want 1200", rep.EstimatedAnnual)
	}
	if math.Abs(rep.NextYear-1260) > 1e-9 {
		t.Errorf("NextYear = %v, want 1260", rep.NextYear)
	}

	// Twelve synthetic months of 100: winter is Dec+Jan+Feb at factor 1.50,
	// so 3*100*1.5 jittered -> [405, 495).
	if rep.WinterAdjusted < 405 || rep.WinterAdjusted >= 495 {
		t.Errorf("WinterAdjusted = %v, want [405, 495)", rep.WinterAdjusted)
	}
	// This path has no day-count scaling.
	if rep.PeriodEstimate != rep.PeriodAdjusted {
		t.Errorf("PeriodEstimate = %v, want PeriodAdjusted %v", rep.PeriodEstimate, rep.PeriodAdjusted)
	}
	if rep.JanuaryTimes9 != rep.JanuaryAdjusted*9 {
		t.Errorf("JanuaryTimes9 = %v, want x9", rep.JanuaryTimes9)
	}
}

func TestRedistributeElectricity_LinearInTarget(t *testing.T) {
	// With the same jitter draws, doubling the target doubles every field.
	a := RedistributeElectricity(1000, rand.New(rand.NewSource(3)))
	b := RedistributeElectricity(2000, rand.New(rand.NewSource(3)))

	if math.Abs(b.WinterAdjusted-2*a.WinterAdjusted) > 1e-9 {
		t.Errorf("WinterAdjusted not linear: %v vs %v", a.WinterAdjusted, b.WinterAdjusted)
	}
	if math.Abs(b.PeriodAdjusted-2*a.PeriodAdjusted) > 1e-9 {
		t.Errorf("PeriodAdjusted not linear: %v vs %v", a.PeriodAdjusted, b.PeriodAdjusted)
	}
	if math.Abs(b.NextYear-2*a.NextYear) > 1e-9 {
		t.Errorf("NextYear not linear: %v vs %v", a.NextYear, b.NextYear)
	}
}
