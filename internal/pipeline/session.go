package pipeline

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/facastdev/facast/internal/model"
)

// Session holds one load-and-compute cycle: the parsed series, the computed
// reports, and the cached ratio model. Redistribution reads from here, so
// the historical and what-if paths always agree on the same run. A new load
// replaces the whole session; stale ratios cannot leak across runs.
type Session struct {
	DataDir        string
	ReferenceYear  int
	ReferenceMonth time.Month

	ElectricitySeries []model.TimePoint
	WaterSeries       []model.TimePoint

	Electricity *model.ElectricityReport
	Water       *model.WaterReport
	WaterRatios *model.RatioModel
	Materials   *model.MaterialsReport
	Services    *model.ServicesReport

	// Per-indicator load failures and skipped-row counts. A failed source
	// degrades only its own indicator.
	Errors  map[model.Indicator]error
	Skipped map[model.Indicator]int

	rng *rand.Rand
}

// NewSession returns an empty session using rng for electricity jitter.
// A nil rng gets a time-seeded source.
func NewSession(dataDir string, refYear int, refMonth time.Month, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		DataDir:        dataDir,
		ReferenceYear:  refYear,
		ReferenceMonth: refMonth,
		Errors:         make(map[model.Indicator]error),
		Skipped:        make(map[model.Indicator]int),
		rng:            rng,
	}
}

// Available reports whether the indicator's historical computation succeeded.
func (s *Session) Available(ind model.Indicator) bool {
	switch ind {
	case model.Electricity:
		return s.Electricity != nil
	case model.Water:
		return s.Water != nil
	case model.Materials:
		return s.Materials != nil
	case model.Services:
		return s.Services != nil
	}
	return false
}

// Figures returns the historical label/value set for an indicator, or
// ErrDataUnavailable when its source failed to load.
func (s *Session) Figures(ind model.Indicator) ([]model.Figure, error) {
	if !s.Available(ind) {
		if err, ok := s.Errors[ind]; ok && err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrDataUnavailable, err)
		}
		return nil, model.ErrDataUnavailable
	}

	switch ind {
	case model.Electricity:
		return electricityFigures(*s.Electricity), nil
	case model.Water:
		return waterFigures(*s.Water, true), nil
	case model.Materials:
		return materialsFigures(*s.Materials, true), nil
	case model.Services:
		return servicesFigures(*s.Services, true), nil
	}
	return nil, model.ErrUnsupportedIndicator
}

// Redistribute recomputes an indicator's breakdown from a user-supplied
// annual figure. Ratio-based indicators require a previously successful
// historical computation.
func (s *Session) Redistribute(ind model.Indicator, annualTarget float64) ([]model.Figure, error) {
	switch ind {
	case model.Electricity:
		rep := RedistributeElectricity(annualTarget, s.rng)
		return electricityFigures(rep), nil
	case model.Water:
		if s.WaterRatios == nil {
			return nil, model.ErrModelUnavailable
		}
		rep := RedistributeWater(annualTarget, *s.WaterRatios)
		return waterFigures(rep, false), nil
	case model.Materials:
		rep := RedistributeMaterials(annualTarget)
		return materialsFigures(rep, false), nil
	case model.Services:
		rep := RedistributeServices(annualTarget)
		return servicesFigures(rep, false), nil
	}
	return nil, fmt.Errorf("%w: %d", model.ErrUnsupportedIndicator, int(ind))
}

// MonthlySplit breaks any annual figure into approximate monthly and daily
// shares, unit-agnostic.
func MonthlySplit(annualTarget float64) (monthly, daily float64) {
	return annualTarget / 12, annualTarget / 365.25
}

func electricityFigures(r model.ElectricityReport) []model.Figure {
	return []model.Figure{
		{Label: "Estimated consumption this year", Value: r.EstimatedAnnual, Unit: "kWh"},
		{Label: "Estimated consumption next year (5% growth)", Value: r.NextYear, Unit: "kWh"},
		{Label: "Adjusted consumption, winter months", Value: r.WinterAdjusted, Unit: "kWh"},
		{Label: "Adjusted consumption, June-August", Value: r.SummerAdjusted, Unit: "kWh"},
		{Label: "Adjusted estimate, three winter months (Jan x3)", Value: r.JanuaryTimes3, Unit: "kWh"},
		{Label: "Adjusted estimate, September-June (Jan x9)", Value: r.JanuaryTimes9, Unit: "kWh"},
	}
}

func waterFigures(r model.WaterReport, historical bool) []model.Figure {
	figs := []model.Figure{
		{Label: "Projected annual consumption", Value: r.AnnualTotal, Unit: "L"},
		{Label: "Seasonally adjusted September-June", Value: r.PeriodAdjusted, Unit: "L"},
		{Label: "Seasonal forecast for next year", Value: r.NextYearSeasonal, Unit: "L"},
	}
	if historical {
		figs = append(figs,
			model.Figure{Label: "Reference month total", Value: r.ReferenceMonth, Unit: "L"},
			model.Figure{Label: "Seasonally weighted annual sum", Value: r.AdjustedAnnual, Unit: "L"},
		)
	}
	return figs
}

func materialsFigures(r model.MaterialsReport, historical bool) []model.Figure {
	figs := []model.Figure{
		{Label: "Next-year materials spend (last year's average)", Value: r.NextYear, Unit: "EUR"},
		{Label: "September-June materials spend (10/12)", Value: r.SeptJun, Unit: "EUR"},
		{Label: "Projected next-year total (monthly mean x12)", Value: r.ProjectedYear, Unit: "EUR"},
	}
	if historical {
		figs = append(figs,
			model.Figure{Label: "Average monthly materials cost", Value: r.MonthlyAvg, Unit: "EUR"},
			model.Figure{Label: "Average daily materials cost", Value: r.DailyAvg, Unit: "EUR"},
			model.Figure{Label: "Total units ordered", Value: float64(r.TotalUnits), Unit: ""},
		)
	}
	return figs
}

func servicesFigures(r model.ServicesReport, historical bool) []model.Figure {
	figs := []model.Figure{
		{Label: "Total services cost next year (last year's average)", Value: r.NextYear, Unit: "EUR"},
		{Label: "Annual cleaning cost (bimonthly x6)", Value: r.AnnualCleaning, Unit: "EUR"},
		{Label: "September-June cleaning cost", Value: r.PeriodCleaning, Unit: "EUR"},
	}
	if historical {
		figs = append(figs,
			model.Figure{Label: "Average monthly services cost", Value: r.MonthlyAvg, Unit: "EUR"},
			model.Figure{Label: "Average daily services cost", Value: r.DailyAvg, Unit: "EUR"},
		)
	}
	return figs
}
