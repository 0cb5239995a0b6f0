// Package forecast implements additive Holt-Winters triple exponential
// smoothing for equally-spaced consumption series.
package forecast

import (
	"fmt"

	"github.com/facastdev/facast/internal/model"
)

// Params holds the smoothing coefficients, each in (0, 1].
type Params struct {
	Alpha float64 // level
	Beta  float64 // trend
	Gamma float64 // seasonal
}

// DefaultParams are the coefficients the tool has always used for monthly data.
var DefaultParams = Params{Alpha: 0.2, Beta: 0.1, Gamma: 0.1}

// FitForecast fits an additive Holt-Winters model to series and returns
// horizon forecast values. The series must contain at least two full seasons;
// shorter input returns model.ErrInsufficientData. The call is pure: all
// state is local.
func FitForecast(series []float64, seasonLength, horizon int, p Params) ([]float64, error) {
	if seasonLength < 1 {
		return nil, fmt.Errorf("season length %d: must be positive", seasonLength)
	}
	if len(series) < 2*seasonLength {
		return nil, fmt.Errorf("%w: %d observations, need %d",
			model.ErrInsufficientData, len(series), 2*seasonLength)
	}

	// Seasonal indices: per-position mean across all complete seasons.
	seasons := len(series) / seasonLength
	seasonals := make([]float64, seasonLength)
	for i := 0; i < seasonLength; i++ {
		var sum float64
		for j := 0; j < seasons; j++ {
			sum += series[i+j*seasonLength]
		}
		seasonals[i] = sum / float64(seasons)
	}

	// Level: mean of the first season. Trend: mean first-to-second season
	// difference divided by the season length.
	var level float64
	for i := 0; i < seasonLength; i++ {
		level += series[i]
	}
	level /= float64(seasonLength)

	var trend float64
	for i := 0; i < seasonLength; i++ {
		trend += (series[i+seasonLength] - series[i]) / float64(seasonLength)
	}
	trend /= float64(seasonLength)

	// Fit pass. Order matters: the trend update reads the just-updated level
	// against the pre-update level, and the seasonal update reads the
	// just-updated level.
	for i := seasonLength; i < len(series); i++ {
		value := series[i]
		prevLevel := level
		seasonal := seasonals[i%seasonLength]
		level = p.Alpha*(value-seasonal) + (1-p.Alpha)*(level+trend)
		trend = p.Beta*(level-prevLevel) + (1-p.Beta)*trend
		seasonals[i%seasonLength] = p.Gamma*(value-level) + (1-p.Gamma)*seasonal
	}

	out := make([]float64, 0, horizon)
	for m := 1; m <= horizon; m++ {
		idx := (len(series) + m - seasonLength) % seasonLength
		out = append(out, level+float64(m)*trend+seasonals[idx])
	}
	return out, nil
}

// MonthlyTotals folds a daily series into calendar-month totals, ordered by
// month ascending, for feeding the forecaster with seasonLength 12.
func MonthlyTotals(points []model.TimePoint) []float64 {
	if len(points) == 0 {
		return nil
	}
	type monthKey struct {
		year  int
		month int
	}
	totals := make(map[monthKey]float64)
	var order []monthKey
	for _, pt := range points {
		k := monthKey{pt.Date.Year(), int(pt.Date.Month())}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] += pt.Value
	}
	// Points arrive date-ordered, so first-seen order is month order.
	out := make([]float64, 0, len(order))
	for _, k := range order {
		out = append(out, totals[k])
	}
	return out
}
