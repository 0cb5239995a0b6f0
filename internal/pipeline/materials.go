package pipeline

import (
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/source"
)

// daysPerMonth is the average calendar month length used for daily splits.
const daysPerMonth = 365.25 / 12

// AggregateMaterials folds office-materials purchase rows into a per-material
// ledger, last-year grand total, a mean-monthly×12 projection, and the total
// units ordered. Malformed rows never reach this function; the parser skips
// them.
func AggregateMaterials(rows []source.MaterialRow) model.MaterialsReport {
	rep := model.MaterialsReport{Ledger: model.NewLedger()}

	for _, r := range rows {
		rep.Ledger.Add(r.Material, r.Total)
		rep.GrandTotal += r.Total
		rep.TotalUnits += r.Quantity
	}

	// Last year's spend doubles as next year's forecast.
	rep.NextYear = rep.GrandTotal
	rep.SeptJun = rep.NextYear / 12 * 10
	rep.MonthlyAvg = rep.NextYear / 12
	rep.DailyAvg = rep.NextYear / daysPerMonth
	rep.ProjectedYear = projectMaterialsYear(rows)

	return rep
}

// projectMaterialsYear groups purchase totals by calendar month, averages the
// months that have data, and annualizes. Rows without a purchase date are
// left out of the grouping.
func projectMaterialsYear(rows []source.MaterialRow) float64 {
	monthly := make(map[int]float64)
	for _, r := range rows {
		if !r.HasPurchase {
			continue
		}
		monthly[int(r.Purchase.Month())] += r.Total
	}
	if len(monthly) == 0 {
		return 0
	}
	var sum float64
	for _, v := range monthly {
		sum += v
	}
	return sum / float64(len(monthly)) * 12
}

// RedistributeMaterials treats a user-supplied annual spend as both the
// next-year total and, scaled by 10/12, the September-June figure.
func RedistributeMaterials(annualTarget float64) model.MaterialsReport {
	return model.MaterialsReport{
		GrandTotal:    annualTarget,
		NextYear:      annualTarget,
		SeptJun:       annualTarget / 12 * 10,
		MonthlyAvg:    annualTarget / 12,
		DailyAvg:      annualTarget / daysPerMonth,
		ProjectedYear: annualTarget,
	}
}
