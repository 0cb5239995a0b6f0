package pipeline

import (
	"github.com/facastdev/facast/internal/model"
	"github.com/facastdev/facast/internal/source"
)

// cleaningLabel is the bimonthly cleaning invoice: its price is annualized
// by six cycles and the raw bimonthly figure is retained for period math.
const cleaningLabel = "Limpieza. jardin, patios y entrada"

// annualizedLabels are single monthly invoices multiplied by 12 to stand in
// for the whole year. The trailing space on the second label is literal: it
// matches the source spreadsheet cell, and because incoming labels are
// trimmed it never fires, exactly like the tool this replaces. Kept as is
// until the upstream sheet is fixed.
var annualizedLabels = map[string]bool{
	"Factura digi mayo":        true,
	"Fibra y movil noviembre ": true,
}

// cleaningShare is the assumed cleaning proportion of a user-supplied
// annual services total.
const cleaningShare = 0.15

// AggregateServices folds service invoice rows into a per-service ledger and
// grand total, applying the category-specific annualization rules.
func AggregateServices(rows []source.ServiceRow) model.ServicesReport {
	rep := model.ServicesReport{Ledger: model.NewLedger()}

	for _, r := range rows {
		if r.Label == cleaningLabel {
			rep.BimonthlyCleaning = r.Price
			rep.Ledger.Set(r.Label, r.Price*6)
			rep.GrandTotal += r.Price * 6
			continue
		}
		price := r.Price
		if annualizedLabels[r.Label] {
			price *= 12
		}
		rep.Ledger.Add(r.Label, price)
		rep.GrandTotal += price
	}

	rep.NextYear = rep.GrandTotal
	rep.MonthlyAvg = rep.NextYear / 12
	rep.DailyAvg = rep.MonthlyAvg / daysPerMonth
	rep.AnnualCleaning = rep.BimonthlyCleaning * 6
	// Five of the six bimonthly cycles fall inside September-June.
	rep.PeriodCleaning = rep.BimonthlyCleaning * 5

	return rep
}

// RedistributeServices recomputes the services breakdown from a single
// user-supplied annual figure, assuming cleaning takes a fixed 15% share.
func RedistributeServices(annualTarget float64) model.ServicesReport {
	annualCleaning := annualTarget * cleaningShare
	return model.ServicesReport{
		GrandTotal:     annualTarget,
		NextYear:       annualTarget,
		MonthlyAvg:     annualTarget / 12,
		DailyAvg:       annualTarget / 12 / daysPerMonth,
		AnnualCleaning: annualCleaning,
		PeriodCleaning: annualCleaning * 10 / 12,
	}
}
