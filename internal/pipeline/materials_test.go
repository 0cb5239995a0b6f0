package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/facastdev/facast/internal/source"
)

func TestAggregateMaterials(t *testing.T) {
	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC)

	rows := []source.MaterialRow{
		{Material: "Paper", Total: 10.00, Quantity: 5, Purchase: jan, HasPurchase: true},
		{Material: "Paper", Total: 5.50, Quantity: 2, Purchase: jan, HasPurchase: true},
		{Material: "Toner", Total: 3.00, Quantity: 1, Purchase: feb, HasPurchase: true},
	}

	rep := AggregateMaterials(rows)

	if math.Abs(rep.GrandTotal-18.50) > 1e-9 {
		t.Errorf("GrandTotal = %v, want 18.50", rep.GrandTotal)
	}
	if rep.NextYear != rep.GrandTotal {
		t.Errorf("NextYear = %v, want last year's total", rep.NextYear)
	}
	if math.Abs(rep.SeptJun-18.50/12*10) > 1e-9 {
		t.Errorf("SeptJun = %v, want 10/12 of the year", rep.SeptJun)
	}
	if math.Abs(rep.MonthlyAvg-18.50/12) > 1e-9 {
		t.Errorf("MonthlyAvg = %v", rep.MonthlyAvg)
	}
	if math.Abs(rep.DailyAvg-18.50/(365.25/12)) > 1e-9 {
		t.Errorf("DailyAvg = %v", rep.DailyAvg)
	}
	if rep.TotalUnits != 8 {
		t.Errorf("TotalUnits = %d, want 8", rep.TotalUnits)
	}

	// Jan 15.50 + Feb 3.00 over two recorded months, annualized.
	want := (15.50 + 3.00) / 2 * 12
	if math.Abs(rep.ProjectedYear-want) > 1e-9 {
		t.Errorf("ProjectedYear = %v, want %v", rep.ProjectedYear, want)
	}

	if rep.Ledger.Len() != 2 {
		t.Fatalf("ledger categories = %d, want 2", rep.Ledger.Len())
	}
	if math.Abs(rep.Ledger.Totals["Paper"]-15.50) > 1e-9 {
		t.Errorf("Paper total = %v, want 15.50", rep.Ledger.Totals["Paper"])
	}
	if math.Abs(rep.Ledger.Sum()-rep.GrandTotal) > 1e-9 {
		t.Errorf("ledger sum %v != grand total %v", rep.Ledger.Sum(), rep.GrandTotal)
	}
}

func TestAggregateMaterials_NoPurchaseDates(t *testing.T) {
	rows := []source.MaterialRow{
		{Material: "Pens", Total: 4.00, Quantity: 10},
	}

	rep := AggregateMaterials(rows)
	if rep.ProjectedYear != 0 {
		t.Errorf("ProjectedYear = %v, want 0 without purchase dates", rep.ProjectedYear)
	}
	if rep.GrandTotal != 4.00 {
		t.Errorf("GrandTotal = %v, want 4.00", rep.GrandTotal)
	}
}

func TestAggregateMaterials_Empty(t *testing.T) {
	rep := AggregateMaterials(nil)
	if rep.GrandTotal != 0 || rep.TotalUnits != 0 || rep.ProjectedYear != 0 {
		t.Errorf("empty aggregate = %+v, want zeros", rep)
	}
	if rep.Ledger == nil || rep.Ledger.Len() != 0 {
		t.Error("want an empty, non-nil ledger")
	}
}

func TestAggregateMaterials_Idempotent(t *testing.T) {
	rows := []source.MaterialRow{
		{Material: "Paper", Total: 7.00, Quantity: 3},
		{Material: "Toner", Total: 2.50, Quantity: 1},
	}

	a := AggregateMaterials(rows)
	b := AggregateMaterials(rows)
	if a.GrandTotal != b.GrandTotal || a.ProjectedYear != b.ProjectedYear || a.TotalUnits != b.TotalUnits {
		t.Errorf("re-aggregation differs: %+v vs %+v", a, b)
	}
}

func TestRedistributeMaterials(t *testing.T) {
	rep := RedistributeMaterials(1200)

	if rep.NextYear != 1200 || rep.GrandTotal != 1200 || rep.ProjectedYear != 1200 {
		t.Errorf("rep = %+v, want the target echoed in annual fields", rep)
	}
	if rep.SeptJun != 1000 {
		t.Errorf("SeptJun = %v, want 1000", rep.SeptJun)
	}
	if rep.MonthlyAvg != 100 {
		t.Errorf("MonthlyAvg = %v, want 100", rep.MonthlyAvg)
	}
	if math.Abs(rep.DailyAvg-1200/(365.25/12)) > 1e-9 {
		t.Errorf("DailyAvg = %v", rep.DailyAvg)
	}
}
