package model

import "testing"

func TestParseIndicator(t *testing.T) {
	for _, ind := range AllIndicators {
		got, ok := ParseIndicator(ind.String())
		if !ok || got != ind {
			t.Errorf("ParseIndicator(%q) = %v, %v", ind.String(), got, ok)
		}
	}
	for _, bad := range []string{"", "Electricity", "gas", "all"} {
		if _, ok := ParseIndicator(bad); ok {
			t.Errorf("ParseIndicator(%q) accepted", bad)
		}
	}
}

func TestIndicatorUnit(t *testing.T) {
	if got := Electricity.Unit(); got != "kWh" {
		t.Errorf("electricity unit = %q", got)
	}
	if got := Water.Unit(); got != "L" {
		t.Errorf("water unit = %q", got)
	}
	if got := Materials.Unit(); got != "EUR" {
		t.Errorf("materials unit = %q", got)
	}
	if got := Services.Unit(); got != "EUR" {
		t.Errorf("services unit = %q", got)
	}
}

func TestLedger_AddAccumulates(t *testing.T) {
	l := NewLedger()
	l.Add("Paper", 10)
	l.Add("Toner", 5)
	l.Add("Paper", 2.5)

	if got := l.Totals["Paper"]; got != 12.5 {
		t.Errorf("Paper total = %v, want 12.5", got)
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
	if l.Order[0] != "Paper" || l.Order[1] != "Toner" {
		t.Errorf("Order = %v, want first-seen order", l.Order)
	}
	if got := l.Sum(); got != 17.5 {
		t.Errorf("Sum = %v, want 17.5", got)
	}
}

func TestLedger_SetOverwrites(t *testing.T) {
	l := NewLedger()
	l.Add("Cleaning", 50)
	l.Set("Cleaning", 300)

	if got := l.Totals["Cleaning"]; got != 300 {
		t.Errorf("Cleaning total = %v, want 300", got)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}
