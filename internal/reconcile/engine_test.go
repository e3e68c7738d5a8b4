package reconcile

import (
	"testing"

	"github.com/taxdesk-erp/taxdesk/internal/fx"
	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

func pnlSection() map[string]any {
	return map[string]any{
		"revenue":     100000.0,
		"costOfSales": 40000.0,
		"items": []any{
			map[string]any{"description": "Administrative expenses", "amount": 25000.0},
		},
	}
}

func TestApplyExtraction(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st = ApplyExtraction(st, pnlSection(), fx.DefaultConfig(), false)

	if st.Dirty {
		t.Fatalf("fresh extraction must leave statement pristine")
	}
	if got := st.Value(statement.IDRevenue).CurrentYear; got != 100000 {
		t.Fatalf("expected revenue 100000 got %.2f", got)
	}
	if got := st.Value(statement.IDGrossProfit).CurrentYear; got != 60000 {
		t.Fatalf("expected triangulated gross 60000 got %.2f", got)
	}
	if got := st.Value(statement.IDAdministrativeExpenses).CurrentYear; got != 25000 {
		t.Fatalf("expected classified admin 25000 got %.2f", got)
	}
	if got := st.Value(statement.IDProfitLossYear).CurrentYear; got != 35000 {
		t.Fatalf("expected net profit 35000 got %.2f", got)
	}
}

func TestApplyExtractionDirtyGuard(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st = EditLineItem(st, statement.IDRevenue, statement.PeriodValue{CurrentYear: 555})
	if !st.Dirty {
		t.Fatalf("edit must mark statement dirty")
	}

	guarded := ApplyExtraction(st, pnlSection(), fx.DefaultConfig(), false)
	if got := guarded.Value(statement.IDRevenue).CurrentYear; got != 555 {
		t.Fatalf("dirty statement must be untouched without force, got %.2f", got)
	}
	if !guarded.Dirty {
		t.Fatalf("skipped extraction must not reset the dirty flag")
	}

	forced := ApplyExtraction(st, pnlSection(), fx.DefaultConfig(), true)
	if got := forced.Value(statement.IDRevenue).CurrentYear; got != 100000 {
		t.Fatalf("forced extraction must overwrite, got %.2f", got)
	}
	if forced.Dirty {
		t.Fatalf("forced extraction is the only path back to pristine")
	}
}

func TestApplyExtractionConvertsCurrency(t *testing.T) {
	cfg := fx.Config{Selected: "USD", RateToAED: 3.6725}
	sect := map[string]any{
		"items": []any{
			map[string]any{"description": "Administrative expenses", "amount": 1000.0},
		},
	}
	st := ApplyExtraction(statement.NewState(statement.KindProfitLoss), sect, cfg, false)

	notes := st.Notes[statement.IDAdministrativeExpenses]
	if len(notes) != 1 {
		t.Fatalf("expected one admin note got %d", len(notes))
	}
	if notes[0].CurrentYear != 3673 {
		t.Fatalf("expected 1000 USD as 3673 AED got %.2f", notes[0].CurrentYear)
	}
	if notes[0].OriginalAmount != 1000 || notes[0].Currency != "USD" {
		t.Fatalf("original amount and currency must be preserved, got %+v", notes[0])
	}
}

func TestEditLineItemClearsNotes(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st.SetNotes(statement.IDRevenue, []statement.WorkingNote{
		{Description: "Contract income", CurrentYear: 90000},
	})

	st = EditLineItem(st, statement.IDRevenue, statement.PeriodValue{CurrentYear: 120000})

	if st.HasNotes(statement.IDRevenue) {
		t.Fatalf("direct edit must clear the note bucket")
	}
	if got := st.Value(statement.IDRevenue).CurrentYear; got != 120000 {
		t.Fatalf("expected typed value 120000 got %.2f", got)
	}
	if !st.Dirty {
		t.Fatalf("edit must mark statement dirty")
	}
}

func TestEditWorkingNotes(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st = EditWorkingNotes(st, statement.IDFinanceCosts, []statement.WorkingNote{
		{Description: "Interest expense", CurrentYear: 3000},
		{Description: "Bank charges", CurrentYear: 500},
	})

	if got := st.Value(statement.IDFinanceCosts).CurrentYear; got != 3500 {
		t.Fatalf("line total must follow note sum, got %.2f", got)
	}
	if !st.Dirty {
		t.Fatalf("note edit must mark statement dirty")
	}

	st = EditWorkingNotes(st, statement.IDFinanceCosts, nil)
	if got := st.Value(statement.IDFinanceCosts).CurrentYear; got != 0 {
		t.Fatalf("clearing notes must zero the line, got %.2f", got)
	}
}
