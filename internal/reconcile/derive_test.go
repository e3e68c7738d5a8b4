package reconcile

import (
	"testing"

	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

func TestRecomputeProfitLoss(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st.SetValue(statement.IDRevenue, statement.PeriodValue{CurrentYear: 600000})
	st.SetValue(statement.IDCostOfRevenue, statement.PeriodValue{CurrentYear: -100000})
	st.SetValue(statement.IDAdministrativeExpenses, statement.PeriodValue{CurrentYear: 25000})

	Recompute(&st)

	if got := st.Value(statement.IDGrossProfit).CurrentYear; got != 500000 {
		t.Fatalf("expected gross profit 500000 got %.2f", got)
	}
	if got := st.Value(statement.IDProfitLossYear).CurrentYear; got != 475000 {
		t.Fatalf("expected net profit 475000 got %.2f", got)
	}
	if got := st.Value(statement.IDCorporateTax).CurrentYear; got != 9000 {
		t.Fatalf("expected CT provision 9000 got %.2f", got)
	}
	if got := st.Value(statement.IDProfitAfterTax).CurrentYear; got != 466000 {
		t.Fatalf("expected profit after tax 466000 got %.2f", got)
	}
	if got := st.Value(statement.IDTotalComprehensiveIncome).CurrentYear; got != 475000 {
		t.Fatalf("expected TCI to default to net profit, got %.2f", got)
	}
}

func TestRecomputeExpenseSignsNormalised(t *testing.T) {
	// The same expense reported positive or negative nets to the same profit.
	for _, sign := range []float64{1, -1} {
		st := statement.NewState(statement.KindProfitLoss)
		st.SetValue(statement.IDRevenue, statement.PeriodValue{CurrentYear: 100000})
		st.SetValue(statement.IDFinanceCosts, statement.PeriodValue{CurrentYear: sign * 5000})

		Recompute(&st)

		if got := st.Value(statement.IDProfitLossYear).CurrentYear; got != 95000 {
			t.Fatalf("sign %+.0f: expected net profit 95000 got %.2f", sign, got)
		}
	}
}

func TestNoteBackedValuesWinOverFormulas(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st.SetValue(statement.IDRevenue, statement.PeriodValue{CurrentYear: 100000})
	st.SetValue(statement.IDCostOfRevenue, statement.PeriodValue{CurrentYear: -40000})
	st.SetNotes(statement.IDGrossProfit, []statement.WorkingNote{
		{Description: "Gross profit per audited accounts", CurrentYear: 58000},
	})

	Recompute(&st)

	if got := st.Value(statement.IDGrossProfit).CurrentYear; got != 58000 {
		t.Fatalf("note-backed gross profit must hold, got %.2f", got)
	}
}

func TestNoteSumsDriveLineTotals(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st.SetValue(statement.IDAdministrativeExpenses, statement.PeriodValue{CurrentYear: 999})
	st.SetNotes(statement.IDAdministrativeExpenses, []statement.WorkingNote{
		{Description: "Rent", CurrentYear: 12000, PreviousYear: 11000},
		{Description: "Salaries", CurrentYear: 30000, PreviousYear: 28000},
	})

	Recompute(&st)

	got := st.Value(statement.IDAdministrativeExpenses)
	if got.CurrentYear != 42000 || got.PreviousYear != 39000 {
		t.Fatalf("expected note sums 42000/39000 got %.2f/%.2f", got.CurrentYear, got.PreviousYear)
	}
}

func TestRecomputeBalanceSheet(t *testing.T) {
	st := statement.NewState(statement.KindBalanceSheet)
	st.SetValue(statement.IDPropertyPlantEquipment, statement.PeriodValue{CurrentYear: 100})
	st.SetValue(statement.IDInventory, statement.PeriodValue{CurrentYear: 20})
	st.SetValue(statement.IDTradeReceivables, statement.PeriodValue{CurrentYear: 30})
	st.SetValue(statement.IDCashAndBank, statement.PeriodValue{CurrentYear: 50})
	st.SetValue(statement.IDTradePayables, statement.PeriodValue{CurrentYear: 40})
	st.SetValue(statement.IDAccruedExpenses, statement.PeriodValue{CurrentYear: 10})
	st.SetValue(statement.IDVATPayable, statement.PeriodValue{CurrentYear: 5})
	st.SetValue(statement.IDLoans, statement.PeriodValue{CurrentYear: 45})
	st.SetValue(statement.IDShareCapital, statement.PeriodValue{CurrentYear: 50})
	st.SetValue(statement.IDShareholdersCurrent, statement.PeriodValue{CurrentYear: 20})
	st.SetValue(statement.IDRetainedEarnings, statement.PeriodValue{CurrentYear: 30})

	Recompute(&st)

	checks := map[string]float64{
		statement.IDTotalNonCurrentAssets:     100,
		statement.IDTotalCurrentAssets:        100,
		statement.IDTotalAssets:               200,
		statement.IDTotalLiabilities:          100,
		statement.IDTotalEquity:               100,
		statement.IDTotalEquityAndLiabilities: 200,
	}
	for id, want := range checks {
		if got := st.Value(id).CurrentYear; got != want {
			t.Fatalf("%s: expected %.2f got %.2f", id, want, got)
		}
	}
}
