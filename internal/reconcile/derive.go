package reconcile

import (
	"math"

	"github.com/taxdesk-erp/taxdesk/internal/statement"
	"github.com/taxdesk-erp/taxdesk/internal/tax"
)

var incomeIDs = []string{
	statement.IDRevenue,
	statement.IDOtherIncome,
	statement.IDUnrealisedGains,
	statement.IDShareOfAssociateProfits,
	statement.IDRevaluationGains,
}

// Expense lines arrive signed either way depending on the source document, so
// derivation uses magnitudes throughout.
var expenseIDs = []string{
	statement.IDCostOfRevenue,
	statement.IDImpairments,
	statement.IDBusinessPromotion,
	statement.IDForexLoss,
	statement.IDSellingDistribution,
	statement.IDAdministrativeExpenses,
	statement.IDFinanceCosts,
	statement.IDDepreciation,
}

// Recompute re-establishes every derived value: note-backed line items first,
// then dependent totals, then the corporate tax provision.
func Recompute(st *statement.State) {
	syncNoteTotals(st)
	if st.Kind == statement.KindBalanceSheet {
		deriveBalanceSheet(st)
		return
	}
	deriveProfitLoss(st)
}

// syncNoteTotals makes working notes the source of truth: any id with notes
// gets its period value overwritten by the note sums.
func syncNoteTotals(st *statement.State) {
	for id := range st.Notes {
		if st.HasNotes(id) {
			st.SetValue(id, st.NoteSum(id))
		}
	}
}

func deriveProfitLoss(st *statement.State) {
	if !st.HasNotes(statement.IDGrossProfit) {
		st.SetValue(statement.IDGrossProfit, statement.PeriodValue{
			CurrentYear:  st.Value(statement.IDRevenue).CurrentYear - math.Abs(st.Value(statement.IDCostOfRevenue).CurrentYear),
			PreviousYear: st.Value(statement.IDRevenue).PreviousYear - math.Abs(st.Value(statement.IDCostOfRevenue).PreviousYear),
		})
	}

	if !st.HasNotes(statement.IDProfitLossYear) {
		var net statement.PeriodValue
		for _, id := range incomeIDs {
			v := st.Value(id)
			net.CurrentYear += v.CurrentYear
			net.PreviousYear += v.PreviousYear
		}
		for _, id := range expenseIDs {
			v := st.Value(id)
			net.CurrentYear -= math.Abs(v.CurrentYear)
			net.PreviousYear -= math.Abs(v.PreviousYear)
		}
		st.SetValue(statement.IDProfitLossYear, net)
	}

	netProfit := st.Value(statement.IDProfitLossYear)
	provision := statement.PeriodValue{
		CurrentYear:  tax.CorporateTax(netProfit.CurrentYear),
		PreviousYear: tax.CorporateTax(netProfit.PreviousYear),
	}
	st.SetValue(statement.IDCorporateTax, provision)
	st.SetValue(statement.IDProfitAfterTax, statement.PeriodValue{
		CurrentYear:  netProfit.CurrentYear - provision.CurrentYear,
		PreviousYear: netProfit.PreviousYear - provision.PreviousYear,
	})

	if !st.HasNotes(statement.IDTotalComprehensiveIncome) {
		st.SetValue(statement.IDTotalComprehensiveIncome, netProfit)
	}
}

var balanceSheetTotals = []struct {
	total        string
	constituents []string
}{
	{statement.IDTotalNonCurrentAssets, []string{statement.IDPropertyPlantEquipment}},
	{statement.IDTotalCurrentAssets, []string{statement.IDInventory, statement.IDTradeReceivables, statement.IDCashAndBank}},
	{statement.IDTotalAssets, []string{statement.IDTotalNonCurrentAssets, statement.IDTotalCurrentAssets}},
	{statement.IDTotalLiabilities, []string{statement.IDTradePayables, statement.IDAccruedExpenses, statement.IDVATPayable, statement.IDLoans}},
	{statement.IDTotalEquity, []string{statement.IDShareCapital, statement.IDShareholdersCurrent, statement.IDRetainedEarnings}},
	{statement.IDTotalEquityAndLiabilities, []string{statement.IDTotalLiabilities, statement.IDTotalEquity}},
}

// deriveBalanceSheet recomputes the six total lines from their constituent
// buckets, in dependency order.
func deriveBalanceSheet(st *statement.State) {
	for _, group := range balanceSheetTotals {
		var total statement.PeriodValue
		for _, id := range group.constituents {
			v := st.Value(id)
			total.CurrentYear += v.CurrentYear
			total.PreviousYear += v.PreviousYear
		}
		st.SetValue(group.total, total)
	}
}
