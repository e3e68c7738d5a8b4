// Package classify buckets raw extracted line items into canonical account
// ids using ordered keyword rules. First match wins; the tables are data so
// each rule can be exercised on its own.
package classify

import "github.com/taxdesk-erp/taxdesk/internal/statement"

// Rule maps description keywords to one canonical account id.
type Rule struct {
	Account  string
	Keywords []string
}

// ProfitLossRules is the ordered rule table for the income statement. Cost of
// revenue sits above revenue so "cost of revenue" never files under revenue,
// and profit-after-tax above net profit for the same reason.
var ProfitLossRules = []Rule{
	{Account: statement.IDCostOfRevenue, Keywords: []string{"cost of revenue", "cost of sales", "cost of goods", "cogs", "direct cost"}},
	{Account: statement.IDRevenue, Keywords: []string{"revenue", "sales", "turnover", "income from operations", "contract income"}},
	{Account: statement.IDSellingDistribution, Keywords: []string{"selling", "distribution", "marketing"}},
	{Account: statement.IDBusinessPromotion, Keywords: []string{"business promotion", "promotion", "entertainment"}},
	{Account: statement.IDAdministrativeExpenses, Keywords: []string{"administrative", "general expense", "admin", "office expense", "staff cost", "salaries"}},
	{Account: statement.IDFinanceCosts, Keywords: []string{"finance cost", "interest expense", "bank charges", "borrowing cost"}},
	{Account: statement.IDDepreciation, Keywords: []string{"depreciation", "amortisation", "amortization"}},
	{Account: statement.IDImpairments, Keywords: []string{"impairment", "write off", "write-off"}},
	{Account: statement.IDForexLoss, Keywords: []string{"exchange loss", "forex", "foreign exchange", "currency loss"}},
	{Account: statement.IDUnrealisedGains, Keywords: []string{"unrealised gain", "unrealized gain", "fair value gain"}},
	{Account: statement.IDShareOfAssociateProfits, Keywords: []string{"share of profit", "associate", "joint venture"}},
	{Account: statement.IDRevaluationGains, Keywords: []string{"revaluation"}},
	{Account: statement.IDOtherIncome, Keywords: []string{"other income", "miscellaneous income", "sundry income"}},
	{Account: statement.IDProfitAfterTax, Keywords: []string{"net profit after tax", "profit after tax"}},
	{Account: statement.IDCorporateTax, Keywords: []string{"corporate tax", "tax provision", "income tax"}},
	{Account: statement.IDTotalComprehensiveIncome, Keywords: []string{"total comprehensive income", "comprehensive income"}},
	{Account: statement.IDProfitLossYear, Keywords: []string{"net profit", "profit for the year", "loss for the year", "net income"}},
	{Account: statement.IDGrossProfit, Keywords: []string{"gross profit", "gross margin"}},
}

// BalanceSheetRules is the ordered rule table for the financial position
// statement, total lines last so item rows claim their keywords first.
var BalanceSheetRules = []Rule{
	{Account: statement.IDTradeReceivables, Keywords: []string{"trade receivable", "accounts receivable", "receivables", "debtors"}},
	{Account: statement.IDCashAndBank, Keywords: []string{"cash", "bank balance", "bank account"}},
	{Account: statement.IDTradePayables, Keywords: []string{"trade payable", "accounts payable", "payables", "creditors"}},
	{Account: statement.IDAccruedExpenses, Keywords: []string{"accrued", "accrual"}},
	{Account: statement.IDVATPayable, Keywords: []string{"vat"}},
	{Account: statement.IDLoans, Keywords: []string{"loan", "borrowing", "finance lease"}},
	{Account: statement.IDShareholdersCurrent, Keywords: []string{"shareholders' current", "shareholder current", "partners' current", "director current"}},
	{Account: statement.IDShareCapital, Keywords: []string{"share capital", "paid-up capital", "paid up capital"}},
	{Account: statement.IDRetainedEarnings, Keywords: []string{"retained earnings", "accumulated profit", "accumulated loss"}},
	{Account: statement.IDPropertyPlantEquipment, Keywords: []string{"property", "plant", "equipment", "fixed asset", "vehicle", "furniture"}},
	{Account: statement.IDInventory, Keywords: []string{"inventory", "stock"}},
	{Account: statement.IDTotalNonCurrentAssets, Keywords: []string{"total non-current assets", "total non current assets"}},
	{Account: statement.IDTotalCurrentAssets, Keywords: []string{"total current assets"}},
	{Account: statement.IDTotalAssets, Keywords: []string{"total assets"}},
	{Account: statement.IDTotalLiabilities, Keywords: []string{"total liabilities"}},
	{Account: statement.IDTotalEquity, Keywords: []string{"total equity"}},
	{Account: statement.IDTotalEquityAndLiabilities, Keywords: []string{"total equity and liabilities", "equity and liabilities"}},
}

// RulesFor returns the rule table for a statement kind.
func RulesFor(kind statement.Kind) []Rule {
	if kind == statement.KindBalanceSheet {
		return BalanceSheetRules
	}
	return ProfitLossRules
}
