package statement

// Canonical account ids shared between classification, reconciliation, and export.
const (
	IDRevenue                  = "revenue"
	IDCostOfRevenue            = "cost_of_revenue"
	IDGrossProfit              = "gross_profit"
	IDOtherIncome              = "other_income"
	IDUnrealisedGains          = "unrealised_gains"
	IDShareOfAssociateProfits  = "share_of_associate_profits"
	IDRevaluationGains         = "revaluation_gains"
	IDImpairments              = "impairments"
	IDBusinessPromotion        = "business_promotion"
	IDForexLoss                = "forex_loss"
	IDSellingDistribution      = "selling_distribution"
	IDAdministrativeExpenses   = "administrative_expenses"
	IDFinanceCosts             = "finance_costs"
	IDDepreciation             = "depreciation_amortisation"
	IDProfitLossYear           = "profit_loss_year"
	IDCorporateTax             = "corporate_tax_provision"
	IDProfitAfterTax           = "profit_after_tax"
	IDTotalComprehensiveIncome = "total_comprehensive_income"

	IDPropertyPlantEquipment    = "property_plant_equipment"
	IDInventory                 = "inventory"
	IDTradeReceivables          = "trade_receivables"
	IDCashAndBank               = "cash_and_bank"
	IDTradePayables             = "trade_payables"
	IDAccruedExpenses           = "accrued_expenses"
	IDVATPayable                = "vat_payable"
	IDLoans                     = "loans"
	IDShareholdersCurrent       = "shareholders_current_account"
	IDShareCapital              = "share_capital"
	IDRetainedEarnings          = "retained_earnings"
	IDTotalNonCurrentAssets     = "total_non_current_assets"
	IDTotalCurrentAssets        = "total_current_assets"
	IDTotalAssets               = "total_assets"
	IDTotalLiabilities          = "total_liabilities"
	IDTotalEquity               = "total_equity"
	IDTotalEquityAndLiabilities = "total_equity_liabilities"
)

var profitLossTemplate = []LineItem{
	{ID: "pnl_header", Label: "Statement of Comprehensive Income", Type: TypeHeader},
	{ID: IDRevenue, Label: "Revenue", Type: TypeItem, Editable: true},
	{ID: IDCostOfRevenue, Label: "Cost of Revenue", Type: TypeItem, Editable: true},
	{ID: IDGrossProfit, Label: "Gross Profit", Type: TypeTotal},
	{ID: IDOtherIncome, Label: "Other Income", Type: TypeItem, Editable: true},
	{ID: IDUnrealisedGains, Label: "Unrealised Gains", Type: TypeItem, Editable: true},
	{ID: IDShareOfAssociateProfits, Label: "Share of Profit of Associates", Type: TypeItem, Editable: true},
	{ID: IDRevaluationGains, Label: "Revaluation Gains", Type: TypeItem, Editable: true},
	{ID: IDImpairments, Label: "Impairment Losses", Type: TypeItem, Editable: true},
	{ID: IDBusinessPromotion, Label: "Business Promotion Expenses", Type: TypeItem, Editable: true},
	{ID: IDForexLoss, Label: "Foreign Exchange Loss", Type: TypeItem, Editable: true},
	{ID: IDSellingDistribution, Label: "Selling and Distribution Expenses", Type: TypeItem, Editable: true},
	{ID: IDAdministrativeExpenses, Label: "Administrative and General Expenses", Type: TypeItem, Editable: true},
	{ID: IDFinanceCosts, Label: "Finance Costs", Type: TypeItem, Editable: true},
	{ID: IDDepreciation, Label: "Depreciation and Amortisation", Type: TypeItem, Editable: true},
	{ID: IDProfitLossYear, Label: "Profit / (Loss) for the Year", Type: TypeTotal},
	{ID: IDCorporateTax, Label: "Corporate Tax Provision", Type: TypeItem},
	{ID: IDProfitAfterTax, Label: "Profit After Tax", Type: TypeTotal},
	{ID: IDTotalComprehensiveIncome, Label: "Total Comprehensive Income", Type: TypeGrandTotal},
}

var balanceSheetTemplate = []LineItem{
	{ID: "bs_header", Label: "Statement of Financial Position", Type: TypeHeader},
	{ID: "assets_header", Label: "Assets", Type: TypeSubheader},
	{ID: IDPropertyPlantEquipment, Label: "Property, Plant and Equipment", Type: TypeItem, Editable: true},
	{ID: IDTotalNonCurrentAssets, Label: "Total Non-Current Assets", Type: TypeTotal},
	{ID: IDInventory, Label: "Inventory", Type: TypeItem, Editable: true},
	{ID: IDTradeReceivables, Label: "Trade and Other Receivables", Type: TypeItem, Editable: true},
	{ID: IDCashAndBank, Label: "Cash and Bank Balances", Type: TypeItem, Editable: true},
	{ID: IDTotalCurrentAssets, Label: "Total Current Assets", Type: TypeTotal},
	{ID: IDTotalAssets, Label: "Total Assets", Type: TypeGrandTotal},
	{ID: "liabilities_header", Label: "Liabilities", Type: TypeSubheader},
	{ID: IDTradePayables, Label: "Trade and Other Payables", Type: TypeItem, Editable: true},
	{ID: IDAccruedExpenses, Label: "Accrued Expenses", Type: TypeItem, Editable: true},
	{ID: IDVATPayable, Label: "VAT Payable", Type: TypeItem, Editable: true},
	{ID: IDLoans, Label: "Loans and Borrowings", Type: TypeItem, Editable: true},
	{ID: IDTotalLiabilities, Label: "Total Liabilities", Type: TypeTotal},
	{ID: "equity_header", Label: "Equity", Type: TypeSubheader},
	{ID: IDShareCapital, Label: "Share Capital", Type: TypeItem, Editable: true},
	{ID: IDShareholdersCurrent, Label: "Shareholders' Current Account", Type: TypeItem, Editable: true},
	{ID: IDRetainedEarnings, Label: "Retained Earnings", Type: TypeItem, Editable: true},
	{ID: IDTotalEquity, Label: "Total Equity", Type: TypeTotal},
	{ID: IDTotalEquityAndLiabilities, Label: "Total Equity and Liabilities", Type: TypeGrandTotal},
}

// Template returns a copy of the fixed ordered template for the statement kind.
func Template(kind Kind) []LineItem {
	var src []LineItem
	switch kind {
	case KindBalanceSheet:
		src = balanceSheetTemplate
	default:
		src = profitLossTemplate
	}
	out := make([]LineItem, len(src))
	copy(out, src)
	return out
}

// InsertAfter appends a user-defined line item immediately after the anchor id.
// Unknown anchors append at the end so a stale anchor never loses the row.
func InsertAfter(items []LineItem, anchorID string, item LineItem) []LineItem {
	item.Type = TypeItem
	item.Editable = true
	for i, existing := range items {
		if existing.ID == anchorID {
			out := make([]LineItem, 0, len(items)+1)
			out = append(out, items[:i+1]...)
			out = append(out, item)
			out = append(out, items[i+1:]...)
			return out
		}
	}
	return append(items, item)
}
