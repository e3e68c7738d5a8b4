package extract

import "testing"

func TestParseDocumentSectionAliases(t *testing.T) {
	raw := []byte(`{
		"statement_of_comprehensive_income": {"items": [{"description": "Revenue", "amount": 100}]},
		"balanceSheet": {"items": [{"description": "Inventory", "amount": 40}]}
	}`)
	doc := ParseDocument(raw)
	if doc.ComprehensiveIncome == nil {
		t.Fatalf("expected snake_case income section to resolve")
	}
	if doc.FinancialPosition == nil {
		t.Fatalf("expected balanceSheet alias to resolve")
	}
}

func TestParseDocumentRepairsMalformedJSON(t *testing.T) {
	raw := []byte(`{"statementOfComprehensiveIncome": {"items": [{"description": "Revenue", "amount": 100},]},}`)
	doc := ParseDocument(raw)
	if doc.ComprehensiveIncome == nil {
		t.Fatalf("expected repaired payload to decode")
	}
	records := Records(doc.ComprehensiveIncome)
	if len(records) != 1 {
		t.Fatalf("expected one record got %d", len(records))
	}
}

func TestParseDocumentDegradesToEmpty(t *testing.T) {
	doc := ParseDocument([]byte("definitely not a financial statement"))
	if doc.ComprehensiveIncome != nil || doc.FinancialPosition != nil {
		t.Fatalf("expected empty document for unusable payload")
	}
	empty := ParseDocument(nil)
	if empty.ComprehensiveIncome != nil {
		t.Fatalf("expected empty document for nil payload")
	}
}

func TestRecords(t *testing.T) {
	sect := map[string]any{
		"rows": []any{
			map[string]any{"description": "Revenue", "amount": 100.0},
			"stray string entry",
			map[string]any{"description": "Admin", "amount": 20.0},
		},
	}
	records := Records(sect)
	if len(records) != 2 {
		t.Fatalf("expected non-map entries skipped, got %d records", len(records))
	}
	if Records(nil) != nil {
		t.Fatalf("expected nil for nil section")
	}
}

func TestPeriodField(t *testing.T) {
	sect := map[string]any{
		"revenue":     100000.0,
		"costOfSales": map[string]any{"amount": 40000.0, "previousYearAmount": 35000.0},
	}
	if v, ok := PeriodField(sect, PeriodCurrent, "revenue"); !ok || v != 100000 {
		t.Fatalf("scalar current got (%.2f, %v)", v, ok)
	}
	// Scalars count for the current period only.
	if v, ok := PeriodField(sect, PeriodPrevious, "revenue"); !ok || v != 0 {
		t.Fatalf("scalar previous got (%.2f, %v)", v, ok)
	}
	if v, ok := PeriodField(sect, PeriodPrevious, "costOfSales"); !ok || v != 35000 {
		t.Fatalf("map previous got (%.2f, %v)", v, ok)
	}
	if _, ok := PeriodField(sect, PeriodCurrent, "grossProfit"); ok {
		t.Fatalf("expected absent for unknown field")
	}
}
