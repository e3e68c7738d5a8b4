package extract

import (
	"encoding/json"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// Document is the parsed envelope of one extraction-service response. Sections
// stay loosely typed; nothing in them is contractually stable.
type Document struct {
	ComprehensiveIncome map[string]any
	FinancialPosition   map[string]any
}

// Section key aliases observed across extraction service versions.
var (
	incomeKeys   = []string{"statementOfComprehensiveIncome", "statement_of_comprehensive_income", "profitAndLoss", "incomeStatement"}
	positionKeys = []string{"statementOfFinancialPosition", "statement_of_financial_position", "balanceSheet"}
)

// ParseDocument decodes raw extraction output. Malformed JSON is repaired
// before unmarshalling; a payload that still cannot be decoded yields an
// empty document rather than an error, per the engine's degrade-to-absent rule.
func ParseDocument(raw []byte) Document {
	var doc Document
	if len(raw) == 0 {
		return doc
	}
	payload := raw
	var root map[string]any
	if err := json.Unmarshal(payload, &root); err != nil {
		repaired, repairErr := jsonrepair.RepairJSON(string(raw))
		if repairErr != nil {
			return doc
		}
		if err := json.Unmarshal([]byte(repaired), &root); err != nil {
			return doc
		}
	}
	doc.ComprehensiveIncome = section(root, incomeKeys)
	doc.FinancialPosition = section(root, positionKeys)
	return doc
}

func section(root map[string]any, keys []string) map[string]any {
	for _, key := range keys {
		if raw, ok := root[key]; ok {
			if m, ok := raw.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

// Records pulls the line-item rows out of a section, probing the known array
// keys. Non-map entries are skipped.
func Records(sect map[string]any) []map[string]any {
	if sect == nil {
		return nil
	}
	for _, key := range []string{"items", "rows", "lineItems", "line_items", "entries"} {
		raw, ok := sect[key]
		if !ok {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			continue
		}
		records := make([]map[string]any, 0, len(list))
		for _, entry := range list {
			if m, ok := entry.(map[string]any); ok {
				records = append(records, m)
			}
		}
		return records
	}
	return nil
}

// Field reads a named top-level figure from a section, such as "revenue" or
// "costOfSales", trying camelCase and snake_case spellings.
func Field(sect map[string]any, names ...string) (float64, bool) {
	if sect == nil {
		return 0, false
	}
	for _, name := range names {
		if raw, ok := sect[name]; ok {
			switch v := raw.(type) {
			case map[string]any:
				if amt, ok := Amount(v, PeriodCurrent); ok {
					return amt, true
				}
			default:
				return Coerce(raw), true
			}
		}
	}
	return 0, false
}

// PeriodField reads a named figure for a specific period. Scalar values count
// for the current period only; map values resolve through Amount.
func PeriodField(sect map[string]any, period Period, names ...string) (float64, bool) {
	if sect == nil {
		return 0, false
	}
	for _, name := range names {
		raw, ok := sect[name]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case map[string]any:
			return Amount(v, period)
		default:
			if period == PeriodCurrent {
				return Coerce(raw), true
			}
			return 0, true
		}
	}
	return 0, false
}
