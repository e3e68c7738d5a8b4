// Package extract pulls numeric amounts out of the loosely shaped JSON the
// document extraction service returns. All shape guessing lives here; callers
// get a plain amount plus a present/absent flag.
package extract

import (
	"strconv"
	"strings"
)

// Period selects which reporting year an amount is read for.
type Period string

const (
	// PeriodCurrent reads the current reporting year.
	PeriodCurrent Period = "current"
	// PeriodPrevious reads the prior reporting year.
	PeriodPrevious Period = "previous"
)

// Candidate field names probed in priority order per period. The service does
// not guarantee any of these; order reflects observed output frequency.
var (
	currentFields = []string{
		"amount", "currentYearAmount", "current_year_amount", "value",
		"currentYear", "current_year", "thisYear", "this_year", "year1", "cy",
	}
	previousFields = []string{
		"previousYearAmount", "previous_year_amount", "priorYear", "prior_year",
		"previousYear", "previous_year", "lastYear", "last_year", "year2", "py",
	}
	containerFields = []string{"amounts", "values", "periods", "years", "columns"}
)

// Amount resolves a single numeric value for the period from a record of
// unknown shape. The second return is false only when none of the known field
// names exist on the record at all; a present-but-zero field yields (0, true).
func Amount(record map[string]any, period Period) (float64, bool) {
	if len(record) == 0 {
		return 0, false
	}
	fields := currentFields
	if period == PeriodPrevious {
		fields = previousFields
	}

	seen := false
	for _, field := range fields {
		raw, ok := record[field]
		if !ok {
			continue
		}
		seen = true
		if v := Coerce(raw); v != 0 {
			return v, true
		}
	}

	// Period columns may sit one level down in a container value.
	for _, field := range containerFields {
		raw, ok := record[field]
		if !ok {
			continue
		}
		switch inner := raw.(type) {
		case map[string]any:
			if v, ok := Amount(inner, period); ok {
				seen = true
				if v != 0 {
					return v, true
				}
			}
		case []any:
			idx := 0
			if period == PeriodPrevious {
				idx = 1
			}
			if idx < len(inner) {
				seen = true
				if v := Coerce(inner[idx]); v != 0 {
					return v, true
				}
			}
		}
	}

	if seen {
		return 0, true
	}
	return 0, false
}

// Coerce converts an amount-like value to float64. Strings drop currency
// symbols and thousands separators and honour parenthesis negatives:
// "(1,234)" becomes -1234. Anything unparseable coerces to zero.
func Coerce(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseAmount(v)
	case bool:
		return 0
	default:
		return 0
	}
}

func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ',', r == ' ':
			// thousands separators
		default:
			// currency symbols and stray text drop out
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	if negative {
		v = -v
	}
	return v
}

// Description pulls the free-text label from a record, probing the usual keys.
func Description(record map[string]any) string {
	for _, key := range []string{"description", "label", "name", "particulars", "item"} {
		if raw, ok := record[key]; ok {
			if s, ok := raw.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
