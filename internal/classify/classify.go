package classify

import (
	"fmt"
	"strings"

	"github.com/taxdesk-erp/taxdesk/internal/extract"
	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

// Classify buckets raw line-item records into canonical working notes using
// the given ordered rule table. Records with no description or with both
// period amounts at zero are skipped; records matching no rule are dropped.
// Multiple records rolling into one account accumulate rather than overwrite.
func Classify(records []map[string]any, rules []Rule) map[string][]statement.WorkingNote {
	buckets := make(map[string][]statement.WorkingNote)
	for _, record := range records {
		desc := extract.Description(record)
		if desc == "" {
			continue
		}
		current, _ := extract.Amount(record, extract.PeriodCurrent)
		previous, _ := extract.Amount(record, extract.PeriodPrevious)
		if current == 0 && previous == 0 {
			continue
		}
		account := match(desc, rules)
		if account == "" {
			continue
		}
		buckets[account] = append(buckets[account], statement.WorkingNote{
			Description:  desc,
			CurrentYear:  current,
			PreviousYear: previous,
		})
	}
	return buckets
}

func match(description string, rules []Rule) string {
	lowered := strings.ToLower(description)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Account
			}
		}
	}
	return ""
}

var costIndicators = []string{"cost of revenue", "cost of sales", "cost of goods", "cogs"}

// Sanitize re-homes rows misfiled under revenue whose description indicates
// cost of revenue, deduplicating against the cost bucket so repeated
// classification runs never accumulate copies.
func Sanitize(buckets map[string][]statement.WorkingNote) {
	revenueNotes, ok := buckets[statement.IDRevenue]
	if !ok {
		return
	}
	existing := make(map[string]bool, len(buckets[statement.IDCostOfRevenue]))
	for _, note := range buckets[statement.IDCostOfRevenue] {
		existing[dedupKey(note)] = true
	}

	kept := revenueNotes[:0]
	for _, note := range revenueNotes {
		if !isCostDescription(note.Description) {
			kept = append(kept, note)
			continue
		}
		key := dedupKey(note)
		if !existing[key] {
			buckets[statement.IDCostOfRevenue] = append(buckets[statement.IDCostOfRevenue], note)
			existing[key] = true
		}
	}
	if len(kept) == 0 {
		delete(buckets, statement.IDRevenue)
		return
	}
	buckets[statement.IDRevenue] = kept
}

func isCostDescription(description string) bool {
	lowered := strings.ToLower(description)
	for _, indicator := range costIndicators {
		if strings.Contains(lowered, indicator) {
			return true
		}
	}
	return false
}

func dedupKey(note statement.WorkingNote) string {
	return fmt.Sprintf("%s|%.2f|%.2f", strings.ToLower(note.Description), note.CurrentYear, note.PreviousYear)
}
