package reconcile

import (
	"github.com/taxdesk-erp/taxdesk/internal/classify"
	"github.com/taxdesk-erp/taxdesk/internal/extract"
	"github.com/taxdesk-erp/taxdesk/internal/fx"
	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

// Named-figure aliases for the independently sourced P&L triple.
var (
	revenueFields     = []string{"revenue", "totalRevenue", "total_revenue", "sales", "turnover"}
	costOfSalesFields = []string{"costOfSales", "cost_of_sales", "costOfRevenue", "cost_of_revenue", "cogs"}
	grossProfitFields = []string{"grossProfit", "gross_profit"}
)

// ApplyExtraction folds a fresh extraction section into the statement state.
// A dirty statement is left untouched unless force is set; force also resets
// the dirty flag, which is the only path back to pristine.
func ApplyExtraction(st statement.State, sect map[string]any, cfg fx.Config, force bool) statement.State {
	if st.Dirty && !force {
		return st
	}
	st.ResetDirty()

	buckets := classify.Classify(extract.Records(sect), classify.RulesFor(st.Kind))
	classify.Sanitize(buckets)
	st.Notes = convertNotes(buckets, cfg)

	if st.Kind == statement.KindProfitLoss {
		applyTriangulation(&st, sect, cfg)
	}

	Recompute(&st)
	return st
}

// EditLineItem applies a manual period-value edit. The statement goes dirty.
// An edit to a note-backed id clears its bucket so the typed value wins and
// the note-sum invariant holds.
func EditLineItem(st statement.State, id string, value statement.PeriodValue) statement.State {
	if st.HasNotes(id) {
		st.SetNotes(id, nil)
	}
	st.SetValue(id, value)
	st.MarkDirty()
	Recompute(&st)
	return st
}

// EditWorkingNotes replaces the working notes for an id and re-reconciles.
// The parent line item's total follows the note sums immediately.
func EditWorkingNotes(st statement.State, id string, notes []statement.WorkingNote) statement.State {
	st.SetNotes(id, notes)
	if !st.HasNotes(id) {
		st.SetValue(id, statement.PeriodValue{})
	}
	st.MarkDirty()
	Recompute(&st)
	return st
}

func convertNotes(buckets map[string][]statement.WorkingNote, cfg fx.Config) map[string][]statement.WorkingNote {
	out := make(map[string][]statement.WorkingNote, len(buckets))
	currency := cfg.Currency()
	for id, notes := range buckets {
		converted := make([]statement.WorkingNote, len(notes))
		for i, note := range notes {
			converted[i] = statement.WorkingNote{
				Description:    note.Description,
				CurrentYear:    cfg.ToAED(note.CurrentYear),
				PreviousYear:   cfg.ToAED(note.PreviousYear),
				OriginalAmount: note.CurrentYear,
				Currency:       currency,
			}
		}
		out[id] = converted
	}
	return out
}

// applyTriangulation reconciles the independently sourced revenue / cost /
// gross-profit figures, per year, and stores whichever of them is not already
// backed by working notes.
func applyTriangulation(st *statement.State, sect map[string]any, cfg fx.Config) {
	revC, costC, grossC := triple(sect, extract.PeriodCurrent, cfg)
	revP, costP, grossP := triple(sect, extract.PeriodPrevious, cfg)

	revC, costC, grossC = Triangulate(revC, costC, grossC)
	revP, costP, grossP = Triangulate(revP, costP, grossP)

	if !st.HasNotes(statement.IDRevenue) {
		st.SetValue(statement.IDRevenue, statement.PeriodValue{CurrentYear: revC, PreviousYear: revP})
	}
	if !st.HasNotes(statement.IDCostOfRevenue) {
		st.SetValue(statement.IDCostOfRevenue, statement.PeriodValue{CurrentYear: costC, PreviousYear: costP})
	}
	if !st.HasNotes(statement.IDGrossProfit) {
		st.SetValue(statement.IDGrossProfit, statement.PeriodValue{CurrentYear: grossC, PreviousYear: grossP})
	}
}

func triple(sect map[string]any, period extract.Period, cfg fx.Config) (float64, float64, float64) {
	revenue, _ := extract.PeriodField(sect, period, revenueFields...)
	cost, _ := extract.PeriodField(sect, period, costOfSalesFields...)
	gross, _ := extract.PeriodField(sect, period, grossProfitFields...)
	return cfg.ToAED(revenue), cfg.ToAED(cost), cfg.ToAED(gross)
}
