package statement

import (
	"encoding/json"
	"math"
)

// Kind identifies which financial statement a state belongs to.
type Kind string

const (
	// KindProfitLoss is the statement of comprehensive income.
	KindProfitLoss Kind = "PNL"
	// KindBalanceSheet is the statement of financial position.
	KindBalanceSheet Kind = "BS"
)

// ItemType enumerates the presentation role of a template line.
type ItemType string

const (
	TypeHeader     ItemType = "header"
	TypeSubheader  ItemType = "subheader"
	TypeItem       ItemType = "item"
	TypeTotal      ItemType = "total"
	TypeGrandTotal ItemType = "grand_total"
)

// LineItem is one canonical account entry in a statement template.
type LineItem struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     ItemType `json:"type"`
	Editable bool     `json:"isEditable"`
}

// PeriodValue holds the current and previous year amounts for a line item.
type PeriodValue struct {
	CurrentYear  float64 `json:"currentYear"`
	PreviousYear float64 `json:"previousYear"`
}

// WorkingNote is one breakdown row backing a canonical line item.
type WorkingNote struct {
	Description    string  `json:"description"`
	CurrentYear    float64 `json:"currentYearAmount"`
	PreviousYear   float64 `json:"previousYearAmount"`
	OriginalAmount float64 `json:"originalAmount,omitempty"`
	Currency       string  `json:"currency,omitempty"`
}

type workingNoteJSON struct {
	Description    string   `json:"description"`
	Amount         *float64 `json:"amount,omitempty"`
	CurrentYear    *float64 `json:"currentYearAmount,omitempty"`
	PreviousYear   float64  `json:"previousYearAmount"`
	OriginalAmount float64  `json:"originalAmount,omitempty"`
	Currency       string   `json:"currency,omitempty"`
}

// MarshalJSON emits amount as an alias of currentYearAmount; consumers of the
// persisted blobs read either key.
func (n WorkingNote) MarshalJSON() ([]byte, error) {
	current := n.CurrentYear
	return json.Marshal(workingNoteJSON{
		Description:    n.Description,
		Amount:         &current,
		CurrentYear:    &current,
		PreviousYear:   n.PreviousYear,
		OriginalAmount: n.OriginalAmount,
		Currency:       n.Currency,
	})
}

// UnmarshalJSON accepts payloads carrying currentYearAmount, the amount
// alias, or both; currentYearAmount wins when they disagree.
func (n *WorkingNote) UnmarshalJSON(data []byte) error {
	var raw workingNoteJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	current := 0.0
	switch {
	case raw.CurrentYear != nil:
		current = *raw.CurrentYear
	case raw.Amount != nil:
		current = *raw.Amount
	}
	*n = WorkingNote{
		Description:    raw.Description,
		CurrentYear:    current,
		PreviousYear:   raw.PreviousYear,
		OriginalAmount: raw.OriginalAmount,
		Currency:       raw.Currency,
	}
	return nil
}

// State is the full in-memory representation of one statement.
type State struct {
	Kind      Kind                     `json:"kind"`
	Structure []LineItem               `json:"structure"`
	Values    map[string]PeriodValue   `json:"values"`
	Notes     map[string][]WorkingNote `json:"workingNotes"`
	Dirty     bool                     `json:"dirty"`
}

// NewState builds a pristine state from the template for the given kind.
func NewState(kind Kind) State {
	return State{
		Kind:      kind,
		Structure: Template(kind),
		Values:    make(map[string]PeriodValue),
		Notes:     make(map[string][]WorkingNote),
	}
}

// MarkDirty records a manual edit. The transition is one-way; only a fresh
// extraction run resets it via ResetDirty.
func (s *State) MarkDirty() {
	s.Dirty = true
}

// ResetDirty clears the manual-edit flag ahead of a fresh extraction apply.
func (s *State) ResetDirty() {
	s.Dirty = false
}

// Value returns the stored period value for an id, zero when absent.
func (s *State) Value(id string) PeriodValue {
	return s.Values[id]
}

// SetValue stores a period value, coercing NaN to zero.
func (s *State) SetValue(id string, v PeriodValue) {
	if s.Values == nil {
		s.Values = make(map[string]PeriodValue)
	}
	s.Values[id] = PeriodValue{
		CurrentYear:  safe(v.CurrentYear),
		PreviousYear: safe(v.PreviousYear),
	}
}

// NoteSum totals the working notes for an id per year.
func (s *State) NoteSum(id string) PeriodValue {
	var total PeriodValue
	for _, note := range s.Notes[id] {
		total.CurrentYear += safe(note.CurrentYear)
		total.PreviousYear += safe(note.PreviousYear)
	}
	return total
}

// HasNotes reports whether any working notes back the given id.
func (s *State) HasNotes(id string) bool {
	return len(s.Notes[id]) > 0
}

// SetNotes replaces the working notes for an id. An empty list clears the bucket.
func (s *State) SetNotes(id string, notes []WorkingNote) {
	if s.Notes == nil {
		s.Notes = make(map[string][]WorkingNote)
	}
	if len(notes) == 0 {
		delete(s.Notes, id)
		return
	}
	s.Notes[id] = notes
}

func safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
