// Package export flattens statement state into rows for CSV and PDF output.
package export

import "github.com/taxdesk-erp/taxdesk/internal/statement"

// StatementRow is one flat line of a rendered statement.
type StatementRow struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Type         string  `json:"type"`
	CurrentYear  float64 `json:"currentYear"`
	PreviousYear float64 `json:"previousYear"`
}

// NoteRow is one flat working-note line.
type NoteRow struct {
	LinkedItem   string  `json:"linkedItem"`
	Description  string  `json:"description"`
	CurrentYear  float64 `json:"currentYear"`
	PreviousYear float64 `json:"previousYear"`
}

// StatementRows flattens the state in template order. Header rows carry no
// amounts.
func StatementRows(st statement.State) []StatementRow {
	rows := make([]StatementRow, 0, len(st.Structure))
	for _, item := range st.Structure {
		row := StatementRow{ID: item.ID, Label: item.Label, Type: string(item.Type)}
		if item.Type != statement.TypeHeader && item.Type != statement.TypeSubheader {
			value := st.Value(item.ID)
			row.CurrentYear = value.CurrentYear
			row.PreviousYear = value.PreviousYear
		}
		rows = append(rows, row)
	}
	return rows
}

// NoteRows flattens working notes in template order so output is stable.
func NoteRows(st statement.State) []NoteRow {
	var rows []NoteRow
	for _, item := range st.Structure {
		for _, note := range st.Notes[item.ID] {
			rows = append(rows, NoteRow{
				LinkedItem:   item.ID,
				Description:  note.Description,
				CurrentYear:  note.CurrentYear,
				PreviousYear: note.PreviousYear,
			})
		}
	}
	return rows
}
