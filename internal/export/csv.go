package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteStatementCSV serialises statement rows to CSV.
func WriteStatementCSV(w io.Writer, rows []StatementRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"ID", "Label", "Current Year", "Previous Year"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.ID,
			row.Label,
			formatFloat(row.CurrentYear),
			formatFloat(row.PreviousYear),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteWorkingNotesCSV serialises working-note rows to CSV.
func WriteWorkingNotesCSV(w io.Writer, rows []NoteRow) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Linked Item", "Description", "Current Year", "Previous Year"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write([]string{
			row.LinkedItem,
			row.Description,
			formatFloat(row.CurrentYear),
			formatFloat(row.PreviousYear),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
