package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/taxdesk-erp/taxdesk/internal/statement"
)

func TestStatementRows(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st.SetValue(statement.IDRevenue, statement.PeriodValue{CurrentYear: 100000, PreviousYear: 90000})

	rows := StatementRows(st)
	if len(rows) != len(st.Structure) {
		t.Fatalf("expected one row per template line, got %d", len(rows))
	}
	if rows[0].Type != string(statement.TypeHeader) || rows[0].CurrentYear != 0 {
		t.Fatalf("header rows carry no amounts, got %+v", rows[0])
	}

	var revenue StatementRow
	for _, row := range rows {
		if row.ID == statement.IDRevenue {
			revenue = row
		}
	}
	if revenue.CurrentYear != 100000 || revenue.PreviousYear != 90000 {
		t.Fatalf("unexpected revenue row %+v", revenue)
	}
}

func TestNoteRowsFollowTemplateOrder(t *testing.T) {
	st := statement.NewState(statement.KindProfitLoss)
	st.SetNotes(statement.IDAdministrativeExpenses, []statement.WorkingNote{{Description: "Rent", CurrentYear: 100}})
	st.SetNotes(statement.IDRevenue, []statement.WorkingNote{{Description: "Contract income", CurrentYear: 500}})

	rows := NoteRows(st)
	if len(rows) != 2 {
		t.Fatalf("expected two note rows got %d", len(rows))
	}
	if rows[0].LinkedItem != statement.IDRevenue {
		t.Fatalf("revenue notes come first in template order, got %s", rows[0].LinkedItem)
	}
}

func TestWriteStatementCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []StatementRow{
		{ID: "revenue", Label: "Revenue", Type: "item", CurrentYear: 1234.5, PreviousYear: 1000},
	}
	if err := WriteStatementCSV(&buf, rows); err != nil {
		t.Fatalf("WriteStatementCSV returned error: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "ID,Label,Current Year,Previous Year" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "revenue,Revenue,1234.50,1000.00" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestWriteWorkingNotesCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := []NoteRow{
		{LinkedItem: "revenue", Description: "Contract income", CurrentYear: 500, PreviousYear: 450},
	}
	if err := WriteWorkingNotesCSV(&buf, rows); err != nil {
		t.Fatalf("WriteWorkingNotesCSV returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "revenue,Contract income,500.00,450.00") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
