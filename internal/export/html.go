package export

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// grouped renders a whole-AED amount with thousands separators, parenthesised
// when negative, per statement presentation convention.
func grouped(v float64) string {
	if v < 0 {
		return printer.Sprintf("(%d)", int64(-v))
	}
	return printer.Sprintf("%d", int64(v))
}

// RenderStatementHTML produces the printable statement document handed to
// Gotenberg.
func RenderStatementHTML(title, clientName string, taxYear int, rows []StatementRow, notes []NoteRow) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:Helvetica,Arial,sans-serif;font-size:12px;margin:32px}")
	b.WriteString("h1{font-size:18px}h2{font-size:14px;margin-top:24px}")
	b.WriteString("table{width:100%;border-collapse:collapse}td,th{padding:4px 8px;text-align:right}")
	b.WriteString("td:first-child,th:first-child{text-align:left}")
	b.WriteString("tr.total td{border-top:1px solid #333;font-weight:bold}")
	b.WriteString("tr.grand_total td{border-top:3px double #333;font-weight:bold}")
	b.WriteString("tr.header td,tr.subheader td{font-weight:bold;text-align:left}")
	b.WriteString("</style></head><body>")
	fmt.Fprintf(&b, "<h1>%s</h1><p>%s — FY %d (amounts in AED)</p>", html.EscapeString(title), html.EscapeString(clientName), taxYear)

	b.WriteString("<table><tr><th>Line Item</th><th>Current Year</th><th>Previous Year</th></tr>")
	for _, row := range rows {
		switch row.Type {
		case "header", "subheader":
			fmt.Fprintf(&b, "<tr class=\"%s\"><td colspan=\"3\">%s</td></tr>", row.Type, html.EscapeString(row.Label))
		default:
			fmt.Fprintf(&b, "<tr class=\"%s\"><td>%s</td><td>%s</td><td>%s</td></tr>",
				row.Type, html.EscapeString(row.Label), grouped(row.CurrentYear), grouped(row.PreviousYear))
		}
	}
	b.WriteString("</table>")

	if len(notes) > 0 {
		b.WriteString("<h2>Working Notes</h2>")
		b.WriteString("<table><tr><th>Linked Item</th><th>Description</th><th>Current Year</th><th>Previous Year</th></tr>")
		for _, note := range notes {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
				html.EscapeString(note.LinkedItem), html.EscapeString(note.Description),
				grouped(note.CurrentYear), grouped(note.PreviousYear))
		}
		b.WriteString("</table>")
	}

	b.WriteString("</body></html>")
	return b.String()
}
