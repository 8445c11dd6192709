package core

import "strings"

// CSVHeader is the first line of every export.
const CSVHeader = "pin,timestamp,user_agent,ip,created_at"

// ExportCSV renders records as CSV, one row per record in input order.
//
// pin and user_agent are always quoted with embedded quotes doubled; the
// remaining fields are written as-is. Rows are separated by "\n" with no
// trailing newline.
func ExportCSV(records []Record) string {
	var b strings.Builder
	b.WriteString(CSVHeader)

	for _, rec := range records {
		b.WriteByte('\n')
		b.WriteString(quoteField(rec.PIN))
		b.WriteByte(',')
		b.WriteString(rec.Timestamp)
		b.WriteByte(',')
		b.WriteString(quoteField(rec.UserAgent))
		b.WriteByte(',')
		b.WriteString(rec.IP)
		b.WriteByte(',')
		b.WriteString(rec.CreatedAt)
	}

	return b.String()
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
