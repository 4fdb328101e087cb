// Package export serializes bookmark and station history data as CSV files
// for download.
package export

import (
	"bytes"
	"strings"
)

// WriteCSV renders rows as CSV text. Every field is wrapped in double quotes
// unconditionally, with embedded quotes doubled; that fixed quoting is part
// of the export format, which is why this does not use encoding/csv (it only
// quotes when required).
func WriteCSV(rows [][]string) []byte {
	var buf bytes.Buffer
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
			buf.WriteByte('"')
		}
	}
	return buf.Bytes()
}
