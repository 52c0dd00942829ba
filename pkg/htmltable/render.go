package htmltable

import "strings"

// render serializes extracted rows as a Markdown table. The first row is the
// header; every row is padded with empty cells to the widest row seen, so the
// output is always rectangular. Zero rows render as the empty string.
func render(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	var b strings.Builder
	writeRow(&b, rows[0], cols)
	b.WriteString("\n")
	writeSeparator(&b, cols)
	for _, row := range rows[1:] {
		b.WriteString("\n")
		writeRow(&b, row, cols)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, cols int) {
	b.WriteString("|")
	for i := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(" |")
	}
}

func writeSeparator(b *strings.Builder, cols int) {
	b.WriteString("|")
	for range cols {
		b.WriteString("---|")
	}
}
