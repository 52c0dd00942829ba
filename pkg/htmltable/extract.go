package htmltable

import (
	"html"
	"regexp"
	"strings"
)

var (
	// brTag matches <br>, <br/>, <br /> and the truncated <br at end of cell.
	brTag = regexp.MustCompile(`(?i)<br\s*/?\s*>?`)

	// residualTag matches any leftover tag-like token, including comments and
	// tags truncated at the end of the cell. Whatever structure they carried
	// was not table structure, so they are dropped rather than treated as an
	// error.
	residualTag = regexp.MustCompile(`<!--[\s\S]*?(?:-->|\z)|</?[a-zA-Z][^<>]*(?:>|\z)`)

	// listLine matches a line that looks like a Markdown list item.
	listLine = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s`)
)

// extract parses one raw fragment into rows of normalized cell text. Rows
// with no cell markers at all are dropped; a fragment reduced to zero rows is
// elided by the caller.
func extract(fragment string) [][]string {
	lower := strings.ToLower(fragment)

	var rows [][]string
	for _, span := range rowSpans(lower) {
		cells := extractCells(fragment[span.start:span.end], lower[span.start:span.end])
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}

type span struct {
	start, end int
}

// rowSpans returns the candidate row spans of the fragment: one per <tr>
// marker, each running to the next <tr> or the end of the fragment. Content
// before the first <tr> is included as a candidate too, so tables whose rows
// lost their <tr> markers still yield their cells.
func rowSpans(lower string) []span {
	starts := markerIndexes(lower, "<tr")

	var spans []span
	if len(starts) == 0 || starts[0] > 0 {
		limit := len(lower)
		if len(starts) > 0 {
			limit = starts[0]
		}
		spans = append(spans, span{0, limit})
	}
	for i, start := range starts {
		end := len(lower)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		spans = append(spans, span{start, end})
	}
	return spans
}

// markerIndexes returns every tag-boundary occurrence of marker in lower.
func markerIndexes(lower, marker string) []int {
	var indexes []int
	pos := 0
	for {
		idx := indexMarker(lower, pos, marker)
		if idx < 0 {
			return indexes
		}
		indexes = append(indexes, idx)
		pos = idx + len(marker)
	}
}

// extractCells splits one row span on <td>/<th> boundaries and normalizes
// each cell's content. Both tags are treated identically; header semantics
// come from row position, not markup.
func extractCells(row, lower string) []string {
	starts := mergeSorted(markerIndexes(lower, "<td"), markerIndexes(lower, "<th"))
	if len(starts) == 0 {
		return nil
	}

	cells := make([]string, 0, len(starts))
	for i, start := range starts {
		end := len(row)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		cells = append(cells, normalizeCell(cellContent(row[start:end], lower[start:end])))
	}
	return cells
}

// mergeSorted merges two ascending index slices into one ascending slice.
func mergeSorted(a, b []int) []int {
	merged := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] < b[j] {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	return append(merged, b[j:]...)
}

// cellContent strips the opening tag from a cell span and cuts the content at
// its closing tag when one is present. A missing '>' on the opening tag or a
// missing closing tag both degrade to taking what text is there.
func cellContent(cell, lower string) string {
	// Skip past the opening <td ...> / <th ...>. When the '>' never arrives
	// before the next '<', the tag is truncated; content starts after the
	// marker and the residual-tag pass cleans up what is left.
	start := len("<td") // same length as "<th"
	for i := start; i < len(cell); i++ {
		if cell[i] == '>' {
			start = i + 1
			break
		}
		if cell[i] == '<' {
			break
		}
	}

	end := len(cell)
	for _, closer := range []string{"</td", "</th", "</tr", closeMarker} {
		if idx := indexMarker(lower, start, closer); idx >= 0 && idx < end {
			end = idx
		}
	}
	if start > end {
		return ""
	}
	return cell[start:end]
}

// normalizeCell produces the final Markdown-safe cell text: tags stripped,
// entities decoded, whitespace collapsed, pipes escaped, and line breaks
// reduced to either a space or a literal <br> so no raw newline survives.
func normalizeCell(raw string) string {
	hadBreakTag := brTag.MatchString(raw)

	text := brTag.ReplaceAllString(raw, "\n")
	text = residualTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	lines := splitLines(text)

	// Explicit <br> tags always keep their break. Literal newlines are
	// treated as source formatting and collapse to a space, unless the lines
	// read as a list, which would be destroyed by joining.
	joiner := " "
	if hadBreakTag || looksLikeList(lines) {
		joiner = "<br>"
	}

	joined := strings.Join(lines, joiner)
	return strings.ReplaceAll(joined, "|", `\|`)
}

// splitLines splits on newlines, collapses interior whitespace runs to single
// spaces, and drops lines that are empty after trimming.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, strings.Join(fields, " "))
	}
	return lines
}

// looksLikeList reports whether the lines form a list block: at least two
// lines carrying list-item markers.
func looksLikeList(lines []string) bool {
	count := 0
	for _, line := range lines {
		if listLine.MatchString(line) {
			count++
		}
	}
	return count >= 2
}
