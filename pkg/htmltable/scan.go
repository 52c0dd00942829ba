package htmltable

import "strings"

// Structural markers recognized by the scanner, matched case-insensitively.
const (
	openMarker  = "<table"
	closeMarker = "</table"
)

// segment is one span of the source document: either untouched prose or a
// candidate table fragment. Segments are contiguous and cover the whole
// document in order.
type segment struct {
	text     string
	fragment bool
}

// scan splits the document into an ordered interleaving of prose spans and
// table fragment spans. Fragment boundaries are recovered when markup is
// incomplete: a fragment with no closing tag ends at the next opening marker
// or at the end of the document.
func scan(doc string) []segment {
	lower := strings.ToLower(doc)

	var segs []segment
	pos := 0
	for pos < len(doc) {
		open := indexMarker(lower, pos, openMarker)
		if open < 0 {
			segs = append(segs, segment{text: doc[pos:]})
			break
		}
		if open > pos {
			segs = append(segs, segment{text: doc[pos:open]})
		}
		end := fragmentEnd(lower, open)
		segs = append(segs, segment{text: doc[open:end], fragment: true})
		pos = end
	}
	return segs
}

// indexMarker returns the index of the next occurrence of marker at or after
// from. The character following the marker must terminate a tag name, so
// "<tablex" is not mistaken for an opening tag.
func indexMarker(lower string, from int, marker string) int {
	for from <= len(lower)-len(marker) {
		idx := strings.Index(lower[from:], marker)
		if idx < 0 {
			return -1
		}
		idx += from
		rest := idx + len(marker)
		if rest >= len(lower) || isNameEnd(lower[rest]) {
			return idx
		}
		from = rest
	}
	return -1
}

func isNameEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '>', '/':
		return true
	}
	return false
}

// fragmentEnd locates the end of the fragment opened at open: the end of the
// matching close tag, the next opening marker, or the end of the document,
// whichever comes first.
func fragmentEnd(lower string, open int) int {
	from := open + len(openMarker)

	closeAt := indexMarker(lower, from, closeMarker)
	nextOpen := indexMarker(lower, from, openMarker)

	switch {
	case closeAt >= 0 && (nextOpen < 0 || closeAt < nextOpen):
		return closeTagEnd(lower, closeAt)
	case nextOpen >= 0:
		return nextOpen
	default:
		return len(lower)
	}
}

// closeTagEnd consumes the close tag starting at idx through its '>'. A
// truncated close tag with no '>' before the next '<' ends right after the
// marker text.
func closeTagEnd(lower string, idx int) int {
	rest := idx + len(closeMarker)
	for i := rest; i < len(lower); i++ {
		switch lower[i] {
		case '>':
			return i + 1
		case '<':
			return rest
		}
	}
	return rest
}
