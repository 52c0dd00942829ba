package htmltable

import (
	"errors"
	"strings"
)

// ErrInvalidInput is returned when the input is not text at all. Malformed
// markup is never an error; it is handled by the recovery rules.
var ErrInvalidInput = errors.New("htmltable: input is not text")

// Convert replaces every recognizable HTML table fragment in document with an
// equivalent Markdown table. All other text passes through unchanged, in
// order. The function never fails: fragments that cannot be parsed into rows
// are removed, and broken markup is recovered per the package rules.
func Convert(document string) string {
	segs := scan(document)

	var b strings.Builder
	b.Grow(len(document))

	endsWithNewline := true
	for i, seg := range segs {
		if !seg.fragment {
			b.WriteString(seg.text)
			if len(seg.text) > 0 {
				endsWithNewline = strings.HasSuffix(seg.text, "\n")
			}
			continue
		}

		table := render(extract(seg.text))
		if table == "" {
			// Fragment with no rows: the span vanishes.
			continue
		}

		// Table rows must start at column zero, and the table must be
		// separated from following prose by a blank line.
		if !endsWithNewline {
			b.WriteString("\n")
		}
		b.WriteString(table)
		if i < len(segs)-1 {
			b.WriteString("\n")
			if !strings.HasPrefix(segs[i+1].text, "\n") {
				b.WriteString("\n")
			}
		}
		endsWithNewline = i < len(segs)-1
	}
	return b.String()
}

// ConvertBytes converts document content held as a byte slice. A nil slice is
// the non-text case and yields ErrInvalidInput; any actual content, however
// malformed, converts successfully.
func ConvertBytes(document []byte) ([]byte, error) {
	if document == nil {
		return nil, ErrInvalidInput
	}
	return []byte(Convert(string(document))), nil
}
