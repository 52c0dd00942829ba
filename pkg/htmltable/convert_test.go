package htmltable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_BasicTable(t *testing.T) {
	t.Parallel()

	input := "<table><tr><td>Step</td><td>Expected Result</td></tr>" +
		"<tr><td>Login</td><td>User is logged in</td></tr>" +
		"<tr><td>Logout</td><td>Session ends</td></tr></table>"

	want := "| Step | Expected Result |\n" +
		"|---|---|\n" +
		"| Login | User is logged in |\n" +
		"| Logout | Session ends |"

	assert.Equal(t, want, Convert(input))
}

func TestConvert_NoTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"plain prose", "Some migrated description with no markup at all."},
		{"existing markdown table", "| a | b |\n|---|---|\n| 1 | 2 |\n"},
		{"angle brackets but no table", "if x < y then <b>bold</b>"},
		{"table-prefixed word", "<tablex> is not a table tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.input, Convert(tt.input), "non-table input must pass through unchanged")
		})
	}
}

func TestConvert_MalformedSingleCell(t *testing.T) {
	t.Parallel()

	got := Convert("<table><tr><td>Only one cell")
	assert.Equal(t, "| Only one cell |\n|---|", got)
}

func TestConvert_EmptyTableElided(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare empty table", "<table></table>", ""},
		{"empty table between prose", "before <table></table>after", "before after"},
		{"empty table with whitespace rows", "<table>  \n </table>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Convert(tt.input))
		})
	}
}

func TestConvert_HeaderOnlyTable(t *testing.T) {
	t.Parallel()

	got := Convert("<table><tr><th>Name</th><th>Value</th></tr></table>")
	assert.Equal(t, "| Name | Value |\n|---|---|", got)
}

func TestConvert_OrderPreservation(t *testing.T) {
	t.Parallel()

	input := "intro\n" +
		"<table><tr><td>a</td></tr></table>" +
		"middle\n" +
		"<table><tr><td>b</td></tr></table>" +
		"outro"

	got := Convert(input)

	wantOrder := []string{"intro", "| a |", "middle", "| b |", "outro"}
	pos := -1
	for _, part := range wantOrder {
		idx := strings.Index(got, part)
		require.Greaterf(t, idx, pos, "%q out of order in output:\n%s", part, got)
		pos = idx
	}
}

func TestConvert_BlankLineAfterTable(t *testing.T) {
	t.Parallel()

	got := Convert("<table><tr><td>x</td></tr></table>trailing prose")
	assert.Equal(t, "| x |\n|---|\n\ntrailing prose", got)
}

func TestConvert_TableStartsOnOwnLine(t *testing.T) {
	t.Parallel()

	got := Convert("See below:<table><tr><td>x</td></tr></table>")
	assert.Equal(t, "See below:\n| x |\n|---|", got)
}

func TestConvert_PipeEscaping(t *testing.T) {
	t.Parallel()

	got := Convert("<table><tr><td>a|b</td><td>plain</td></tr></table>")

	assert.Contains(t, got, `a\|b`)

	// The escaped pipe must not create a spurious column: every line has the
	// same number of unescaped delimiters.
	for _, line := range strings.Split(got, "\n") {
		count := strings.Count(line, "|") - strings.Count(line, `\|`)
		assert.Equalf(t, 3, count, "line %q has wrong delimiter count", line)
	}
}

func TestConvert_Rectangularity(t *testing.T) {
	t.Parallel()

	// Second row has three cells, first and third have fewer; every rendered
	// row must have the maximum column count.
	input := "<table>" +
		"<tr><td>h1</td><td>h2</td></tr>" +
		"<tr><td>a</td><td>b</td><td>c</td></tr>" +
		"<tr><td>only</td></tr>" +
		"</table>"

	got := Convert(input)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equalf(t, 4, strings.Count(line, "|"), "line %q is not rectangular", line)
	}
	assert.Equal(t, "|---|---|---|", lines[1])
	assert.Equal(t, "| only |  |  |", lines[3])
}

func TestConvert_MultiLineCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "br tag becomes inline br",
			input: "<table><tr><td>line one<br>line two</td></tr></table>",
			want:  "| line one<br>line two |\n|---|",
		},
		{
			name:  "self-closing br",
			input: "<table><tr><td>one<br/>two<br />three</td></tr></table>",
			want:  "| one<br>two<br>three |\n|---|",
		},
		{
			name:  "literal newline collapses to space",
			input: "<table><tr><td>wrapped\nprose text</td></tr></table>",
			want:  "| wrapped prose text |\n|---|",
		},
		{
			name:  "literal newlines forming a list keep breaks",
			input: "<table><tr><td>- first\n- second</td></tr></table>",
			want:  "| - first<br>- second |\n|---|",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Convert(tt.input)
			assert.Equal(t, tt.want, got)
			// No raw newline inside any table row.
			for _, line := range strings.Split(got, "\n") {
				assert.True(t, strings.HasPrefix(line, "|"), "row %q broken by raw newline", line)
			}
		})
	}
}

func TestConvert_UnterminatedTableClosedAtNextOpen(t *testing.T) {
	t.Parallel()

	input := "<table><tr><td>first</td></tr>" +
		"<table><tr><td>second</td></tr></table>"

	got := Convert(input)

	assert.Contains(t, got, "| first |")
	assert.Contains(t, got, "| second |")
	assert.Less(t, strings.Index(got, "| first |"), strings.Index(got, "| second |"))
}

func TestConvert_StrayMarkupStripped(t *testing.T) {
	t.Parallel()

	input := "<table><tr><td><b>bold</b> text</td><td>mid<i>dle</td></tr></table>"
	got := Convert(input)

	assert.Equal(t, "| bold text | middle |\n|---|---|", got)
}

func TestConvert_EntitiesDecoded(t *testing.T) {
	t.Parallel()

	got := Convert("<table><tr><td>a &amp; b</td><td>x&nbsp;&nbsp;y</td></tr></table>")
	assert.Equal(t, "| a & b | x y |\n|---|---|", got)
}

func TestConvert_UppercaseAndAttributedTags(t *testing.T) {
	t.Parallel()

	input := `<TABLE border="1"><TR class="row"><TD align="left">A</TD><TH>B</TH></TR></TABLE>`
	got := Convert(input)

	assert.Equal(t, "| A | B |\n|---|---|", got)
}

func TestConvert_RowsWithoutTrMarkers(t *testing.T) {
	t.Parallel()

	// Cells with no <tr> at all still come out as a single row.
	got := Convert("<table><td>a</td><td>b</td></table>")
	assert.Equal(t, "| a | b |\n|---|---|", got)
}

func TestConvert_Deterministic(t *testing.T) {
	t.Parallel()

	input := "x<table><tr><td>1</td></tr></table>y<table><tr><td>2</td></tr>"
	first := Convert(input)
	for range 5 {
		assert.Equal(t, first, Convert(input))
	}
}

func TestConvertBytes(t *testing.T) {
	t.Parallel()

	t.Run("nil input", func(t *testing.T) {
		t.Parallel()
		_, err := ConvertBytes(nil)
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		got, err := ConvertBytes([]byte{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("converts content", func(t *testing.T) {
		t.Parallel()
		got, err := ConvertBytes([]byte("<table><tr><td>x</td></tr></table>"))
		require.NoError(t, err)
		assert.Equal(t, "| x |\n|---|", string(got))
	})
}
