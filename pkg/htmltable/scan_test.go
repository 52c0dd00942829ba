package htmltable

import (
	"strings"
	"testing"
)

func TestScan_CoversDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"no fragments", "plain text only"},
		{"single fragment", "a<table><tr><td>x</td></tr></table>b"},
		{"unterminated fragment", "a<table><tr><td>x"},
		{"adjacent fragments", "<table></table><table></table>"},
		{"open marker without bracket close", "<table border=1 <tr><td>x</td>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var rebuilt strings.Builder
			for _, seg := range scan(tt.doc) {
				rebuilt.WriteString(seg.text)
			}
			if rebuilt.String() != tt.doc {
				t.Errorf("segments do not cover document:\ngot  %q\nwant %q", rebuilt.String(), tt.doc)
			}
		})
	}
}

func TestScan_FragmentBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		doc           string
		wantFragments []string
	}{
		{
			name:          "close tag ends fragment",
			doc:           "x<table>body</table>y",
			wantFragments: []string{"<table>body</table>"},
		},
		{
			name:          "next open implicitly closes",
			doc:           "<table>first<table>second</table>",
			wantFragments: []string{"<table>first", "<table>second</table>"},
		},
		{
			name:          "end of document implicitly closes",
			doc:           "pre<table>dangling",
			wantFragments: []string{"<table>dangling"},
		},
		{
			name:          "case insensitive markers",
			doc:           "<TABLE>x</TaBlE>",
			wantFragments: []string{"<TABLE>x</TaBlE>"},
		},
		{
			name:          "close tag with attributes junk",
			doc:           "<table>x</table foo>rest",
			wantFragments: []string{"<table>x</table foo>"},
		},
		{
			name:          "tablex is not a marker",
			doc:           "<tablex>no</tablex>",
			wantFragments: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, seg := range scan(tt.doc) {
				if seg.fragment {
					got = append(got, seg.text)
				}
			}

			if len(got) != len(tt.wantFragments) {
				t.Fatalf("fragment count = %d, want %d (got %q)", len(got), len(tt.wantFragments), got)
			}
			for i := range got {
				if got[i] != tt.wantFragments[i] {
					t.Errorf("fragment[%d] = %q, want %q", i, got[i], tt.wantFragments[i])
				}
			}
		})
	}
}
