package diff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCompare_ReplacedMiddleLine(t *testing.T) {
	res := Compare("line1\nline2\nline3", "line1\nlineX\nline3")

	want := []Segment{
		{Type: Unchanged, Content: "line1\n"},
		{Type: Removed, Content: "line2\n"},
		{Type: Added, Content: "lineX\n"},
		{Type: Unchanged, Content: "line3"},
	}
	if d := cmp.Diff(want, res.Segments); d != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, Stats{Additions: 1, Deletions: 1, Unchanged: 2}, res.Stats)
}

func TestCompare_IdenticalInputs(t *testing.T) {
	const text = "alpha\nbeta\ngamma\n"

	res := Compare(text, text)

	want := []Segment{{Type: Unchanged, Content: text}}
	if d := cmp.Diff(want, res.Segments); d != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", d)
	}
	// Trailing newline does not produce a countable fourth line.
	assert.Equal(t, Stats{Additions: 0, Deletions: 0, Unchanged: 3}, res.Stats)
}

func TestCompare_EmptyOld(t *testing.T) {
	res := Compare("", "a\nb\n")

	want := []Segment{{Type: Added, Content: "a\nb\n"}}
	if d := cmp.Diff(want, res.Segments); d != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, Stats{Additions: 2}, res.Stats)
}

func TestCompare_EmptyNew(t *testing.T) {
	res := Compare("a\nb\n", "")

	want := []Segment{{Type: Removed, Content: "a\nb\n"}}
	if d := cmp.Diff(want, res.Segments); d != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, Stats{Deletions: 2}, res.Stats)
}

func TestCompare_BothEmpty(t *testing.T) {
	res := Compare("", "")

	assert.Empty(t, res.Segments)
	assert.Equal(t, Stats{}, res.Stats)
}

func TestCompare_ReconstructsBothInputs(t *testing.T) {
	pairs := []struct {
		name     string
		old, new string
	}{
		{"replace middle", "line1\nline2\nline3", "line1\nlineX\nline3"},
		{"append at end", "a\nb\n", "a\nb\nc\n"},
		{"prepend", "b\nc\n", "a\nb\nc\n"},
		{"delete all but one", "a\nb\nc\nd\n", "c\n"},
		{"disjoint", "x\ny\nz\n", "p\nq\n"},
		{"no trailing newline", "one\ntwo", "one\ntwo\nthree"},
		{"blank lines", "a\n\n\nb\n", "a\n\nb\n"},
		{"interleaved", "a\nb\nc\nd\ne\n", "a\nc\nx\ne\n"},
		{"old empty", "", "whole\nnew\n"},
		{"new empty", "whole\nold\n", ""},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			res := Compare(tt.old, tt.new)

			var oldRebuilt, newRebuilt strings.Builder
			for _, seg := range res.Segments {
				if seg.Type != Added {
					oldRebuilt.WriteString(seg.Content)
				}
				if seg.Type != Removed {
					newRebuilt.WriteString(seg.Content)
				}
			}
			assert.Equal(t, tt.old, oldRebuilt.String(), "old text must be reconstructable")
			assert.Equal(t, tt.new, newRebuilt.String(), "new text must be reconstructable")
		})
	}
}

func TestCompare_SegmentsAreMaximalRuns(t *testing.T) {
	res := Compare("a\nb\nc\n", "a\nx\ny\nc\n")

	for i := 1; i < len(res.Segments); i++ {
		assert.NotEqual(t, res.Segments[i-1].Type, res.Segments[i].Type,
			"adjacent segments must differ in type")
	}
}

func TestCompare_CommonEndsStayUnchanged(t *testing.T) {
	// Multiple minimal scripts exist here; the leading and trailing runs
	// must stay matched so the change is reported in the middle.
	res := Compare("keep\nold\nkeep\n", "keep\nnew\nkeep\n")

	want := []Segment{
		{Type: Unchanged, Content: "keep\n"},
		{Type: Removed, Content: "old\n"},
		{Type: Added, Content: "new\n"},
		{Type: Unchanged, Content: "keep\n"},
	}
	if d := cmp.Diff(want, res.Segments); d != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", d)
	}
}

func TestCompare_StatsSkipBlankLines(t *testing.T) {
	res := Compare("", "text\n\n\nmore\n")

	// Four lines added, two of them blank.
	assert.Equal(t, Stats{Additions: 2}, res.Stats)
	assert.Equal(t, []Segment{{Type: Added, Content: "text\n\n\nmore\n"}}, res.Segments)
}

func TestCompare_InsertionKeepsPositionalOrder(t *testing.T) {
	res := Compare("a\nc\n", "a\nb\nc\n")

	want := []Segment{
		{Type: Unchanged, Content: "a\n"},
		{Type: Added, Content: "b\n"},
		{Type: Unchanged, Content: "c\n"},
	}
	if d := cmp.Diff(want, res.Segments); d != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, Stats{Additions: 1, Unchanged: 2}, res.Stats)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
		{"\n\n", []string{"\n", "\n"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitLines(tt.in), "input %q", tt.in)
	}
}
