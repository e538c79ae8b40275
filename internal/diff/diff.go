// Package diff implements a line-oriented text diff based on Myers'
// O(ND) greedy LCS algorithm. It is pure computation: no I/O, no shared
// state, safe for concurrent use on disjoint inputs.
package diff

import "strings"

// SegmentType classifies a run of lines in a diff.
type SegmentType string

const (
	Unchanged SegmentType = "unchanged"
	Added     SegmentType = "added"
	Removed   SegmentType = "removed"
)

// Segment is a maximal run of consecutive lines sharing one classification.
// Content keeps the original line terminators, so concatenating the
// unchanged+removed segments reproduces the old text exactly, and
// unchanged+added reproduces the new text.
type Segment struct {
	Type    SegmentType `json:"type"`
	Content string      `json:"content"`
}

// Stats counts non-empty lines per classification. A line is non-empty if it
// contains at least one character besides its terminator; the phantom empty
// line after a trailing newline is never counted.
type Stats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Unchanged int `json:"unchanged"`
}

// Result is a structured line diff between two texts.
type Result struct {
	Segments []Segment `json:"segments"`
	Stats    Stats     `json:"stats"`
}

type op int8

const (
	opEqual op = iota
	opDelete
	opInsert
)

// Compare computes a minimal line-level edit script between oldText and
// newText and groups it into segments in strict positional order.
//
// Among the minimal scripts, the common prefix and suffix are always kept
// unchanged and diagonal runs are followed as far as possible, which keeps
// small localized changes together instead of scattering them.
func Compare(oldText, newText string) Result {
	a := splitLines(oldText)
	b := splitLines(newText)

	// Match greedily at both ends first; Myers only runs on the middle.
	prefix := commonPrefix(a, b)
	suffix := commonSuffix(a[prefix:], b[prefix:])

	script := make([]op, 0, len(a)+len(b))
	for i := 0; i < prefix; i++ {
		script = append(script, opEqual)
	}
	script = append(script, myers(a[prefix:len(a)-suffix], b[prefix:len(b)-suffix])...)
	for i := 0; i < suffix; i++ {
		script = append(script, opEqual)
	}

	return group(script, a, b)
}

// splitLines splits on "\n" keeping the terminator attached to each line, so
// reconstruction is exact. An empty input has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func commonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func commonSuffix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

// myers returns a minimal edit script between a and b using the greedy
// forward O(ND) search with a per-depth trace for backtracking. Ties between
// equal-cost paths resolve toward deletion first, the conventional bias of
// line-diff tools.
func myers(a, b []string) []op {
	n, m := len(a), len(b)
	switch {
	case n == 0 && m == 0:
		return nil
	case n == 0:
		return repeatOp(opInsert, m)
	case m == 0:
		return repeatOp(opDelete, n)
	}

	max := n + m
	offset := max
	v := make([]int, 2*max+1)
	var trace [][]int

	depth := 0
search:
	for d := 0; d <= max; d++ {
		depth = d
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	// Backtrack from (n, m) through the recorded contours, emitting the
	// script in reverse.
	rev := make([]op, 0, n+m)
	x, y := n, m
	for d := depth; d > 0; d-- {
		prev := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && prev[offset+k-1] < prev[offset+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := prev[offset+prevK]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			rev = append(rev, opEqual)
			x--
			y--
		}
		if prevK == k+1 {
			rev = append(rev, opInsert)
			y--
		} else {
			rev = append(rev, opDelete)
			x--
		}
	}
	for x > 0 && y > 0 {
		rev = append(rev, opEqual)
		x--
		y--
	}

	script := make([]op, len(rev))
	for i, o := range rev {
		script[len(rev)-1-i] = o
	}
	return script
}

func repeatOp(o op, n int) []op {
	s := make([]op, n)
	for i := range s {
		s[i] = o
	}
	return s
}

// group walks the edit script, concatenating consecutive lines of the same
// classification into segments and accumulating line counts.
func group(script []op, a, b []string) Result {
	res := Result{Segments: []Segment{}}

	var buf strings.Builder
	var cur SegmentType
	open := false

	flush := func() {
		if open {
			res.Segments = append(res.Segments, Segment{Type: cur, Content: buf.String()})
			buf.Reset()
			open = false
		}
	}
	put := func(t SegmentType, line string) {
		if !open || cur != t {
			flush()
			cur = t
			open = true
		}
		buf.WriteString(line)
		if countable(line) {
			switch t {
			case Added:
				res.Stats.Additions++
			case Removed:
				res.Stats.Deletions++
			case Unchanged:
				res.Stats.Unchanged++
			}
		}
	}

	ai, bi := 0, 0
	for _, o := range script {
		switch o {
		case opEqual:
			put(Unchanged, a[ai])
			ai++
			bi++
		case opDelete:
			put(Removed, a[ai])
			ai++
		case opInsert:
			put(Added, b[bi])
			bi++
		}
	}
	flush()
	return res
}

// countable reports whether a line has content besides its terminator.
func countable(line string) bool {
	return strings.TrimRight(line, "\r\n") != ""
}
