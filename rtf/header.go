package rtf

import (
	"fmt"
	"strings"
)

// compositeSeparator joins the group label and measure label of one column.
const compositeSeparator = " | "

// GroupExpandPolicy controls how a grouped top header row is expanded across
// the measurement columns when the two header rows differ in width. The
// uneven-division fallback is a best-effort heuristic; the format itself
// carries no grammar for grouped headers, so the policy is explicit rather
// than hidden.
type GroupExpandPolicy int

const (
	// GroupExpandRepeat repeats each group label contiguously across an
	// equal share of the measurement columns when the remaining width
	// divides evenly by the group count, and otherwise falls back to
	// sequential assignment padded with the last label.
	GroupExpandRepeat GroupExpandPolicy = iota

	// GroupExpandSequential always assigns group labels one per column,
	// padding with the last label.
	GroupExpandSequential
)

// headerCell is one expanded top-header position: its label and the
// horizontal-merge directives, which survive expansion only when the top row
// already spans the full width.
type headerCell struct {
	text           string
	hMergeStart    bool
	hMergeContinue bool
}

// buildColumns composes final unique column names from the two header rows.
// The output length equals the sub-header width.
func buildColumns(top, sub row, policy GroupExpandPolicy) []string {
	stubs := stubCount(sub)
	expanded := expandTop(top, len(sub), stubs, policy)
	level1 := propagateMerges(expanded)

	names := make([]string, len(sub))
	for i := range sub {
		names[i] = composeName(i, level1[i], sub[i].text)
	}
	return dedupe(names)
}

// stubCount infers the number of leading row-identity columns: the count of
// leading blank sub-header cells, minimum 1.
func stubCount(sub row) int {
	n := 0
	for _, c := range sub {
		if c.text != "" {
			break
		}
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// expandTop widens the top header row to the target width. An equal-width
// row passes through with its merge flags intact; a single-cell row
// broadcasts its label; otherwise the leading stub labels stay aligned and
// the remainder is treated as a repeating group label block per the policy.
func expandTop(top row, target, stubs int, policy GroupExpandPolicy) []headerCell {
	if target <= 0 {
		return nil
	}
	if len(top) == target {
		out := make([]headerCell, target)
		for i, c := range top {
			out[i] = headerCell{text: c.text, hMergeStart: c.hMergeStart, hMergeContinue: c.hMergeContinue}
		}
		return out
	}
	if len(top) == 1 {
		out := make([]headerCell, target)
		for i := range out {
			out[i].text = top[0].text
		}
		return out
	}

	if stubs > len(top) {
		stubs = len(top)
	}
	labels := make([]string, 0, target)
	for _, c := range top[:stubs] {
		labels = append(labels, c.text)
	}

	groups := top[stubs:]
	remaining := target - stubs
	if len(groups) > 0 && policy == GroupExpandRepeat && remaining%len(groups) == 0 {
		repeat := remaining / len(groups)
		for _, g := range groups {
			for k := 0; k < repeat; k++ {
				labels = append(labels, g.text)
			}
		}
	} else {
		for _, g := range groups {
			labels = append(labels, g.text)
		}
	}

	// Pad with the last available label, then clamp to the target width.
	for len(labels) < target {
		labels = append(labels, labels[len(labels)-1])
	}
	labels = labels[:target]

	out := make([]headerCell, target)
	for i, text := range labels {
		out[i].text = text
	}
	return out
}

// propagateMerges resolves horizontal merges over the expanded top row: a
// merge-start cell begins a new active label, a merge-continue cell inherits
// the active label (falling back to its own text when none is active), and
// an unflagged cell refreshes the active label from its own non-empty text.
func propagateMerges(cells []headerCell) []string {
	out := make([]string, len(cells))
	active := ""
	for i, c := range cells {
		switch {
		case c.hMergeStart:
			active = c.text
			out[i] = c.text
		case c.hMergeContinue:
			if active != "" {
				out[i] = active
			} else {
				out[i] = c.text
			}
		default:
			if c.text != "" {
				active = c.text
			}
			out[i] = c.text
		}
	}
	return out
}

// composeName builds the final name for the column at index i (0-based) from
// its group label and measure label.
func composeName(i int, level1, level2 string) string {
	level1 = strings.TrimSpace(level1)
	level2 = strings.TrimSpace(level2)

	if i == 0 {
		switch {
		case level1 != "":
			return level1
		case level2 != "":
			return level2
		}
		return placeholder(i)
	}

	switch {
	case level1 != "" && level2 != "":
		return level1 + compositeSeparator + level2
	case level1 != "":
		return level1
	case level2 != "":
		return level2
	}
	return placeholder(i)
}

// placeholder names the column at 0-based index i when both header levels
// are blank.
func placeholder(i int) string {
	return fmt.Sprintf("column_%d", i+1)
}

// dedupe makes repeated names unique by appending a deterministic __N suffix
// carrying the 1-based occurrence count; first occurrences are unchanged.
func dedupe(names []string) []string {
	counts := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		counts[name]++
		if counts[name] == 1 {
			out[i] = name
			continue
		}
		out[i] = fmt.Sprintf("%s__%d", name, counts[name])
	}
	return out
}

// stubSpan locates where the row-identity columns end in the composed
// names: the index of the first name containing the composite separator, or
// the full width when none does.
func stubSpan(names []string) int {
	for i, name := range names {
		if strings.Contains(name, compositeSeparator) {
			if i < 1 {
				return 1
			}
			return i
		}
	}
	return len(names)
}
