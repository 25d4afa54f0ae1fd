package rtf

import "fmt"

// normalizeBody filters and normalizes the body rows of a tokenized table:
//
//  1. Rows whose cell texts duplicate either header row verbatim are dropped
//     (pagination repeats the header block mid-table).
//  2. Rows narrower than the header width are dropped when only trailing
//     noise follows, but a narrow row followed by a full-width row indicates
//     corruption and fails. Wider rows are truncated to the header width.
//  3. When the leading stub spans exactly one column, a blank leading cell
//     flagged as a vertical-merge continuation inherits the last non-empty
//     leading label. A wider stub means nested sub-item rows, which stay
//     blank.
//
// Every returned row is exactly width cells of text.
func normalizeBody(rows []row, top, sub row, width, stubs int) ([][]string, error) {
	filtered := make([]row, 0, len(rows))
	topTexts := top.texts()
	subTexts := sub.texts()
	for _, r := range rows {
		if textsEqual(r.texts(), topTexts) || textsEqual(r.texts(), subTexts) {
			continue
		}
		filtered = append(filtered, r)
	}

	// The position of the last full-width row decides whether a narrow row
	// is interleaved corruption or trailing noise.
	lastFull := -1
	for i, r := range filtered {
		if len(r) >= width {
			lastFull = i
		}
	}

	var body [][]string
	lastLabel := ""
	for i, r := range filtered {
		if len(r) < width {
			if i < lastFull {
				return nil, fmt.Errorf("%w: row with %d cell(s) precedes full-width rows of %d",
					ErrMalformedDocument, len(r), width)
			}
			continue
		}

		texts := r.texts()[:width]
		if stubs == 1 && texts[0] == "" && r[0].vMergeContinue {
			texts[0] = lastLabel
		}
		if texts[0] != "" {
			lastLabel = texts[0]
		}
		body = append(body, texts)
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("%w: no body rows remain after filtering", ErrMalformedDocument)
	}
	return body, nil
}

func textsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
