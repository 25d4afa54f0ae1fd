package rtf

// cell is one tokenized table cell: cleaned text plus the merge directives
// carried by its cell-definition marker.
type cell struct {
	text string

	hMergeStart    bool // \clmgf
	hMergeContinue bool // \clmrg
	vMergeStart    bool // \clvmgf
	vMergeContinue bool // \clvmrg
}

// row is an ordered sequence of cells.
type row []cell

// texts returns the ordered cell texts of the row.
func (r row) texts() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.text
	}
	return out
}

// empty reports whether every cell in the row has empty text.
func (r row) empty() bool {
	for _, c := range r {
		if c.text != "" {
			return false
		}
	}
	return true
}

// scanRows tokenizes a document into table rows. A row opens at a \trowd
// marker and spans until the first \row control word; when a terminator
// never appears the row ends at the next \trowd instead, keeping the scan
// linear on malformed input. Rows whose cells are all empty after cleaning
// are discarded. An empty result is valid output; the caller enforces the
// minimum row count.
func scanRows(doc string) []row {
	var rows []row
	pos := 0
	for {
		open, bodyStart := findControl(doc, pos, "trowd")
		if open < 0 {
			break
		}
		end, next := findControl(doc, bodyStart, "row")
		reopen, _ := findControl(doc, bodyStart, "trowd")
		if end < 0 || (reopen >= 0 && reopen < end) {
			if reopen >= 0 {
				end, next = reopen, reopen
			} else {
				end, next = len(doc), len(doc)
			}
		}

		r := scanRow(doc[bodyStart:end])
		if len(r) > 0 && !r.empty() {
			rows = append(rows, r)
		}
		pos = next
	}
	return rows
}

// findControl locates the next occurrence of the control word within s at or
// after from. It returns the index of the backslash and the index just past
// the control word, or (-1, -1) when the word does not occur.
func findControl(s string, from int, word string) (int, int) {
	for i := from; i < len(s); i++ {
		if s[i] != '\\' {
			continue
		}
		name, _, end := readControl(s, i)
		if name == word {
			return i, end
		}
		if end > i+1 {
			i = end - 1
		} else {
			i++
		}
	}
	return -1, -1
}

// readControl parses the control word or symbol starting at the backslash at
// s[i]. It returns the word name (empty for control symbols and escapes),
// its optional numeric parameter text, and the index just past the token
// including the single optional delimiting space.
func readControl(s string, i int) (word, param string, end int) {
	j := i + 1
	for j < len(s) && isAlpha(s[j]) {
		j++
	}
	if j == i+1 {
		// Control symbol or escaped literal: two characters total.
		if j < len(s) {
			return "", "", i + 2
		}
		return "", "", i + 1
	}
	word = s[i+1 : j]

	k := j
	if k < len(s) && s[k] == '-' {
		k++
	}
	for k < len(s) && isDigit(s[k]) {
		k++
	}
	if k > j {
		param = s[j:k]
	}
	if k < len(s) && s[k] == ' ' {
		k++
	}
	return word, param, k
}

// scanRow tokenizes the span of one row. Cell-definition markers (\cellx,
// with merge directives accumulated since the previous marker) determine the
// cell count; \cell delimiters bound the per-cell content fragments. Cells
// are aligned 1:1 with definitions: fragments beyond the definition count
// are ignored, definitions beyond the available fragments yield empty text.
func scanRow(body string) row {
	var defs []cell
	var frags []string
	var cur cell
	fragStart := 0

	i := 0
	for i < len(body) {
		if body[i] != '\\' {
			i++
			continue
		}
		word, _, end := readControl(body, i)
		switch word {
		case "clmgf":
			cur.hMergeStart = true
		case "clmrg":
			cur.hMergeContinue = true
		case "clvmgf":
			cur.vMergeStart = true
		case "clvmrg":
			cur.vMergeContinue = true
		case "cellx":
			defs = append(defs, cur)
			cur = cell{}
		case "cell":
			frags = append(frags, body[fragStart:i])
			fragStart = end
		}
		i = end
	}

	r := make(row, len(defs))
	for j := range defs {
		r[j] = defs[j]
		if j < len(frags) {
			r[j].text = cleanText(frags[j])
		}
	}
	return r
}

func isAlpha(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
