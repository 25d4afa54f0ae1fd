package rtf

import (
	"fmt"
	"strings"
)

// The fixtures below synthesize the adverse-event summary table this parser
// targets: a two-row composite header over four treatment groups, each with
// an n and a (%) measurement column, and eleven body rows including a
// blank-valued group row and indented severity sub-rows.

type aeGroup struct {
	name string
	n    int
}

var aeGroups = []aeGroup{
	{"Placebo", 60},
	{"Low Dose", 60},
	{"High Dose", 60},
	{"Total", 180},
}

type aeRow struct {
	label  string
	counts []int // aligned with aeGroups; -1 means blank
}

var aeRowData = []aeRow{
	{"Participants in population", []int{60, 60, 60, 180}},
	{"With any adverse event", []int{28, 32, 36, 96}},
	{"With drug-related adverse event", []int{10, 14, 18, 42}},
	{"With serious adverse event", []int{4, 6, 8, 18}},
	{"With serious drug-related adverse event", []int{1, 2, 3, 6}},
	{"Discontinued due to adverse event", []int{2, 3, 4, 9}},
	{"Who died", []int{0, 1, 2, 3}},
	{"Worst severity", []int{-1, -1, -1, -1}},
	{"  Mild", []int{12, 14, 16, 42}},
	{"  Moderate", []int{10, 12, 13, 35}},
	{"  Severe", []int{6, 6, 7, 19}},
}

// aePercent renders the (%) cell for one count, blank for the population
// denominator row.
func aePercent(count, denom int, blank bool) string {
	if blank || count < 0 {
		return ""
	}
	return fmt.Sprintf("(%.1f)", float64(count)/float64(denom)*100)
}

// aeColumnNames returns the nine composed column names the baseline fixture
// is expected to produce.
func aeColumnNames() []string {
	names := []string{"Category"}
	for _, g := range aeGroups {
		group := fmt.Sprintf("%s (N=%d)", g.name, g.n)
		names = append(names, group+" | n", group+" | (%)")
	}
	return names
}

// cellDef is one cell-definition marker: its right boundary and optional
// merge-directive prefix (e.g. `\clmgf`).
type cellDef struct {
	prefix   string
	boundary int
}

// buildRow renders one table row. Definition count and content count may
// differ; contents render as `\pard ... {\f0 text}\cell` paragraphs.
func buildRow(defs []cellDef, contents []string, terminator string) string {
	var lines []string
	lines = append(lines, `\trowd\trgaph108\trleft0\trqc`)
	for _, d := range defs {
		lines = append(lines,
			fmt.Sprintf(`%s\clbrdrl\brdrs\brdrw15\clbrdrt\brdrw15\clbrdrb\brdrw15\clvertalt\cellx%d`,
				d.prefix, d.boundary))
	}
	for _, text := range contents {
		lines = append(lines,
			fmt.Sprintf(`\pard\hyphpar0\sb15\sa15\fi0\li0\ri0\ql\fs18{\f0 %s}\cell`, text))
	}
	lines = append(lines, terminator)
	return strings.Join(lines, "\n")
}

// nineDefs returns the nine body-grid cell definitions, with optional merge
// prefixes applied by position.
func nineDefs(prefixes map[int]string) []cellDef {
	boundaries := []int{2455, 3273, 4091, 4909, 5727, 6545, 7364, 8182, 9000}
	defs := make([]cellDef, len(boundaries))
	for i, b := range boundaries {
		defs[i] = cellDef{prefix: prefixes[i], boundary: b}
	}
	return defs
}

// fiveDefs returns the five top-header cell definitions (one stub column and
// four group labels, each spanning two body columns).
func fiveDefs() []cellDef {
	boundaries := []int{2455, 4091, 5727, 7364, 9000}
	defs := make([]cellDef, len(boundaries))
	for i, b := range boundaries {
		defs[i] = cellDef{boundary: b}
	}
	return defs
}

// aeHeaderRows renders the two header rows of the baseline fixture.
func aeHeaderRows(terminator string) []string {
	top := []string{"Category"}
	for _, g := range aeGroups {
		top = append(top, fmt.Sprintf("%s (N=%d)", g.name, g.n))
	}
	sub := []string{""}
	for range aeGroups {
		sub = append(sub, "n", "(%)")
	}
	return []string{
		buildRow(fiveDefs(), top, terminator),
		buildRow(nineDefs(nil), sub, terminator),
	}
}

// aeBodyRows renders the eleven body rows of the baseline fixture.
func aeBodyRows(terminator string) []string {
	var rows []string
	for _, r := range aeRowData {
		blank := r.label == "Participants in population"
		contents := []string{r.label}
		for gi, g := range aeGroups {
			count := r.counts[gi]
			if count < 0 {
				contents = append(contents, "")
			} else {
				contents = append(contents, fmt.Sprintf("%d", count))
			}
			contents = append(contents, aePercent(count, g.n, blank))
		}
		rows = append(rows, buildRow(nineDefs(nil), contents, terminator))
	}
	return rows
}

// aeSummaryRTF renders the complete baseline document.
func aeSummaryRTF() string {
	return aeDocument(aeHeaderRows(`\intbl\row\pard`), aeBodyRows(`\intbl\row\pard`))
}

// aeDocument wraps rows in the document preamble and trailer.
func aeDocument(headerRows, bodyRows []string) string {
	var b strings.Builder
	b.WriteString(`{\rtf1\ansi\ansicpg1252\deff0{\fonttbl{\f0 Times New Roman;}}` + "\n")
	b.WriteString(`\pard\qc\b\fs20 Table 14.3.1 Summary of Treatment-Emergent Adverse Events\b0\par` + "\n")
	for _, r := range headerRows {
		b.WriteString(r)
		b.WriteString("\n")
	}
	for _, r := range bodyRows {
		b.WriteString(r)
		b.WriteString("\n")
	}
	b.WriteString(`\pard\fs16 Source: Synthetic data generated for fixture purposes.\par` + "\n")
	b.WriteString("}\n")
	return b.String()
}
