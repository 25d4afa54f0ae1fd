// Command rtfdelta compares the table structure of RTF/HTML document pairs
// listed in a CSV file, and inspects single documents.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tsawler/rtfdelta/compare"
	"github.com/tsawler/rtfdelta/convert"
	"github.com/tsawler/rtfdelta/htmldoc"
	"github.com/tsawler/rtfdelta/rtf"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rtfdelta",
		Short:         "Compare RTF / HTML table structures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newShowCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompareCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		direct     bool
		opts       compare.Options
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare table pairs listed in a CSV file",
		Long: `Compare table pairs listed in a CSV file.

The input CSV must have left_path and right_path columns. Each path may
point to an .html or .rtf file. By default .rtf files are converted to HTML
with the office-suite converter and compared structurally; with --direct the
RTF tables are parsed and compared value-by-value instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(inputPath, outputPath, direct, opts)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "CSV file of left_path,right_path pairs")
	cmd.Flags().StringVar(&outputPath, "output", "", "CSV file to write one result row per pair")
	cmd.Flags().BoolVar(&direct, "direct", false, "compare parsed RTF tables instead of converted HTML")
	cmd.Flags().Float64Var(&opts.AbsTol, "abs-tol", 0, "absolute numeric tolerance (direct mode)")
	cmd.Flags().Float64Var(&opts.RelTol, "rel-tol", 0, "relative numeric tolerance (direct mode)")
	cmd.Flags().BoolVar(&opts.IgnoreCase, "ignore-case", false, "ignore case in text values (direct mode)")
	cmd.Flags().BoolVar(&opts.IgnoreSpaces, "ignore-spaces", false, "ignore whitespace in text values (direct mode)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runCompare(inputPath, outputPath string, direct bool, opts compare.Options) error {
	pairs, err := readPairs(inputPath)
	if err != nil {
		return err
	}

	tmpDir, err := os.MkdirTemp("", "rtfdelta-")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	records := [][]string{{"left_path", "right_path", "structure_match", "summary"}}
	for _, pair := range pairs {
		match, summary, err := comparePair(pair[0], pair[1], direct, opts, tmpDir)
		if err != nil {
			return err
		}
		records = append(records, []string{pair[0], pair[1], strconv.FormatBool(match), summary})
	}

	return writeRecords(outputPath, records)
}

// comparePair compares one left/right document pair.
func comparePair(left, right string, direct bool, opts compare.Options, tmpDir string) (bool, string, error) {
	if direct {
		result, err := compare.Files(left, right, opts)
		if err != nil {
			return false, "", err
		}
		return result.Category == compare.Identical, result.Summary, nil
	}

	leftHTML, err := ensureHTML(left, tmpDir)
	if err != nil {
		return false, "", err
	}
	rightHTML, err := ensureHTML(right, tmpDir)
	if err != nil {
		return false, "", err
	}
	result, err := htmldoc.CompareStructure(leftHTML, rightHTML)
	if err != nil {
		return false, "", err
	}
	return result.Match, result.Summary, nil
}

// ensureHTML returns an HTML path, converting from RTF when needed.
func ensureHTML(path, tmpDir string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".rtf") {
		return convert.ToHTML(path, tmpDir)
	}
	return path, nil
}

// readPairs reads the left_path,right_path records from the input CSV.
func readPairs(path string) ([][2]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pair list: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading pair list %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("pair list %s is empty", path)
	}

	leftIdx, rightIdx := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(name) {
		case "left_path":
			leftIdx = i
		case "right_path":
			rightIdx = i
		}
	}
	if leftIdx < 0 || rightIdx < 0 {
		return nil, fmt.Errorf("pair list %s must have left_path and right_path columns", path)
	}

	var pairs [][2]string
	for _, rec := range records[1:] {
		if leftIdx >= len(rec) || rightIdx >= len(rec) {
			continue
		}
		pairs = append(pairs, [2]string{rec[leftIdx], rec[rightIdx]})
	}
	return pairs, nil
}

func writeRecords(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file.rtf>",
		Short: "Print the parsed table and its numeric column summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := rtf.LoadTable(args[0])
			if err != nil {
				return err
			}
			rows, err := table.RowCount()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, strings.Join(table.Names(), "\t"))
			for row := 0; row < rows; row++ {
				cells := make([]string, table.ColCount())
				for col := range cells {
					cells[col] = table.Value(row, col).String()
				}
				fmt.Fprintln(w, strings.Join(cells, "\t"))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			summaries := table.Summarize()
			if len(summaries) == 0 {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout())
			sw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(sw, "column\tcount\tmin\tmax\tmean\tmedian")
			for _, s := range summaries {
				fmt.Fprintf(sw, "%s\t%d\t%g\t%g\t%g\t%g\n", s.Name, s.Count, s.Min, s.Max, s.Mean, s.Median)
			}
			return sw.Flush()
		},
	}
}
