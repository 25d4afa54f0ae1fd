// Package export writes assembled tables to external formats: CSV for
// fixture and diff workflows, XLSX for hand inspection.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/rtfdelta/model"
)

// WriteCSV writes the table as CSV: one header record of column names
// followed by one record per row, values re-stringified (nulls are empty
// fields).
func WriteCSV(t *model.Table, w io.Writer) error {
	rows, err := t.RowCount()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	record := make([]string, t.ColCount())
	for row := 0; row < rows; row++ {
		for col := 0; col < t.ColCount(); col++ {
			record[col] = t.Value(row, col).String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %d: %w", row, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table as a CSV file.
func SaveCSV(t *model.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(t, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveXLSX writes the table as a single-sheet XLSX workbook. Integers and
// floats become native numeric cells; nulls stay blank.
func SaveXLSX(t *model.Table, path string) error {
	rows, err := t.RowCount()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for col := 0; col < t.ColCount(); col++ {
		ref, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, ref, t.Name(col)); err != nil {
			return fmt.Errorf("writing header cell %s: %w", ref, err)
		}
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < t.ColCount(); col++ {
			v := t.Value(row, col)
			if v.IsNull() {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}
			var cellErr error
			switch v.Kind() {
			case model.KindInt:
				cellErr = f.SetCellValue(sheet, ref, v.Int())
			case model.KindFloat:
				cellErr = f.SetCellValue(sheet, ref, v.Float())
			default:
				cellErr = f.SetCellValue(sheet, ref, v.Text())
			}
			if cellErr != nil {
				return fmt.Errorf("writing cell %s: %w", ref, cellErr)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
