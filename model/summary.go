package model

import "github.com/montanaflynn/stats"

// ColumnSummary holds descriptive statistics for one numeric column,
// computed over its non-null values.
type ColumnSummary struct {
	Name   string
	Count  int // non-null values
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Summarize computes descriptive statistics for every numeric column, in
// column order. Text columns and numeric columns with no non-null values
// are skipped.
func (t *Table) Summarize() []ColumnSummary {
	var summaries []ColumnSummary
	for _, col := range t.cols {
		data := make(stats.Float64Data, 0, len(col.Values))
		numeric := true
		for _, v := range col.Values {
			if v.IsNull() {
				continue
			}
			f, ok := v.AsFloat()
			if !ok {
				numeric = false
				break
			}
			data = append(data, f)
		}
		if !numeric || len(data) == 0 {
			continue
		}

		min, err := data.Min()
		if err != nil {
			continue
		}
		max, _ := data.Max()
		mean, _ := data.Mean()
		median, _ := data.Median()

		summaries = append(summaries, ColumnSummary{
			Name:   col.Name,
			Count:  len(data),
			Min:    min,
			Max:    max,
			Mean:   mean,
			Median: median,
		})
	}
	return summaries
}
