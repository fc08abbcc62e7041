// Package stats computes per-column descriptive statistics for a Table.
package stats

import (
	"math"

	"github.com/jgrady/scrub/pkg/scrub"
)

// NumericSummary holds the numeric statistics of one Integer or Float
// column, computed over non-missing values.
type NumericSummary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// DataStatistics is the descriptive summary of a table.
type DataStatistics struct {
	Rows          int                       `json:"rows"`
	Columns       int                       `json:"columns"`
	MissingValues map[string]int            `json:"missing_values"`
	DataTypes     map[string]string         `json:"data_types"`
	UniqueValues  map[string]int            `json:"unique_values"`
	NumericStats  map[string]NumericSummary `json:"numeric_stats"`
}

// Compute walks each column once and fills a DataStatistics. Standard
// deviation uses the sample divisor N-1; any statistic that comes out NaN
// or infinite is emitted as 0.0.
func Compute(t *scrub.Table) DataStatistics {
	out := DataStatistics{
		Rows:          t.Rows(),
		Columns:       t.Cols(),
		MissingValues: make(map[string]int, t.Cols()),
		DataTypes:     make(map[string]string, t.Cols()),
		UniqueValues:  make(map[string]int, t.Cols()),
		NumericStats:  make(map[string]NumericSummary),
	}
	for i := 0; i < t.Cols(); i++ {
		col := t.Column(i)
		missing := 0
		distinct := make(map[string]struct{})
		var (
			n          int
			sum, sumSq float64
			minV       = math.Inf(1)
			maxV       = math.Inf(-1)
		)
		for r := 0; r < col.Len(); r++ {
			c := col.Cell(r)
			v, present := c.Get()
			if !present {
				missing++
				continue
			}
			distinct[c.Key()] = struct{}{}
			if !col.Kind().Numeric() {
				continue
			}
			var x float64
			switch num := v.(type) {
			case int64:
				x = float64(num)
			case float64:
				x = num
			default:
				continue
			}
			n++
			sum += x
			sumSq += x * x
			if x < minV {
				minV = x
			}
			if x > maxV {
				maxV = x
			}
		}
		out.MissingValues[col.Name()] = missing
		out.DataTypes[col.Name()] = col.Kind().String()
		out.UniqueValues[col.Name()] = len(distinct)
		if col.Kind().Numeric() {
			out.NumericStats[col.Name()] = summarize(n, sum, sumSq, minV, maxV)
		}
	}
	return out
}

func summarize(n int, sum, sumSq, minV, maxV float64) NumericSummary {
	var mean, std float64
	if n > 0 {
		mean = sum / float64(n)
	}
	if n > 1 {
		variance := (sumSq - float64(n)*mean*mean) / float64(n-1)
		std = math.Sqrt(variance)
	} else {
		std = math.NaN()
	}
	return NumericSummary{
		Min:  sanitize(minV),
		Max:  sanitize(maxV),
		Mean: sanitize(mean),
		Std:  sanitize(std),
	}
}

// sanitize maps NaN and infinities to 0.0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
