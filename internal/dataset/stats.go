package dataset

import (
	"gonum.org/v1/gonum/stat"

	"github.com/quantlab/optionsynth/internal/model"
)

// Summary holds descriptive statistics of a dataset's labels.
type Summary struct {
	Samples  int
	Columns  int
	Mean     float64
	StdDev   float64
	Min, Max float64
}

// Summarize computes label statistics for logging and sanity checks.
func Summarize(ds *model.Dataset) Summary {
	s := Summary{Samples: len(ds.Samples), Columns: len(ds.Grid)}
	if len(ds.Samples) == 0 {
		return s
	}

	labels := make([]float64, len(ds.Samples))
	s.Min, s.Max = ds.Samples[0].Underlying, ds.Samples[0].Underlying
	for i, sample := range ds.Samples {
		labels[i] = sample.Underlying
		if sample.Underlying < s.Min {
			s.Min = sample.Underlying
		}
		if sample.Underlying > s.Max {
			s.Max = sample.Underlying
		}
	}
	s.Mean = stat.Mean(labels, nil)
	if len(labels) > 1 {
		s.StdDev = stat.StdDev(labels, nil)
	}
	return s
}
