package predict

import (
	"fmt"
	"math"

	"github.com/quantlab/optionsynth/internal/model"
)

// Report holds out-of-sample error metrics from Evaluate.
type Report struct {
	TrainSamples int
	TestSamples  int
	RMSE         float64
	MAE          float64
}

// Evaluate trains p on the leading trainFrac of the dataset and measures
// prediction error on the remainder. Order is preserved: for intraday
// series data this trains on the early portion of the path and tests on
// the late portion.
func Evaluate(p Predictor, ds *model.Dataset, trainFrac float64) (Report, error) {
	if trainFrac <= 0 || trainFrac >= 1 {
		return Report{}, fmt.Errorf("train fraction %v outside (0, 1)", trainFrac)
	}
	split := int(float64(len(ds.Samples)) * trainFrac)
	if split == 0 || split == len(ds.Samples) {
		return Report{}, fmt.Errorf("split at %d leaves an empty partition for %d samples", split, len(ds.Samples))
	}

	train := &model.Dataset{Grid: ds.Grid, Samples: ds.Samples[:split]}
	test := ds.Samples[split:]

	if err := p.Train(train); err != nil {
		return Report{}, fmt.Errorf("train: %w", err)
	}

	var sumSq, sumAbs float64
	for i, sample := range test {
		got, err := p.Predict(sample.Features())
		if err != nil {
			return Report{}, fmt.Errorf("predict test sample %d: %w", i, err)
		}
		diff := got - sample.Underlying
		sumSq += diff * diff
		sumAbs += math.Abs(diff)
	}

	n := float64(len(test))
	return Report{
		TrainSamples: split,
		TestSamples:  len(test),
		RMSE:         math.Sqrt(sumSq / n),
		MAE:          sumAbs / n,
	}, nil
}
