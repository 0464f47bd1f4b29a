package predict

import (
	"github.com/quantlab/optionsynth/internal/model"
)

// Predictor maps option quote features to an inferred underlying price.
type Predictor interface {
	// Train fits the model on the dataset.
	Train(ds *model.Dataset) error

	// Predict infers the underlying price from one feature vector in the
	// trained grid order.
	Predict(features []float64) (float64, error)
}
