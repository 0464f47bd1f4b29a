package predict

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/quantlab/optionsynth/internal/model"
)

// ErrNotTrained is returned by Predict before a successful Train.
var ErrNotTrained = errors.New("model not trained")

// DefaultRidge is the regularization applied by NewLinear. Generated
// quote grids that contain a call and a put at the same strike are
// exactly collinear through put-call parity, so an unregularized
// least-squares fit is rank-deficient; a small ridge term keeps the
// normal equations well-posed without materially biasing the fit.
const DefaultRidge = 1e-8

// Linear is a ridge-regularized least-squares baseline: label ~
// intercept + weighted sum of quote values.
type Linear struct {
	ridge   float64
	weights *mat.VecDense // intercept followed by one weight per feature
}

// NewLinear creates an untrained linear baseline with DefaultRidge.
func NewLinear() *Linear {
	return &Linear{ridge: DefaultRidge}
}

// Train fits the weights by solving the regularized normal equations
// (A'A + ridge*I) w = A'b.
func (l *Linear) Train(ds *model.Dataset) error {
	n := len(ds.Samples)
	k := len(ds.Grid)
	if n == 0 {
		return errors.New("empty dataset")
	}
	if n < k+1 {
		return fmt.Errorf("underdetermined fit: %d samples for %d features", n, k)
	}

	a := mat.NewDense(n, k+1, nil)
	b := mat.NewVecDense(n, nil)
	for i, sample := range ds.Samples {
		if len(sample.Quotes) != k {
			return fmt.Errorf("sample %d: %d quotes, grid has %d specs", i, len(sample.Quotes), k)
		}
		a.Set(i, 0, 1)
		for j, q := range sample.Quotes {
			a.Set(i, j+1, q.Value)
		}
		b.SetVec(i, sample.Underlying)
	}

	var ata mat.Dense
	ata.Mul(a.T(), a)
	for i := 0; i <= k; i++ {
		ata.Set(i, i, ata.At(i, i)+l.ridge)
	}
	var atb mat.VecDense
	atb.MulVec(a.T(), b)

	w := mat.NewVecDense(k+1, nil)
	if err := w.SolveVec(&ata, &atb); err != nil {
		return fmt.Errorf("solve normal equations: %w", err)
	}
	l.weights = w
	return nil
}

// Predict evaluates the fitted linear model on one feature vector.
func (l *Linear) Predict(features []float64) (float64, error) {
	if l.weights == nil {
		return 0, ErrNotTrained
	}
	if len(features) != l.weights.Len()-1 {
		return 0, fmt.Errorf("feature count %d, model trained on %d", len(features), l.weights.Len()-1)
	}
	out := l.weights.AtVec(0)
	for j, v := range features {
		out += l.weights.AtVec(j+1) * v
	}
	return out, nil
}
