// Package predict defines the model boundary consuming built datasets.
//
// The engine's only obligation toward a model is the TrainingSample
// shape: feature vectors are option quote values in grid order, labels
// are underlying prices. Any regression model implementing Predictor is
// conformant. A least-squares linear baseline is included to exercise the
// contract end to end and provide a reference error level.
package predict
