// Package dataset assembles labeled training datasets from simulated
// underlying prices and Black-Scholes option quotes.
//
// Two modes are supported. Build draws independent simulation parameters
// per sample and labels each sample with one point of its own path.
// BuildSeries simulates a single path and reprices the whole option grid
// at every grid point, producing one sample per point.
//
// Builds are reproducible: each sample draws from a sub-stream derived
// from (seed, sample index), so parallel and serial execution produce
// identical datasets.
package dataset
