// Package simulate produces underlying asset price paths from Geometric
// Brownian Motion parameters and externally supplied Brownian increments.
//
// The update is the exact discrete-time GBM solution, not an Euler
// approximation: every simulated price is strictly positive regardless of
// step size. The simulator has no internal randomness; given the same
// increment sequence it is fully deterministic.
package simulate
