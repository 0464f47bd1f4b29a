// Package pricing implements the Black-Scholes model for European call
// and put options, plus the standard Greeks.
//
// All functions are pure and safe for concurrent use. The degenerate
// limits T=0 and sigma=0, where d1/d2 are undefined by direct division,
// return the option's intrinsic (or forward-discounted intrinsic) value
// instead of propagating NaN.
package pricing
