// Package model defines the core domain types shared across the engine:
// simulation parameters, price paths, option specifications and quotes,
// training samples, and the error taxonomy.
//
// All types are plain values with no behavior beyond validation and
// naming. Once a Dataset is built it is treated as immutable by every
// consumer.
package model
