// Package store persists built datasets to Postgres and loads them back.
//
// Each persisted build is a run identified by a UUID, holding its seed,
// label policy, and a config snapshot. Samples and quotes are
// batch-inserted with pgx.Batch; LoadDataset reconstructs the exact
// Dataset for a run, preserving sample and grid order.
package store
