// Package recompute re-runs aggregation across the whole document corpus.
//
// The Recomputer walks every stored document and rebuilds its aggregates,
// retrying each document with exponential backoff before giving up on it.
// Individual failures are collected in the run Summary rather than aborting
// the run. Progress can be streamed to a writer for long corpora.
package recompute
