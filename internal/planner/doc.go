// Package planner decides which pipeline stages a run executes and where
// intermediate snapshots are taken. The stage runner in internal/pipeline
// walks the resulting Plan instead of branching on configuration flags.
package planner
