// Package process defines the stochastic process kinds and their path
// integrators. Each kind is an immutable value validated at construction;
// Sample advances the state over a deterministic time grid (or event
// sequence) driven entirely by an explicit randx.Stream.
package process
