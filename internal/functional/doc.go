// Package functional turns single-path simulators into Monte Carlo
// estimators: moments of the terminal state, first-passage times, occupation
// times, and time-averaged mean squared displacement. Every estimator is a
// pure reduction over independent trials; trials fan out across workers with
// private random streams and fan back in through gonum/stat.
package functional
