// Package randx provides the random variate samplers that drive every
// process integrator: uniform, normal, exponential, Poisson counts,
// Bernoulli, gamma, and the alpha-stable family (Chambers-Mallows-Stuck).
//
// All sampling goes through an explicit Stream so that ensemble workers can
// hold private, independently seeded generators. A package-level default
// stream exists for one-off draws.
package randx
