// Package analysis provides diagnostics for sampled trajectories.
//
//   - [MSDCurve]: ensemble mean squared displacement over the time grid
//   - [DiffusionExponent]: log-log fit of MSD(t) = C * t^alpha
//   - [HurstEstimate]: Hurst exponent from ensemble scaling
//   - [PowerSpectrum]: magnitude spectrum of a series or its increments
//
// # Anomalous Diffusion
//
// The fitted exponent classifies the transport regime:
//
//	alpha, _, _ := analysis.DiffusionExponent(times, msd)
//	// alpha < 1 subdiffusive, alpha = 1 normal, alpha > 1 superdiffusive
package analysis
