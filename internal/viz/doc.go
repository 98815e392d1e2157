// Package viz renders sampled trajectories in the terminal.
//
//   - [Canvas]: braille pixel canvas for high resolution path plots
//   - [RenderPaths]: overlaid path line graphs
//   - [RenderHistogram]: terminal histogram of ensemble terminal values
//   - [Model]: Bubble Tea live replay of a single trajectory
//
// # Key Bindings (live view)
//
//	Space - Pause/Resume replay
//	R     - Resample the trajectory
//	T     - Cycle color themes
//	Q     - Quit
package viz
