// Package viz renders multibody simulations in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas used to draw the linkage
//   - [Skeleton]: projects a system's bodies and joints into the canvas
//   - [Live]: Bubble Tea view that steps a simulation in real time
//   - [Plot]: asciigraph time-series plots of coordinates and reactions
//
// # Key bindings in the live view
//
//	Space - pause/resume
//	R     - reset to the initial state
//	Q     - quit
package viz
