// Package viz renders a solar system session in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: the bubbletea model driving a [sim.Session] once per tick
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//   - [Renderer]: projects the scene through the session camera
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	double-click - Select the body under the pointer
//	x / b        - Close the info panel / go back
//	e s q c      - Encyclopedia, structure, quiz, chat
//	v / p        - Real view, orbit paths
//	, / .        - Slower / faster
//	arrows hjkl  - Rotate the camera
//	+ / -        - Dolly in and out
//	n            - Refresh space weather
//	t            - Cycle color themes
//	g            - Toggle GIF recording
//	?            - Show help
//
// # Recording
//
// The g key records frames until pressed again, then writes an animated GIF.
package viz
