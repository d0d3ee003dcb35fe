// Package viz hosts a particle field inside the terminal.
//
// [Model] is a Bubble Tea program that acts as the field's host: ticks
// flush the frame queue, mouse motion becomes the pointer and the canvas
// size becomes the viewport. Particles are drawn as circle outlines on a
// braille [Canvas], one dot per 4x4 viewport pixels.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Toggle the stats panel
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
package viz
