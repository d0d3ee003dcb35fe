// Package field provides the data model of the particle field.
//
// The package defines the value types shared by every other package:
//
//   - [Particle]: a drifting circle with identity, position, velocity and size
//   - [Point]: a pointer position, with [Unset] as the "never moved" sentinel
//   - [Bounds]: the viewport size read from the host each frame
//   - [DrawCommand]: what a renderer receives for one particle
//
// [Generator] creates particles and owns the id counter; [Store] holds the
// fixed-size particle pool of one simulation.
//
// # Example
//
//	gen := field.NewGenerator(42, field.DefaultSpawnRange())
//	store := field.NewStore(30, gen, field.Bounds{Width: 800, Height: 600})
//	for _, cmd := range store.DrawCommands() {
//	    draw(cmd.X, cmd.Y, cmd.Diameter)
//	}
package field
