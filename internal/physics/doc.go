// Package physics advances a particle field by one frame.
//
// [Stepper.Advance] first checks whether the pointer touches the particle;
// a touched particle is destroyed and replaced through a [Spawner], and the
// replacement does not move until the next frame. Otherwise it applies
// pointer attraction outside the dead zone, then damping, integration and
// edge reflection.
//
// Edge reflection tests the integrated position and turns the stored,
// already damped velocity back toward the viewport. Positions are not
// clamped, so a fast particle may sit outside for a frame before it
// returns:
//
//	next, rep := stepper.Step(particles, pointer, bounds)
//	for _, id := range rep.Destroyed {
//	    ...
//	}
package physics
