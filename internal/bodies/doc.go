// Package bodies holds the static descriptors of the bodies shown by orrery.
//
// Descriptors are immutable; runtime angles and speeds live in the scene
// arena, keyed by the descriptor's index in [All].
//
//   - [Body]: display radius, per-frame angular speeds, orbit offset, facts
//   - [Orbit]: real orbital elements (eccentricity is kept for display only)
//   - [Ring]: optional ring decoration
package bodies
