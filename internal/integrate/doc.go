// Package integrate advances a mechanical state through time. Steppers
// work on the coordinate and speed vectors returned by the system's
// derivative evaluation and hand the result back through Advance, which
// also renormalizes quaternion coordinates.
package integrate
