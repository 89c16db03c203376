// Package mbody implements an articulated-body dynamics engine: a tree of
// rigid bodies connected by mobilizers (joints), optional bilateral
// constraints, and the computation of the spatial force each mobilizer
// transmits from parent to child.
//
// A [System] is assembled by adding mobilized bodies under Ground and is
// frozen with [System.Finalize]. A [State] carries generalized coordinates
// q, speeds u, and staged caches; [System.Realize] advances a state
// through Position, Velocity and Acceleration. Once a state is realized to
// [StageAcceleration], accelerations and constraint multipliers are valid
// and [System.CalcMobilizerReactionForces] reports the spatial force each
// joint transmits, anchored at the joint's outboard frame origin and
// expressed in Ground.
//
// Reading a result below its stage is a programming error and panics with
// a *StageError. Systems are immutable after Finalize; distinct states
// over one system may be used from different goroutines, a single state
// may not.
package mbody
