// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() mat.Vector
}

// Environment implements a single simulated environment. Environments
// are stepped one action at a time; episode boundaries are reported
// through the done flag of Step.
//
// Environments with discrete action spaces describe their actions by
// an ActionSpec whose bounds enumerate the legal integer actions.
type Environment interface {
	// Reset resets the environment between episodes and returns the
	// starting observation
	Reset() mat.Vector

	// Step takes one action in the environment, returning the next
	// observation, the reward for the transition, and whether the
	// episode has terminated
	Step(action int) (mat.Vector, float64, bool)

	ObservationSpec() Spec
	ActionSpec() Spec
}
