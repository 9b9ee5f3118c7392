// Package cartpole implements the Cartpole classic control environment
package cartpole

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	env "github.com/AGKhalil/bast/environment"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	TotalMass      float64 = CartMass + PoleMass
	HalfPoleLength float64 = 0.5
	ForceMag       float64 = 10.0 // Magnitude of force applied to the cart
	Dt             float64 = 0.02 // Seconds between state updates

	// Episode termination bounds
	PositionThreshold float64 = 2.4
	AngleThreshold    float64 = 12.0 * math.Pi / 180.0
	MaxSteps          int     = 500

	// Discrete actions
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 1

	// Number of state features
	ObservationDims int = 4
)

// Cartpole implements the classic control environment Cartpole. A pole
// is attached to a cart which moves horizontally along a frictionless
// track. The agent must keep the pole balanced for as long as possible.
//
// The state features are continuous and consist of the cart's x
// position and velocity, and the pole's angle from the positive y-axis
// and angular velocity. Episodes end when the cart leaves the legal
// track position, when the pole falls past the legal angle, or when
// the step limit is reached.
//
// Actions are discrete:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Accelerate right
//
// A reward of 1.0 is given on every step, including the terminal one.
type Cartpole struct {
	env.Starter
	state mat.Vector
	steps int
}

// New constructs a new Cartpole environment with starting states
// drawn from the argument Starter. The Starter should sample vectors
// of 4 features, one per state variable.
func New(s env.Starter) (*Cartpole, error) {
	start := s.Start()
	if start.Len() != ObservationDims {
		return nil, fmt.Errorf("new: starter samples %v features, "+
			"cartpole requires %v", start.Len(), ObservationDims)
	}

	return &Cartpole{Starter: s, state: start, steps: 0}, nil
}

// Reset resets the environment between episodes and returns a starting
// state drawn from the environment Starter
func (c *Cartpole) Reset() mat.Vector {
	c.state = c.Start()
	c.steps = 0
	return c.state
}

// Step takes one action in the environment, updating the state by
// Euler integration of the cart-pole dynamics
func (c *Cartpole) Step(action int) (mat.Vector, float64, bool) {
	force := ForceMag
	if action == MinDiscreteAction {
		force = -ForceMag
	}

	x := c.state.AtVec(0)
	xDot := c.state.AtVec(1)
	theta := c.state.AtVec(2)
	thetaDot := c.state.AtVec(3)

	cosTheta := math.Cos(theta)
	sinTheta := math.Sin(theta)

	temp := (force + PoleMass*HalfPoleLength*thetaDot*thetaDot*sinTheta) /
		TotalMass
	thetaAcc := (Gravity*sinTheta - cosTheta*temp) /
		(HalfPoleLength * (4.0/3.0 - PoleMass*cosTheta*cosTheta/TotalMass))
	xAcc := temp - PoleMass*HalfPoleLength*thetaAcc*cosTheta/TotalMass

	x += Dt * xDot
	xDot += Dt * xAcc
	theta += Dt * thetaDot
	thetaDot += Dt * thetaAcc

	c.state = mat.NewVecDense(ObservationDims,
		[]float64{x, xDot, theta, thetaDot})
	c.steps++

	done := x < -PositionThreshold || x > PositionThreshold ||
		theta < -AngleThreshold || theta > AngleThreshold ||
		c.steps >= MaxSteps

	return c.state, 1.0, done
}

// ActionSpec returns the action specification of the environment
func (c *Cartpole) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(1, []float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// ObservationSpec returns the observation specification of the
// environment
func (c *Cartpole) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)
	lowerBound := mat.NewVecDense(ObservationDims, []float64{
		-PositionThreshold, math.Inf(-1), -AngleThreshold, math.Inf(-1),
	})
	upperBound := mat.NewVecDense(ObservationDims, []float64{
		PositionThreshold, math.Inf(1), AngleThreshold, math.Inf(1),
	})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}
