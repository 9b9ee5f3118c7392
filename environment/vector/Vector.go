// Package vector implements vectorized environments, which step a
// number of independent sub-environments in lockstep
package vector

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/AGKhalil/bast/environment"
)

// Env implements a vectorized environment of N sub-environments,
// called lanes. All lanes are stepped simultaneously with one action
// per lane.
//
// Stepping is split into an Act and Observe pair. Act triggers one
// simulation step on every lane; Observe returns the rewards,
// observations, and episode boundary flags the last Act produced.
// A lane whose episode terminates is reset immediately: its done flag
// is reported as true alongside the first observation of the new
// episode. This mirrors the convention of vectorized gym environments
// and is relied upon by rollout accumulation.
type Env interface {
	// Num returns the number of lanes
	Num() int

	// Act steps every lane with its respective action
	Act(actions []int) error

	// Observe returns the per-lane rewards, the N x obsDims batch of
	// current observations, and the per-lane episode boundary flags
	// resulting from the last call to Act
	Observe() ([]float64, *mat.Dense, []bool)

	// ResetAll resets every lane and returns the N x obsDims batch of
	// starting observations
	ResetAll() *mat.Dense

	ObservationSpec() env.Spec
	ActionSpec() env.Spec
}

// vecEnv implements a synchronous, in-process Env
type vecEnv struct {
	envs    []env.Environment
	obsDims int

	rewards []float64
	obs     *mat.Dense
	firsts  []bool

	// Act and Observe must alternate
	pendingObserve bool
}

// New returns a new synchronous vectorized environment stepping the
// argument sub-environments in lockstep. All sub-environments must
// share observation and action specifications. The returned Env starts
// ready to use, with every lane reset to a starting state.
func New(envs ...env.Environment) (Env, error) {
	if len(envs) == 0 {
		return nil, fmt.Errorf("new: vectorized env requires at least " +
			"one sub-environment")
	}

	obsDims := envs[0].ObservationSpec().Shape.Len()
	numActions := envs[0].ActionSpec().NumActions()
	for i, e := range envs {
		if e.ObservationSpec().Shape.Len() != obsDims {
			return nil, fmt.Errorf("new: sub-environment %v observation "+
				"shape \n\twant(%v)\n\thave(%v)", i, obsDims,
				e.ObservationSpec().Shape.Len())
		}
		if e.ActionSpec().NumActions() != numActions {
			return nil, fmt.Errorf("new: sub-environment %v action space "+
				"\n\twant(%v)\n\thave(%v)", i, numActions,
				e.ActionSpec().NumActions())
		}
	}

	v := &vecEnv{
		envs:    envs,
		obsDims: obsDims,
		rewards: make([]float64, len(envs)),
		obs:     mat.NewDense(len(envs), obsDims, nil),
		firsts:  make([]bool, len(envs)),
	}
	v.ResetAll()

	return v, nil
}

// Num returns the number of lanes
func (v *vecEnv) Num() int {
	return len(v.envs)
}

// Act steps every lane with its respective action. Lanes whose
// episodes terminate are reset in place.
func (v *vecEnv) Act(actions []int) error {
	if len(actions) != v.Num() {
		return fmt.Errorf("act: invalid action batch length "+
			"\n\twant(%v)\n\thave(%v)", v.Num(), len(actions))
	}
	if v.pendingObserve {
		return fmt.Errorf("act: Observe must be called between " +
			"successive calls to Act")
	}

	for i, e := range v.envs {
		obs, reward, done := e.Step(actions[i])
		if done {
			obs = e.Reset()
		}

		v.rewards[i] = reward
		v.firsts[i] = done
		v.setRow(i, obs)
	}
	v.pendingObserve = true

	return nil
}

// Observe returns the results of the most recent Act. Before any Act,
// it returns zero rewards, the starting observations, and false
// boundary flags for every lane.
//
// The returned slices are copies and remain valid after later steps.
func (v *vecEnv) Observe() ([]float64, *mat.Dense, []bool) {
	rewards := make([]float64, v.Num())
	copy(rewards, v.rewards)

	firsts := make([]bool, v.Num())
	copy(firsts, v.firsts)

	obs := mat.DenseCopyOf(v.obs)

	v.pendingObserve = false

	return rewards, obs, firsts
}

// ResetAll resets every lane and returns the batch of starting
// observations
func (v *vecEnv) ResetAll() *mat.Dense {
	for i, e := range v.envs {
		v.setRow(i, e.Reset())
		v.rewards[i] = 0
		v.firsts[i] = false
	}
	v.pendingObserve = false

	return mat.DenseCopyOf(v.obs)
}

// ObservationSpec returns the observation specification shared by all
// lanes
func (v *vecEnv) ObservationSpec() env.Spec {
	return v.envs[0].ObservationSpec()
}

// ActionSpec returns the action specification shared by all lanes
func (v *vecEnv) ActionSpec() env.Spec {
	return v.envs[0].ActionSpec()
}

// setRow copies a single lane's observation into the batch
func (v *vecEnv) setRow(i int, obs mat.Vector) {
	for j := 0; j < v.obsDims; j++ {
		v.obs.Set(i, j, obs.AtVec(j))
	}
}
