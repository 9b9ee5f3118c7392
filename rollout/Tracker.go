package rollout

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/AGKhalil/bast/environment/vector"
	"github.com/AGKhalil/bast/network"
)

// StepPlayer is the contract between data feeds and rollout agents.
// PlayStep carries out one interaction step between the agent and all
// lanes of its environment, returning the per-lane rewards and episode
// boundary flags. The network is a shared, read-only collaborator
// passed in on every call; agents never mutate it.
//
// The returned rewards are informational only; callers drive
// collection off the boundary flags.
type StepPlayer interface {
	PlayStep(net network.NeuralNet) (rewards []float64, dones []bool,
		err error)
}

// tracker implements the environment interaction and episode
// bookkeeping shared by all rollout agents. It owns the current
// observation batch and the per-lane accumulators; agents supply only
// action selection.
type tracker struct {
	env       vector.Env
	numLanes  int
	collector Appender
	obs       *mat.Dense
	rollouts  *accumulator
}

func newTracker(env vector.Env, collector Appender) *tracker {
	t := &tracker{
		env:       env,
		numLanes:  env.Num(),
		collector: collector,
	}
	t.resetAll()
	return t
}

// processObs flattens the current N x obsDims observation batch into
// the row-major form expected by the network. The [N, obsDims] shape
// passes through unchanged: batching is explicit, one row per lane.
func (t *tracker) processObs(obs *mat.Dense) []float64 {
	rows, cols := obs.Dims()
	states := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		states = append(states, obs.RawRowView(i)...)
	}
	return states
}

// checkNet verifies that the network's input shape matches the
// environment's observation batch
func (t *tracker) checkNet(net network.NeuralNet) error {
	obsDims := t.env.ObservationSpec().Shape.Len()
	if net.Features() != obsDims {
		return fmt.Errorf("network features \n\twant(%v)\n\thave(%v)",
			obsDims, net.Features())
	}
	if net.BatchSize() != t.numLanes {
		return fmt.Errorf("network batch size \n\twant(%v)\n\thave(%v)",
			t.numLanes, net.BatchSize())
	}
	return nil
}

// step steps every lane with its respective action, records the
// resulting transitions on the per-lane accumulators, and flushes any
// lane whose episode terminated to the collector as one Experience.
func (t *tracker) step(actions []int) ([]float64, []bool, error) {
	if err := t.env.Act(actions); err != nil {
		return nil, nil, fmt.Errorf("step: could not act: %v", err)
	}
	rewards, newObs, firsts := t.env.Observe()

	for i := 0; i < t.numLanes; i++ {
		state := rowOf(t.obs, i)
		nextState := rowOf(newObs, i)
		t.rollouts.add(i, state, actions[i], rewards[i], firsts[i], nextState)

		if firsts[i] {
			t.collector.Append(t.rollouts.flush(i))
		}
	}

	t.obs = newObs
	return rewards, firsts, nil
}

// resetAll resets every lane of the environment and discards all
// in-progress episodes
func (t *tracker) resetAll() {
	t.obs = t.env.ResetAll()
	t.rollouts = newAccumulator(t.numLanes)
}

// rowOf copies row i of a matrix into a fresh slice
func rowOf(m *mat.Dense, i int) []float64 {
	_, cols := m.Dims()
	row := make([]float64, cols)
	copy(row, m.RawRowView(i))
	return row
}
