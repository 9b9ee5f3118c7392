package rollout

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	env "github.com/AGKhalil/bast/environment"
	"github.com/AGKhalil/bast/environment/vector"
	"github.com/AGKhalil/bast/network"
	"github.com/AGKhalil/bast/utils/floatutils"
)

// Agent generates experience on-policy: the network output for each
// lane is treated as action logits, a softmax converts them to a
// categorical distribution over the action space, and one action per
// lane is sampled from it.
type Agent struct {
	*tracker
	numActions int
	source     rand.Source
}

// NewAgent returns a new on-policy rollout Agent interacting with e
// and flushing completed episodes to collector. The environment is
// reset on construction. Only discrete action spaces are supported.
func NewAgent(e vector.Env, collector Appender, seed uint64) (*Agent,
	error) {
	if e.ActionSpec().Cardinality != env.Discrete {
		return nil, fmt.Errorf("newagent: rollout agents can only be " +
			"used with discrete actions")
	}

	return &Agent{
		tracker:    newTracker(e, collector),
		numActions: e.ActionSpec().NumActions(),
		source:     rand.NewSource(seed),
	}, nil
}

// selectActions samples one action per lane from the softmax of the
// network's logits for the current observation batch
func (a *Agent) selectActions(net network.NeuralNet) ([]int, error) {
	if err := a.checkNet(net); err != nil {
		return nil, err
	}
	if net.Outputs() != a.numActions {
		return nil, fmt.Errorf("network outputs \n\twant(%v)\n\thave(%v)",
			a.numActions, net.Outputs())
	}

	logits, err := net.Predict(a.processObs(a.obs))
	if err != nil {
		return nil, err
	}

	actions := make([]int, a.numLanes)
	for i := range actions {
		probs := floatutils.Softmax(logits[i*a.numActions : (i+1)*a.numActions])
		dist := distuv.NewCategorical(probs, a.source)
		actions[i] = int(dist.Rand())
	}
	return actions, nil
}

// PlayStep carries out a single interaction step between the agent
// and every lane of the environment. Lanes whose episodes terminate
// have their accumulated episodes flushed to the collector. The
// returned boundary flags report which lanes terminated on this step.
func (a *Agent) PlayStep(net network.NeuralNet) ([]float64, []bool, error) {
	actions, err := a.selectActions(net)
	if err != nil {
		return nil, nil, fmt.Errorf("playstep: could not select "+
			"actions: %v", err)
	}
	return a.step(actions)
}

// ResetAll resets every lane of the environment and discards all
// in-progress episodes. Calling ResetAll mid-episode loses the
// accumulated transitions of every lane.
func (a *Agent) ResetAll() {
	a.resetAll()
}
