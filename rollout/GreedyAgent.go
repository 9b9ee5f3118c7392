package rollout

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/AGKhalil/bast/environment"
	"github.com/AGKhalil/bast/environment/vector"
	"github.com/AGKhalil/bast/network"
	"github.com/AGKhalil/bast/utils/floatutils"
)

// GreedyAgent generates experience off-policy with an ε-greedy
// behaviour policy: the network output for each lane is treated as
// action values and the arg-max action is taken, except that with
// independent probability ε per lane a uniformly random action is
// taken instead.
//
// ε decays linearly from EpsStart towards EpsEnd over EpsFrames
// action selections and is clamped at EpsEnd thereafter.
type GreedyAgent struct {
	*tracker
	numActions int
	rng        *rand.Rand

	epsilon   float64
	epsStart  float64
	epsEnd    float64
	epsFrames int
	steps     int
}

// GreedyConfig configures the exploration schedule of a GreedyAgent
type GreedyConfig struct {
	EpsStart  float64
	EpsEnd    float64
	EpsFrames int
}

// Create creates and returns the GreedyAgent with the specified
// configuration, interacting with e and flushing completed episodes
// to collector
func (c GreedyConfig) Create(e vector.Env, collector Appender,
	seed uint64) (*GreedyAgent, error) {
	return NewGreedyAgent(e, collector, c.EpsStart, c.EpsEnd, c.EpsFrames,
		seed)
}

// NewGreedyAgent returns a new ε-greedy rollout agent. The environment
// is reset on construction. Only discrete action spaces are supported.
func NewGreedyAgent(e vector.Env, collector Appender, epsStart,
	epsEnd float64, epsFrames int, seed uint64) (*GreedyAgent, error) {
	if e.ActionSpec().Cardinality != env.Discrete {
		return nil, fmt.Errorf("newgreedyagent: rollout agents can only " +
			"be used with discrete actions")
	}
	if epsFrames <= 0 {
		return nil, fmt.Errorf("newgreedyagent: epsFrames must be > 0")
	}
	if epsStart < epsEnd {
		return nil, fmt.Errorf("newgreedyagent: epsStart (%v) must be >= "+
			"epsEnd (%v)", epsStart, epsEnd)
	}

	return &GreedyAgent{
		tracker:    newTracker(e, collector),
		numActions: e.ActionSpec().NumActions(),
		rng:        rand.New(rand.NewSource(seed)),
		epsilon:    epsStart,
		epsStart:   epsStart,
		epsEnd:     epsEnd,
		epsFrames:  epsFrames,
	}, nil
}

// Epsilon returns the current exploration rate
func (g *GreedyAgent) Epsilon() float64 {
	return g.epsilon
}

// updateEpsilon advances the linear exploration schedule by one action
// selection
func (g *GreedyAgent) updateEpsilon() {
	g.steps++
	g.epsilon = floatutils.Max(g.epsEnd,
		g.epsStart-float64(g.steps)/float64(g.epsFrames))
}

// selectActions takes the arg-max action per lane of the network's
// action values, overriding each lane with a uniformly random action
// with independent probability ε
func (g *GreedyAgent) selectActions(net network.NeuralNet) ([]int, error) {
	if err := g.checkNet(net); err != nil {
		return nil, err
	}
	if net.Outputs() != g.numActions {
		return nil, fmt.Errorf("network outputs \n\twant(%v)\n\thave(%v)",
			g.numActions, net.Outputs())
	}

	values, err := net.Predict(g.processObs(g.obs))
	if err != nil {
		return nil, err
	}

	actions := make([]int, g.numLanes)
	for i := range actions {
		if g.rng.Float64() < g.epsilon {
			actions[i] = g.rng.Intn(g.numActions)
			continue
		}

		// Break ties between maximal action values randomly
		greedy := floatutils.ArgMax(
			values[i*g.numActions : (i+1)*g.numActions]...)
		actions[i] = greedy[g.rng.Intn(len(greedy))]
	}

	g.updateEpsilon()
	return actions, nil
}

// PlayStep carries out a single interaction step between the agent
// and every lane of the environment. Lanes whose episodes terminate
// have their accumulated episodes flushed to the collector. The
// returned boundary flags report which lanes terminated on this step.
func (g *GreedyAgent) PlayStep(net network.NeuralNet) ([]float64, []bool,
	error) {
	actions, err := g.selectActions(net)
	if err != nil {
		return nil, nil, fmt.Errorf("playstep: could not select "+
			"actions: %v", err)
	}
	return g.step(actions)
}

// ResetAll resets every lane of the environment and discards all
// in-progress episodes. The exploration schedule is not reset.
func (g *GreedyAgent) ResetAll() {
	g.resetAll()
}
