package rollout

import (
	"gonum.org/v1/gonum/mat"

	env "github.com/AGKhalil/bast/environment"
)

// sliceAppender records flushed episodes in order
type sliceAppender struct {
	episodes []Experience
}

func (s *sliceAppender) Append(exp Experience) {
	s.episodes = append(s.episodes, exp)
}

// scriptedEnv implements vector.Env with scripted episode boundaries.
// Step t (1-based) reports the done flags script[t-1], or no
// boundaries once the script is exhausted. Observations are a single
// feature valued lane*1000 + t so that recorded transitions can be
// checked exactly, and the reward of step t is float64(t).
type scriptedEnv struct {
	num        int
	numActions int
	script     [][]bool

	t       int
	rewards []float64
	obs     *mat.Dense
	firsts  []bool
	pending bool
}

func newScriptedEnv(num, numActions int, script [][]bool) *scriptedEnv {
	s := &scriptedEnv{num: num, numActions: numActions, script: script}
	s.ResetAll()
	return s
}

func (s *scriptedEnv) Num() int {
	return s.num
}

func (s *scriptedEnv) Act(actions []int) error {
	s.t++

	firsts := make([]bool, s.num)
	if s.t-1 < len(s.script) {
		copy(firsts, s.script[s.t-1])
	}

	for i := 0; i < s.num; i++ {
		s.rewards[i] = float64(s.t)
		s.firsts[i] = firsts[i]
		s.obs.Set(i, 0, float64(i*1000+s.t))
	}
	s.pending = true
	return nil
}

func (s *scriptedEnv) Observe() ([]float64, *mat.Dense, []bool) {
	rewards := make([]float64, s.num)
	copy(rewards, s.rewards)
	firsts := make([]bool, s.num)
	copy(firsts, s.firsts)
	s.pending = false
	return rewards, mat.DenseCopyOf(s.obs), firsts
}

func (s *scriptedEnv) ResetAll() *mat.Dense {
	s.t = 0
	s.rewards = make([]float64, s.num)
	s.firsts = make([]bool, s.num)
	s.obs = mat.NewDense(s.num, 1, nil)
	for i := 0; i < s.num; i++ {
		s.obs.Set(i, 0, float64(i*1000))
	}
	return mat.DenseCopyOf(s.obs)
}

func (s *scriptedEnv) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{0})
	return env.NewSpec(shape, env.Observation, bound, bound, env.Continuous)
}

func (s *scriptedEnv) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lower := mat.NewVecDense(1, []float64{0})
	upper := mat.NewVecDense(1, []float64{float64(s.numActions - 1)})
	return env.NewSpec(shape, env.Action, lower, upper, env.Discrete)
}

// continuousEnv wraps a scriptedEnv to report a continuous action
// space
type continuousEnv struct {
	*scriptedEnv
}

func (c *continuousEnv) ActionSpec() env.Spec {
	spec := c.scriptedEnv.ActionSpec()
	spec.Cardinality = env.Continuous
	return spec
}

// constNet implements network.NeuralNet, predicting the same fixed
// per-action outputs for every lane
type constNet struct {
	features int
	batch    int
	out      []float64
}

func (c constNet) Predict(states []float64) ([]float64, error) {
	predictions := make([]float64, 0, c.batch*len(c.out))
	for i := 0; i < c.batch; i++ {
		predictions = append(predictions, c.out...)
	}
	return predictions, nil
}

func (c constNet) Features() int {
	return c.features
}

func (c constNet) Outputs() int {
	return len(c.out)
}

func (c constNet) BatchSize() int {
	return c.batch
}

// neverDone returns a script of n steps with no episode boundaries
func neverDone(steps, lanes int) [][]bool {
	script := make([][]bool, steps)
	for i := range script {
		script[i] = make([]bool, lanes)
	}
	return script
}
