// Package rollout implements agents that generate experience by
// stepping a vectorized environment with a policy or action-value
// network. Each lane of the environment accumulates its own in-flight
// trajectory; when a lane's episode terminates, the completed episode
// is flushed as a single Experience to a collector.
package rollout

// Experience holds one completed episode for a single lane as five
// parallel sequences with one element per transition. Dones[t] is true
// exactly when transition t ended the episode, so a flushed Experience
// has Dones[len-1] == true and false everywhere else.
type Experience struct {
	States     [][]float64
	Actions    []int
	Rewards    []float64
	Dones      []bool
	NextStates [][]float64
}

// Len returns the number of transitions in the Experience
func (e Experience) Len() int {
	return len(e.Actions)
}

// Appender is the collector contract required by rollout agents:
// completed episodes are handed off through Append. Append must never
// fail; collectors at capacity evict rather than error.
type Appender interface {
	Append(Experience)
}

// accumulator tracks the in-progress episode of every lane of a
// vectorized environment. All five field sequences of a lane always
// have equal length.
type accumulator struct {
	lanes []Experience
}

// newAccumulator returns an accumulator with numLanes empty lanes
func newAccumulator(numLanes int) *accumulator {
	return &accumulator{lanes: make([]Experience, numLanes)}
}

// add appends one transition onto lane i
func (a *accumulator) add(i int, state []float64, action int, reward float64,
	done bool, nextState []float64) {
	lane := &a.lanes[i]
	lane.States = append(lane.States, state)
	lane.Actions = append(lane.Actions, action)
	lane.Rewards = append(lane.Rewards, reward)
	lane.Dones = append(lane.Dones, done)
	lane.NextStates = append(lane.NextStates, nextState)
}

// flush returns lane i's accumulated episode and clears the lane
func (a *accumulator) flush(i int) Experience {
	exp := a.lanes[i]
	a.lanes[i] = Experience{}
	return exp
}

// len returns the number of transitions accumulated on lane i
func (a *accumulator) len(i int) int {
	return a.lanes[i].Len()
}
