// Package collector implements a bounded buffer of completed episodes
// used as the sample source for training
package collector

import (
	"fmt"

	"github.com/AGKhalil/bast/rollout"
)

// Batch holds every buffered episode as five parallel arrays in
// insertion order, oldest first. The arrays are ragged: each element
// is itself a per-episode sequence whose length is that episode's
// length. No padding or truncation is performed; any padding policy
// is left to the consumer of the Batch.
type Batch struct {
	States     [][][]float64
	Actions    [][]int
	Rewards    [][]float32
	Dones      [][]bool
	NextStates [][][]float64
}

// Len returns the number of episodes in the Batch
func (b Batch) Len() int {
	return len(b.Actions)
}

// RolloutCollector implements a bounded FIFO queue of completed
// episodes. Appending to a full collector silently evicts the oldest
// episode, so Append never fails.
type RolloutCollector struct {
	buffer []rollout.Experience

	currentInUsePos int
	isFull          bool
}

// New creates and returns a new RolloutCollector holding at most
// capacity episodes
func New(capacity int) (*RolloutCollector, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("new: capacity must be >= 1")
	}

	return &RolloutCollector{
		buffer:          make([]rollout.Experience, capacity),
		currentInUsePos: 0,
		isFull:          false,
	}, nil
}

// Append adds a completed episode to the collector. If the collector
// is at capacity, the oldest episode is evicted.
func (r *RolloutCollector) Append(exp rollout.Experience) {
	r.buffer[r.currentInUsePos] = exp

	r.currentInUsePos = (r.currentInUsePos + 1) % r.Capacity()
	if r.currentInUsePos == 0 {
		r.isFull = true
	}
}

// Sample returns every buffered episode as five parallel ragged
// arrays in insertion order, oldest first. Sampling an empty
// collector is an error which IsEmptyBuffer reports true for.
func (r *RolloutCollector) Sample() (Batch, error) {
	if r.Len() == 0 {
		err := &CollectorError{
			Op:  "sample",
			Err: errEmptyBuffer,
		}
		return Batch{}, err
	}

	n := r.Len()
	batch := Batch{
		States:     make([][][]float64, n),
		Actions:    make([][]int, n),
		Rewards:    make([][]float32, n),
		Dones:      make([][]bool, n),
		NextStates: make([][][]float64, n),
	}

	for i, index := range r.insertOrder() {
		exp := r.buffer[index]

		rewards := make([]float32, exp.Len())
		for j, reward := range exp.Rewards {
			rewards[j] = float32(reward)
		}

		batch.States[i] = exp.States
		batch.Actions[i] = exp.Actions
		batch.Rewards[i] = rewards
		batch.Dones[i] = exp.Dones
		batch.NextStates[i] = exp.NextStates
	}

	return batch, nil
}

// EmptyBuffer clears the collector to zero length
func (r *RolloutCollector) EmptyBuffer() {
	r.buffer = make([]rollout.Experience, r.Capacity())
	r.currentInUsePos = 0
	r.isFull = false
}

// Len returns the current number of buffered episodes
func (r *RolloutCollector) Len() int {
	if r.isFull {
		return r.Capacity()
	}
	return r.currentInUsePos
}

// Capacity returns the maximum number of episodes the collector holds
func (r *RolloutCollector) Capacity() int {
	return len(r.buffer)
}

// insertOrder returns the buffer indices of every buffered episode in
// insertion order, oldest first
func (r *RolloutCollector) insertOrder() []int {
	indices := make([]int, 0, r.Len())

	if !r.isFull {
		for i := 0; i < r.currentInUsePos; i++ {
			indices = append(indices, i)
		}
		return indices
	}

	for i := r.currentInUsePos; i < r.Capacity(); i++ {
		indices = append(indices, i)
	}
	for i := 0; i < r.currentInUsePos; i++ {
		indices = append(indices, i)
	}
	return indices
}
