// Package datastream implements an iterable feed of episode batches.
// Each request runs the rollout agent until episodes complete, then
// samples the collector once, producing the batch consumed by one
// training iteration.
package datastream

import (
	"fmt"

	"github.com/AGKhalil/bast/collector"
	"github.com/AGKhalil/bast/network"
	"github.com/AGKhalil/bast/rollout"
)

// TerminationMode determines when a populate pass stops stepping the
// agent. Populate passes always run whole steps across all lanes, so
// either mode leaves at least one completed episode in the collector.
type TerminationMode int

const (
	// UntilAnyDone stops a populate pass as soon as any lane reports
	// an episode boundary
	UntilAnyDone TerminationMode = iota

	// UntilAllDone stops a populate pass once every lane has reported
	// an episode boundary at least once during the pass
	UntilAllDone
)

// DataStream repeatedly drives a rollout agent to collect complete
// episodes and serves them as batches. Each call to Next is an
// independent populate pass: the collector is cleared, the agent is
// stepped until the termination condition holds, and the collector is
// sampled once.
type DataStream struct {
	agent     rollout.StepPlayer
	collector *collector.RolloutCollector
	net       network.NeuralNet
	mode      TerminationMode
}

// New creates and returns a new DataStream. The net parameter is the
// shared policy or action-value network passed to the agent on every
// step; the DataStream never mutates it.
func New(agent rollout.StepPlayer, coll *collector.RolloutCollector,
	net network.NeuralNet, mode TerminationMode) (*DataStream, error) {
	if agent == nil {
		return nil, fmt.Errorf("new: agent cannot be nil")
	}
	if coll == nil {
		return nil, fmt.Errorf("new: collector cannot be nil")
	}
	if net == nil {
		return nil, fmt.Errorf("new: net cannot be nil")
	}

	return &DataStream{
		agent:     agent,
		collector: coll,
		net:       net,
		mode:      mode,
	}, nil
}

// Next runs one populate pass and returns the resulting batch of
// episodes. Any error stepping the agent aborts the pass and
// propagates to the caller.
func (d *DataStream) Next() (collector.Batch, error) {
	d.collector.EmptyBuffer()

	if err := d.populate(); err != nil {
		return collector.Batch{}, fmt.Errorf("next: could not populate "+
			"collector: %v", err)
	}

	return d.collector.Sample()
}

// populate steps the agent until the termination condition holds
func (d *DataStream) populate() error {
	var doneSeen []bool

	for {
		_, dones, err := d.agent.PlayStep(d.net)
		if err != nil {
			return err
		}

		if doneSeen == nil {
			doneSeen = make([]bool, len(dones))
		}
		for i, done := range dones {
			doneSeen[i] = doneSeen[i] || done
		}

		if d.finished(doneSeen, dones) {
			return nil
		}
	}
}

// finished reports whether a populate pass is complete given the
// boundary flags of the last step and of the whole pass
func (d *DataStream) finished(doneSeen, dones []bool) bool {
	switch d.mode {
	case UntilAllDone:
		for _, done := range doneSeen {
			if !done {
				return false
			}
		}
		return true
	default:
		for _, done := range dones {
			if done {
				return true
			}
		}
		return false
	}
}
