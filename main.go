package main

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/spatial/r1"
	G "gorgonia.org/gorgonia"

	"github.com/AGKhalil/bast/collector"
	"github.com/AGKhalil/bast/datastream"
	env "github.com/AGKhalil/bast/environment"
	"github.com/AGKhalil/bast/environment/classiccontrol/cartpole"
	"github.com/AGKhalil/bast/environment/vector"
	"github.com/AGKhalil/bast/network"
	"github.com/AGKhalil/bast/rollout"
	"github.com/AGKhalil/bast/utils/progressbar"
)

func main() {
	var seed uint64 = 192382
	numLanes := 4
	batches := 50

	// Create the vectorized cartpole environment
	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	envs := make([]env.Environment, numLanes)
	for i := range envs {
		s := env.NewUniformStarter([]r1.Interval{bounds, bounds, bounds,
			bounds}, seed+uint64(i))

		var err error
		envs[i], err = cartpole.New(s)
		if err != nil {
			log.Fatal(err)
		}
	}
	vecEnv, err := vector.New(envs...)
	if err != nil {
		log.Fatal(err)
	}

	// Create the Q network driving ε-greedy action selection
	features := vecEnv.ObservationSpec().Shape.Len()
	numActions := vecEnv.ActionSpec().NumActions()
	net, err := network.NewMLP(features, numLanes, numActions, []int{64},
		[]bool{true}, G.GlorotU(1.0), []*network.Activation{network.ReLU()})
	if err != nil {
		log.Fatal(err)
	}
	defer net.Close()

	// Create the collector and the rollout agent feeding it
	coll, err := collector.New(16)
	if err != nil {
		log.Fatal(err)
	}

	config := rollout.GreedyConfig{
		EpsStart:  1.0,
		EpsEnd:    0.02,
		EpsFrames: 10_000,
	}
	agent, err := config.Create(vecEnv, coll, seed)
	if err != nil {
		log.Fatal(err)
	}

	stream, err := datastream.New(agent, coll, net, datastream.UntilAnyDone)
	if err != nil {
		log.Fatal(err)
	}

	// Pull batches of complete episodes, as a training loop would
	bar := progressbar.New(40, batches)
	totalEpisodes := 0
	totalSteps := 0
	for i := 0; i < batches; i++ {
		batch, err := stream.Next()
		if err != nil {
			log.Fatal(err)
		}

		totalEpisodes += batch.Len()
		for _, rewards := range batch.Rewards {
			totalSteps += len(rewards)
		}

		bar.Increment()
		bar.Display()
	}
	bar.Close()

	fmt.Printf("collected %v episodes (%v transitions) over %v batches, "+
		"final ε = %.3f\n", totalEpisodes, totalSteps, batches,
		agent.Epsilon())
}
