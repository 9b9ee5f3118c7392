package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// MLP implements a multi-layered perceptron satisfying the NeuralNet
// interface. The input is an explicit [batch, features] matrix: one
// row per observation in the batch, so vectorized environments with N
// lanes use batch = N.
//
// The network always appends a final linear layer with a bias unit and
// no activation, so that the output is a [batch, outputs] matrix
// regardless of the hidden layer sizes.
type MLP struct {
	g      *G.ExprGraph
	layers []*fcLayer
	vm     G.VM

	input      *G.Node
	prediction *G.Node
	predVal    G.Value

	numInputs  int
	numOutputs int
	batchSize  int
}

// NewMLP creates and returns a new multi-layered perceptron mapping
// batches of observations with a number of features equal to features
// to batches of outputs values, one per action.
//
// The MLP has a number of layers equal to len(hiddenSizes) + 1. For
// index i, hiddenSizes[i] is the number of units in hidden layer i;
// biases[i] is true if hidden layer i has a bias unit; and
// activations[i] is the activation function of hidden layer i. The
// init parameter determines the weight initialization scheme.
func NewMLP(features, batch, outputs int, hiddenSizes []int, biases []bool,
	init G.InitWFn, activations []*Activation) (*MLP, error) {
	if features <= 0 {
		return nil, fmt.Errorf("newmlp: features must be > 0")
	}
	if batch <= 0 {
		return nil, fmt.Errorf("newmlp: batch must be > 0")
	}
	if outputs <= 0 {
		return nil, fmt.Errorf("newmlp: outputs must be > 0")
	}

	// Ensure one activation per hidden layer
	if len(hiddenSizes) != len(activations) {
		msg := "newmlp: invalid number of activations\n\twant(%d)\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(activations))
	}

	// Ensure one bias bool per hidden layer
	if len(hiddenSizes) != len(biases) {
		msg := "newmlp: invalid number of biases\n\twant(%d)\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(biases))
	}

	// Final linear layer predicting the output heads
	hiddenSizes = append(append([]int{}, hiddenSizes...), outputs)
	biases = append(append([]bool{}, biases...), true)
	activations = append(append([]*Activation{}, activations...), Identity())

	g := G.NewGraph()
	input := G.NewMatrix(g, tensor.Float64, G.WithShape(batch, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	layers := addfcLayers(g, hiddenSizes, biases, activations, init, features)

	net := &MLP{
		g:          g,
		layers:     layers,
		input:      input,
		numInputs:  features,
		numOutputs: outputs,
		batchSize:  batch,
	}

	// Build the forward pass once; Predict only ever re-runs it
	pred := input
	var err error
	for _, layer := range layers {
		if pred, err = layer.fwd(pred); err != nil {
			return nil, fmt.Errorf("newmlp: could not compute forward "+
				"pass: %v", err)
		}
	}
	net.prediction = pred
	G.Read(net.prediction, &net.predVal)

	net.vm = G.NewTapeMachine(g)

	return net, nil
}

// Predict runs the forward pass on a row-major batch of observations
// and returns the row-major [batch, outputs] network output
func (m *MLP) Predict(states []float64) ([]float64, error) {
	if len(states) != m.batchSize*m.numInputs {
		return nil, fmt.Errorf("predict: invalid input length "+
			"\n\twant(%v)\n\thave(%v)", m.batchSize*m.numInputs, len(states))
	}

	backing := make([]float64, len(states))
	copy(backing, states)
	input := tensor.NewDense(
		tensor.Float64,
		[]int{m.batchSize, m.numInputs},
		tensor.WithBacking(backing),
	)

	if err := G.Let(m.input, input); err != nil {
		return nil, fmt.Errorf("predict: could not set input: %v", err)
	}
	if err := m.vm.RunAll(); err != nil {
		return nil, fmt.Errorf("predict: could not run forward pass: %v", err)
	}

	output := m.predVal.Data().([]float64)
	prediction := make([]float64, len(output))
	copy(prediction, output)

	m.vm.Reset()

	return prediction, nil
}

// Features returns the number of input features per observation
func (m *MLP) Features() int {
	return m.numInputs
}

// Outputs returns the number of output values per observation
func (m *MLP) Outputs() int {
	return m.numOutputs
}

// BatchSize returns the batch size of the network input
func (m *MLP) BatchSize() int {
	return m.batchSize
}

// Close cleans up the resources used by the network's virtual machine
func (m *MLP) Close() error {
	return m.vm.Close()
}
