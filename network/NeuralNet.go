// Package network implements policy and action-value networks used to
// drive experience collection. Networks are treated as opaque
// collaborators: rollout agents only ever run them forward.
package network

// NeuralNet is the contract between rollout agents and the networks
// they query for actions. A NeuralNet maps a batch of observations to
// a batch of per-action outputs: action logits for policy networks, or
// action values for Q networks.
//
// Predict is inference-only. No gradients are computed or stored, so
// experience collection is fully decoupled from whatever optimization
// pass later consumes the collected data.
type NeuralNet interface {
	// Predict runs the forward pass on a row-major batch of
	// BatchSize() observations of Features() features each, returning
	// a row-major batch of BatchSize() x Outputs() values
	Predict(states []float64) ([]float64, error)

	// Features returns the number of input features per observation
	Features() int

	// Outputs returns the number of output values per observation
	Outputs() int

	// BatchSize returns the batch size of the network input
	BatchSize() int
}
