package trainer

import "time"

// Result contains statistics about a training run
type Result struct {
	InitialLoss     float64       `json:"initialLoss"`     // Loss before the first iteration
	FinalLoss       float64       `json:"finalLoss"`       // Loss at the returned parameters
	Parameters      []float64     `json:"parameters"`      // Best coefficients, in optics.ParameterVector order
	Iterations      int           `json:"iterations"`      // Major iterations performed
	FuncEvaluations int           `json:"funcEvaluations"` // Loss-only forward passes
	GradEvaluations int           `json:"gradEvaluations"` // Gradient evaluations, each one seeded pass per coefficient
	Status          string        `json:"status"`          // Why the optimizer stopped
	Duration        time.Duration `json:"durationNs"`      // Wall clock time
}

// Improvement returns the fraction of the initial loss removed by training
func (r Result) Improvement() float64 {
	if r.InitialLoss == 0 {
		return 0
	}
	return 1 - r.FinalLoss/r.InitialLoss
}
