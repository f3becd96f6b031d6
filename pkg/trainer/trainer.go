package trainer

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/optics"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ErrNoParameters is returned when a system has nothing to optimize
var ErrNoParameters = errors.New("trainer: no learnable parameters")

// Config contains configuration for a training run
type Config struct {
	Iterations int             `json:"iterations"` // Maximum number of optimizer iterations
	Sampling   optics.Sampling `json:"sampling"`   // Zero value uses the scene's sampling
	Method     string          `json:"method"`     // gradient-descent, bfgs, lbfgs or nelder-mead
	LogEvery   int             `json:"logEvery"`   // Log every n iterations (0 = never)
	NumWorkers int             `json:"numWorkers"` // Parallel scenes in TrainScenes (0 = use CPU count)

	// OnIteration is called after every major iteration with the system set to
	// the current coefficients. A non-nil error stops training.
	OnIteration func(Progress) error `json:"-"`
}

// Progress describes the optimizer state after a major iteration
type Progress struct {
	Iteration  int       `json:"iteration"`
	Loss       float64   `json:"loss"`
	Parameters []float64 `json:"parameters"`
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Iterations: 100,
		Method:     "bfgs",
		LogEvery:   10,
		NumWorkers: 0,
	}
}

func (c Config) method() (optimize.Method, error) {
	switch c.Method {
	case "gradient-descent":
		return &optimize.GradientDescent{}, nil
	case "bfgs", "":
		return &optimize.BFGS{}, nil
	case "lbfgs":
		return &optimize.LBFGS{}, nil
	case "nelder-mead":
		return &optimize.NelderMead{}, nil
	}
	return nil, fmt.Errorf("trainer: unknown method %q", c.Method)
}

// Run minimizes the loss of an optical system over its learnable
// coefficients. The system is left at the best coefficients found.
func Run(model optics.Element, config Config, logger core.Logger) (Result, error) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	method, err := config.method()
	if err != nil {
		return Result{}, err
	}
	// gonum treats a zero iteration limit as unlimited
	if config.Iterations < 1 {
		return Result{}, fmt.Errorf("trainer: iterations must be at least 1, got %d", config.Iterations)
	}

	params := optics.Parameters(model)
	x0 := optics.ParameterVector(params)
	if len(x0) == 0 {
		return Result{}, ErrNoParameters
	}

	sampling := config.Sampling
	if sampling == (optics.Sampling{}) {
		sampling = optics.DefaultSampling()
	}
	set := func(x []float64) {
		if err := optics.SetParameterVector(params, x); err != nil {
			panic(err)
		}
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			set(x)
			return optics.Loss(model, sampling)
		},
		Grad: func(grad, x []float64) {
			set(x)
			_, g := optics.LossAndGradient(model, sampling)
			copy(grad, g)
		},
	}

	startTime := time.Now()
	initial := optics.Loss(model, sampling)
	logger.Printf("Training %d parameters with %s, initial loss %.6g\n", len(x0), config.Method, initial)

	settings := &optimize.Settings{
		MajorIterations: config.Iterations,
		Recorder: &progressRecorder{
			logger:   logger,
			every:    config.LogEvery,
			set:      set,
			callback: config.OnIteration,
		},
	}
	res, err := optimize.Minimize(problem, x0, settings, method)
	if err != nil && res == nil {
		set(x0)
		return Result{}, fmt.Errorf("trainer: %w", err)
	}

	set(res.X)
	result := Result{
		InitialLoss:     initial,
		FinalLoss:       res.F,
		Parameters:      append([]float64(nil), res.X...),
		Iterations:      res.Stats.MajorIterations,
		FuncEvaluations: res.Stats.FuncEvaluations,
		GradEvaluations: res.Stats.GradEvaluations,
		Status:          res.Status.String(),
		Duration:        time.Since(startTime),
	}
	logger.Printf("Training finished after %d iterations (%s): loss %.6g -> %.6g in %v\n",
		result.Iterations, result.Status, result.InitialLoss, result.FinalLoss, result.Duration)
	if err != nil {
		// The optimizer stopped early but still reports its best location
		logger.Printf("Optimizer stopped: %v\n", err)
	}
	return result, nil
}

// progressRecorder logs the loss at major iterations
type progressRecorder struct {
	logger   core.Logger
	every    int
	set      func(x []float64)
	callback func(Progress) error
}

func (r *progressRecorder) Init() error {
	return nil
}

func (r *progressRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op&optimize.MajorIteration == 0 {
		return nil
	}
	if r.every > 0 && stats.MajorIterations%r.every == 0 {
		r.logger.Printf("  iteration %d: loss %.6g\n", stats.MajorIterations, loc.F)
	}
	if r.callback == nil {
		return nil
	}
	r.set(loc.X)
	return r.callback(Progress{
		Iteration:  stats.MajorIterations,
		Loss:       loc.F,
		Parameters: append([]float64(nil), loc.X...),
	})
}
