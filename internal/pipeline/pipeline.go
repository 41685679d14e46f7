package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrUnknownStage is returned when a stage name has not been registered.
	ErrUnknownStage = errors.New("unknown stage")

	// ErrDependencyCount is returned when a filter gets a different number of
	// dependencies than it expects.
	ErrDependencyCount = errors.New("dependency count mismatch")

	// ErrDuplicateStage is returned when a stage name is registered twice.
	ErrDuplicateStage = errors.New("duplicate stage")
)

// Filter is one processing step of the vision pipeline.
type Filter interface {
	// Name returns a stable identifier of the filter kind.
	Name() string

	// ExpectedDependencies returns how many inputs Process requires.
	ExpectedDependencies() int

	// Process consumes the outputs of the filter's dependencies and returns
	// its own output.
	Process(deps []any) (any, error)
}

// stage binds a filter instance to the stages it depends on.
type stage struct {
	name   string
	filter Filter
	deps   []string
}

// Runner executes stages sequentially in registration order.
//
// A Runner is not safe for concurrent use.
type Runner struct {
	log     zerolog.Logger
	stages  []stage
	index   map[string]int
	outputs map[string]any
}

// NewRunner creates an empty runner logging to log.
func NewRunner(log zerolog.Logger) *Runner {
	return &Runner{
		log:     log,
		index:   make(map[string]int),
		outputs: make(map[string]any),
	}
}

// Add registers filter under name, consuming the outputs of deps.
// Every dependency must already be registered.
func (r *Runner) Add(name string, filter Filter, deps ...string) error {
	if _, ok := r.index[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateStage, name)
	}
	for _, d := range deps {
		if _, ok := r.index[d]; !ok {
			return fmt.Errorf("%w: %s (dependency of %s)", ErrUnknownStage, d, name)
		}
	}
	if want := filter.ExpectedDependencies(); want != len(deps) {
		return fmt.Errorf("%w: %s (%s) expects %d dependencies, got %d",
			ErrDependencyCount, name, filter.Name(), want, len(deps))
	}
	r.index[name] = len(r.stages)
	r.stages = append(r.stages, stage{name: name, filter: filter, deps: deps})
	return nil
}

// Step runs every stage once. Outputs of the previous step are discarded
// first, so a failed step leaves only the outputs of the stages that ran.
func (r *Runner) Step() error {
	for k := range r.outputs {
		delete(r.outputs, k)
	}
	for _, s := range r.stages {
		deps := make([]any, len(s.deps))
		for i, d := range s.deps {
			deps[i] = r.outputs[d]
		}

		start := time.Now()
		out, err := s.filter.Process(deps)
		if err != nil {
			return fmt.Errorf("stage %s (%s) failed: %w", s.name, s.filter.Name(), err)
		}
		r.outputs[s.name] = out

		r.log.Debug().
			Str("stage", s.name).
			Str("filter", s.filter.Name()).
			Dur("elapsed", time.Since(start)).
			Msg("stage processed")
	}
	return nil
}

// Output returns the output of stage name from the last Step.
func (r *Runner) Output(name string) (any, error) {
	out, ok := r.outputs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, name)
	}
	return out, nil
}

// Stages returns the registered stage names in execution order.
func (r *Runner) Stages() []string {
	names := make([]string, len(r.stages))
	for i, s := range r.stages {
		names[i] = s.name
	}
	return names
}
