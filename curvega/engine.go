package curvega

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// State is a phase of the generational loop.
type State int

const (
	StateInitializing State = iota
	StateEvaluating
	StateSelecting
	StateReproducing
	StateReplacing
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateEvaluating:
		return "evaluating"
	case StateSelecting:
		return "selecting"
	case StateReproducing:
		return "reproducing"
	case StateReplacing:
		return "replacing"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TerminationReason tells why a run stopped.
type TerminationReason string

const (
	ReasonPerfectFitness TerminationReason = "perfect_fitness"
	ReasonGenerationCap  TerminationReason = "generation_cap"
)

// MaxFitness is the score of a curve that classifies every point correctly.
const MaxFitness = 1.0

// Result is everything a finished run exposes to export and plotting sinks.
type Result struct {
	RunID       string
	Seed        int64
	Config      Config
	Reason      TerminationReason
	Generations int // index of the last evaluated generation
	Best        BestTracker
	History     *History
	Positive    *PointSet
	Negative    *PointSet
	Elapsed     time.Duration
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithPointSets supplies explicit point sets instead of generating them from the config.
// Both must be non-nil; pass an empty set built with NewPointSet for a missing label.
func WithPointSets(positive, negative *PointSet) Option {
	return func(e *Engine) {
		e.positive = positive
		e.negative = negative
	}
}

// WithRand supplies the random source. Config.Run.Seed is then only recorded.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// Engine runs the generational loop as an explicit state machine.
type Engine struct {
	config   *Config
	rng      *rand.Rand
	seed     int64
	logger   *slog.Logger
	positive *PointSet
	negative *PointSet

	state        State
	population   *Population
	evaluator    *Evaluator
	reproduction *Reproduction
	picker       Picker
	children     []*Curve
	best         BestTracker
	history      *History
	reason       TerminationReason
}

// NewEngine validates the config and prepares a run.
func NewEngine(config *Config, opts ...Option) (*Engine, error) {
	if config == nil {
		return nil, configErrorf("", "config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config:  config,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		history: &History{},
		state:   StateInitializing,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.seed = config.Run.Seed
	if e.seed == 0 {
		e.seed = time.Now().UnixNano()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(e.seed))
	}
	return e, nil
}

// State returns the current phase of the loop.
func (e *Engine) State() State { return e.state }

// Run drives the state machine to termination and returns the result.
// An Engine runs once.
func (e *Engine) Run() (*Result, error) {
	if e.state != StateInitializing {
		return nil, fmt.Errorf("engine already ran (state %s)", e.state)
	}
	runID := uuid.NewString()
	logger := e.logger.With("run", runID)
	start := time.Now()

	logger.Info("starting run",
		"seed", e.seed,
		"degree", e.config.Curve.Degree,
		"population", e.config.Run.PopulationSize,
		"max_generations", e.config.Run.MaxGenerations,
		"selection", e.config.Selection.Strategy,
		"crossover", e.config.Crossover.Strategy,
		"mutation", e.config.Mutation.Strategy)

	for e.state != StateTerminated {
		if err := e.step(logger); err != nil {
			return nil, err
		}
	}

	result := &Result{
		RunID:       runID,
		Seed:        e.seed,
		Config:      *e.config,
		Reason:      e.reason,
		Generations: e.population.Generation(),
		Best:        e.best.Snapshot(),
		History:     e.history,
		Positive:    e.positive,
		Negative:    e.negative,
		Elapsed:     time.Since(start),
	}
	logger.Info("run finished",
		"reason", result.Reason,
		"generations", result.Generations,
		"best_generation", result.Best.Generation,
		"best_fitness", result.Best.Fitness,
		"best_curve", FormatPolynomial(result.Best.Coefficients),
		"elapsed", result.Elapsed)
	return result, nil
}

// step runs the handler of the current state and moves to the state it returns.
func (e *Engine) step(logger *slog.Logger) error {
	var (
		next State
		err  error
	)
	switch e.state {
	case StateInitializing:
		next, err = e.initialize()
	case StateEvaluating:
		next, err = e.evaluate(logger)
	case StateSelecting:
		next, err = e.selectParents()
	case StateReproducing:
		next, err = e.reproduce()
	case StateReplacing:
		next, err = e.replace()
	default:
		err = fmt.Errorf("unknown state %s", e.state)
	}
	if err != nil {
		return fmt.Errorf("%s failed in generation %d: %w", e.state, e.generation(), err)
	}
	logger.Debug("state transition", "from", e.state, "to", next, "generation", e.generation())
	e.state = next
	return nil
}

func (e *Engine) generation() int {
	if e.population == nil {
		return 0
	}
	return e.population.Generation()
}

func (e *Engine) initialize() (State, error) {
	if e.positive == nil || e.negative == nil {
		if err := e.generatePointSets(); err != nil {
			return 0, err
		}
	}

	evaluator, err := NewEvaluator(e.positive, e.negative, e.config.Run.Workers)
	if err != nil {
		return 0, err
	}
	e.evaluator = evaluator

	e.reproduction, err = NewReproduction(e.config, evaluator)
	if err != nil {
		return 0, err
	}

	c := e.config.Curve
	e.population, err = NewRandomPopulation(e.config.Run.PopulationSize, c.Degree, c.CoefficientMin, c.CoefficientMax, e.rng)
	if err != nil {
		return 0, err
	}
	return StateEvaluating, nil
}

func (e *Engine) generatePointSets() error {
	pc := e.config.Points
	var err error
	if len(pc.Reference) > 0 {
		e.positive, err = NewReferencePointSet(pc.PositiveCount, true, pc.Bounds(), pc.Reference, e.rng)
		if err != nil {
			return err
		}
		e.negative, err = NewReferencePointSet(pc.NegativeCount, false, pc.Bounds(), pc.Reference, e.rng)
		return err
	}
	e.positive, err = NewRandomPointSet(pc.PositiveCount, true, pc.Bounds(), e.rng)
	if err != nil {
		return err
	}
	e.negative, err = NewRandomPointSet(pc.NegativeCount, false, pc.Bounds(), e.rng)
	return err
}

func (e *Engine) evaluate(logger *slog.Logger) (State, error) {
	if err := e.evaluator.EvaluatePopulation(e.population); err != nil {
		return 0, err
	}

	gen := e.population.Generation()
	for _, c := range e.population.curves {
		e.best.Observe(c, gen)
	}

	stats := Summarize(gen, e.population.Fitnesses())
	e.history.Append(stats)

	attrs := []any{
		"generation", gen,
		"best", stats.Best,
		"worst", stats.Worst,
		"average", stats.Average,
	}
	// Children are observed while they are spawned, so a new best shows up here as a
	// record carrying this generation's number.
	if e.best.Found() && e.best.Generation == gen {
		attrs = append(attrs, "new_best", FormatPolynomial(e.best.Coefficients), "new_best_fitness", e.best.Fitness)
	}
	if top := e.population.findBestCurve(); top != nil {
		attrs = append(attrs, "generation_best", top.String())
	}
	logger.Info("generation evaluated", attrs...)

	switch {
	case stats.Best >= MaxFitness:
		e.reason = ReasonPerfectFitness
		return StateTerminated, nil
	case gen >= e.config.Run.MaxGenerations:
		e.reason = ReasonGenerationCap
		return StateTerminated, nil
	}
	return StateSelecting, nil
}

func (e *Engine) selectParents() (State, error) {
	picker, err := e.reproduction.Selector.Prepare(e.population)
	if err != nil {
		return 0, err
	}
	e.picker = picker
	return StateReproducing, nil
}

func (e *Engine) reproduce() (State, error) {
	children, err := e.reproduction.Spawn(e.picker, e.config.Run.PopulationSize, e.population.Generation()+1, e.rng, &e.best)
	if err != nil {
		return 0, err
	}
	e.children = children
	e.picker = nil
	return StateReplacing, nil
}

func (e *Engine) replace() (State, error) {
	next, err := NewPopulation(e.children, e.population.Generation()+1)
	if err != nil {
		return 0, err
	}
	e.population = next
	e.children = nil
	return StateEvaluating, nil
}
