// Package evolution runs the generational loop: evaluate, check termination,
// then selection, crossover and mutation with fixed or adaptive rates.
package evolution

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"fjspga/internal/config"
	"fjspga/internal/eval"
	"fjspga/internal/fjsp"
	"fjspga/internal/ga"
	"fjspga/internal/rl"
)

// State of the driver
type State int

const (
	Initializing State = iota
	Evaluating
	Terminated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Evaluating:
		return "evaluating"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Driver runs the optimizer for one instance
type Driver struct {
	Cfg config.Config
	Rng *rand.Rand

	// Observe, when set, receives every generation record
	Observe func(Record)

	logger *zap.Logger
	state  State
	runID  string
}

// New returns a driver with a validated configuration
func New(cfg config.Config, rng *rand.Rand, logger *zap.Logger) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("random source is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{Cfg: cfg, Rng: rng, logger: logger, runID: uuid.NewString()}, nil
}

// RunID identifies the driver's run in logs and artifacts
func (d *Driver) RunID() string {
	return d.runID
}

// State returns the driver's current state
func (d *Driver) State() State {
	return d.state
}

// Run evolves a population for inst until a termination condition holds.
// Cancelling ctx stops the run at the next generation boundary.
func (d *Driver) Run(ctx context.Context, inst *fjsp.Instance) (Result, error) {
	start := time.Now()
	d.state = Initializing
	res := Result{RunID: d.runID, BestMakespan: -1}

	finish := func(reason string, err error) (Result, error) {
		d.state = Terminated
		res.Stopped = reason
		res.Elapsed = time.Since(start)
		if res.Population != nil {
			res.Population.SortByMakespan()
		}
		d.logger.Info("run finished",
			zap.String("run_id", res.RunID),
			zap.String("reason", reason),
			zap.Int("generations", res.Generations),
			zap.Int("best_makespan", res.BestMakespan),
			zap.Duration("elapsed", res.Elapsed),
		)
		return res, err
	}

	if err := inst.Validate(); err != nil {
		return finish(StopError, err)
	}

	cfg := d.Cfg
	popSize := cfg.GA.Population
	jobCount := inst.JobCount()
	altCounts := inst.AlternativeCounts()

	var ctrl *rl.Controller
	if cfg.IsAdaptive() {
		var err error
		ctrl, err = rl.NewController(rl.Params{
			States:       popSize,
			Pc:           rl.Range{Low: cfg.Adaptive.PcLow, High: cfg.Adaptive.PcHigh},
			Pm:           rl.Range{Low: cfg.Adaptive.PmLow, High: cfg.Adaptive.PmHigh},
			Epsilon:      cfg.Adaptive.Epsilon,
			Alpha:        cfg.Adaptive.Alpha,
			Gamma:        cfg.Adaptive.Gamma,
			SwitchFactor: cfg.Adaptive.SwitchFactor,
		}, d.Rng)
		if err != nil {
			return finish(StopError, err)
		}
	}

	evaluator := eval.NewEvaluator(inst, cfg.GA.Workers, d.logger)
	defer evaluator.Close()

	pop, err := evaluator.EvaluatePopulation(ga.InitializePopulation(inst, popSize, d.Rng))
	if err != nil {
		return finish(StopError, fmt.Errorf("initial population: %w", err))
	}
	res.Population = pop

	d.logger.Info("run started",
		zap.String("run_id", res.RunID),
		zap.String("mode", cfg.GA.Mode),
		zap.Int("jobs", jobCount),
		zap.Int("machines", inst.MachineCount),
		zap.Int("operations", inst.OperationCount()),
		zap.Int("population", popSize),
	)

	d.state = Evaluating
	noImprovement := 0
	for gen := 1; ; gen++ {
		best := pop.Best()
		if res.BestMakespan < 0 || best.Makespan < res.BestMakespan {
			res.Best = best.Chromosome.Clone()
			res.BestMakespan = best.Makespan
			noImprovement = 0
		} else {
			noImprovement++
		}

		rec := d.summarize(gen, pop, res.BestMakespan)

		if err := ctx.Err(); err != nil {
			d.emit(&res, rec)
			return finish(StopContext, err)
		}
		if gen > cfg.GA.MaxGenerations {
			d.emit(&res, rec)
			return finish(StopMaxGenerations, nil)
		}
		if ctrl != nil && noImprovement >= cfg.Adaptive.NoImprovementLimit {
			d.emit(&res, rec)
			return finish(StopNoImprovement, nil)
		}

		pc, pm := cfg.GA.CrossoverRate, cfg.GA.MutationRate
		var decision rl.Decision
		if ctrl != nil {
			decision, err = ctrl.Decide(gen)
			if err != nil {
				d.emit(&res, rec)
				return finish(StopError, err)
			}
			pc, pm = decision.Pc, decision.Pm
		}

		selected := ga.Selection(pop, cfg.GA.KeepFraction, d.Rng)
		crossed := ga.Crossover(selected, jobCount, pc, d.Rng)
		mutated := ga.Mutation(crossed, altCounts, pm, d.Rng)

		next, err := evaluator.EvaluatePopulation(mutated)
		if err != nil {
			d.emit(&res, rec)
			return finish(StopError, fmt.Errorf("generation %d: %w", gen, err))
		}

		rec.Pc, rec.Pm = pc, pm
		if ctrl != nil {
			u := ctrl.Learn(gen, decision, best.Makespan, next.Best().Makespan)
			rec.Action = u.Action.String()
			rec.Reward = u.Reward
			rec.Policy = u.Policy.String()
		}
		d.emit(&res, rec)

		pop = next
		res.Population = pop
		res.Generations = gen
	}
}

func (d *Driver) summarize(gen int, pop *ga.Population, bestEver int) Record {
	makespans := pop.Makespans()
	values := make([]float64, len(makespans))
	for i, m := range makespans {
		values[i] = float64(m)
	}
	mean, std := stat.MeanStdDev(values, nil)

	return Record{
		Generation:   gen,
		BestMakespan: pop.Best().Makespan,
		MeanMakespan: mean,
		StdMakespan:  std,
		BestEver:     bestEver,
	}
}

func (d *Driver) emit(res *Result, rec Record) {
	res.Records = append(res.Records, rec)
	if d.Cfg.Logging.EveryGenSummary {
		d.logger.Info("generation",
			zap.Int("gen", rec.Generation),
			zap.Int("best", rec.BestMakespan),
			zap.Float64("mean", rec.MeanMakespan),
			zap.Float64("std", rec.StdMakespan),
			zap.Float64("pc", rec.Pc),
			zap.Float64("pm", rec.Pm),
			zap.String("action", rec.Action),
			zap.Float64("reward", rec.Reward),
		)
	}
	if d.Observe != nil {
		d.Observe(rec)
	}
}
