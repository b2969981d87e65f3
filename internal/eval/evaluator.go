package eval

import (
	"fmt"
	"runtime"

	"github.com/alitto/pond"
	"go.uber.org/zap"

	"fjspga/internal/fjsp"
	"fjspga/internal/ga"
)

// Evaluator computes makespans of chromosomes against one instance
type Evaluator struct {
	inst    *fjsp.Instance
	workers int
	pool    *pond.WorkerPool
	logger  *zap.Logger
}

// NewEvaluator creates an evaluator. workers <= 0 uses one worker per CPU;
// workers == 1 evaluates sequentially without a pool.
func NewEvaluator(inst *fjsp.Instance, workers int, logger *zap.Logger) *Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Evaluator{
		inst:    inst,
		workers: workers,
		logger:  logger,
	}
	if workers > 1 {
		e.pool = pond.New(workers, 0)
	}
	return e
}

// Close stops the worker pool
func (e *Evaluator) Close() {
	if e.pool != nil {
		e.pool.StopAndWait()
	}
}

// TimeTaken decodes a chromosome and returns its makespan
func (e *Evaluator) TimeTaken(c ga.Chromosome) (int, error) {
	return fjsp.Makespan(e.inst, c.OS, c.MS)
}

// Schedule decodes a chromosome into its machine schedule
func (e *Evaluator) Schedule(c ga.Chromosome) (*fjsp.Schedule, error) {
	return fjsp.Decode(e.inst, c.OS, c.MS)
}

// EvaluatePopulation decodes every chromosome and returns the evaluated
// population. Chromosomes are only read, so evaluation runs in parallel.
// The first decode failure, by population index, is returned.
func (e *Evaluator) EvaluatePopulation(chromosomes []ga.Chromosome) (*ga.Population, error) {
	makespans := make([]int, len(chromosomes))
	errs := make([]error, len(chromosomes))

	if e.pool == nil {
		for i, c := range chromosomes {
			makespans[i], errs[i] = e.TimeTaken(c)
		}
	} else {
		group := e.pool.Group()
		for i := range chromosomes {
			group.Submit(func() {
				makespans[i], errs[i] = e.TimeTaken(chromosomes[i])
			})
		}
		group.Wait()
	}

	for i, err := range errs {
		if err != nil {
			e.logger.Debug("chromosome failed to decode", zap.Int("index", i), zap.Error(err))
			return nil, fmt.Errorf("evaluate individual %d: %w", i, err)
		}
	}
	return ga.NewPopulation(chromosomes, makespans), nil
}
