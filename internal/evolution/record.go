package evolution

import (
	"time"

	"fjspga/internal/ga"
)

// Record summarises one generation
type Record struct {
	Generation   int     `json:"generation" csv:"generation"`
	BestMakespan int     `json:"best_makespan" csv:"best_makespan"`
	MeanMakespan float64 `json:"mean_makespan" csv:"mean_makespan"`
	StdMakespan  float64 `json:"std_makespan" csv:"std_makespan"`
	BestEver     int     `json:"best_ever" csv:"best_ever"`
	Pc           float64 `json:"pc" csv:"pc"`
	Pm           float64 `json:"pm" csv:"pm"`
	Action       string  `json:"action,omitempty" csv:"action"`
	Reward       float64 `json:"reward" csv:"reward"`
	Policy       string  `json:"policy,omitempty" csv:"policy"`
}

// Result is the outcome of a run. On failure it still carries the best
// solution and records gathered so far.
type Result struct {
	RunID        string
	Best         ga.Chromosome
	BestMakespan int
	Population   *ga.Population // sorted ascending by makespan
	Generations  int
	Records      []Record
	Elapsed      time.Duration
	Stopped      string
}

// Stop reasons
const (
	StopMaxGenerations = "max_generations"
	StopNoImprovement  = "no_improvement"
	StopContext        = "context"
	StopError          = "error"
)
