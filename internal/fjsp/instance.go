package fjsp

import (
	"errors"
	"fmt"
	"math/rand"
)

// Alternative is one machine able to run an operation, with its processing time
type Alternative struct {
	Machine        int `json:"machine"` // 1-indexed
	ProcessingTime int `json:"processing_time"`
}

// Operation lists the machines that can process it
type Operation struct {
	Alternatives []Alternative `json:"alternatives"`
}

// Job is an ordered sequence of operations
type Job struct {
	Operations []Operation `json:"operations"`
}

// Instance is an immutable FJSP problem
type Instance struct {
	MachineCount int   `json:"machine_count"`
	Jobs         []Job `json:"jobs"`
}

// NewInstance builds and validates an instance
func NewInstance(machineCount int, jobs []Job) (*Instance, error) {
	inst := &Instance{MachineCount: machineCount, Jobs: jobs}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Validate checks machine ids, processing times and non-empty structure
func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.MachineCount <= 0 {
		return fmt.Errorf("machine count must be > 0 (got %d)", inst.MachineCount)
	}
	if len(inst.Jobs) == 0 {
		return errors.New("instance has no jobs")
	}
	for j, job := range inst.Jobs {
		if len(job.Operations) == 0 {
			return fmt.Errorf("job %d has no operations", j)
		}
		for o, op := range job.Operations {
			if len(op.Alternatives) == 0 {
				return fmt.Errorf("job %d operation %d has no alternatives", j, o)
			}
			for a, alt := range op.Alternatives {
				if alt.Machine < 1 || alt.Machine > inst.MachineCount {
					return fmt.Errorf("job %d operation %d alternative %d: machine %d out of range [1,%d]",
						j, o, a, alt.Machine, inst.MachineCount)
				}
				if alt.ProcessingTime <= 0 {
					return fmt.Errorf("job %d operation %d alternative %d: processing time must be > 0 (got %d)",
						j, o, a, alt.ProcessingTime)
				}
			}
		}
	}
	return nil
}

// JobCount returns the number of jobs
func (inst *Instance) JobCount() int {
	return len(inst.Jobs)
}

// OperationCount returns the total number of operations across all jobs
func (inst *Instance) OperationCount() int {
	total := 0
	for _, job := range inst.Jobs {
		total += len(job.Operations)
	}
	return total
}

// Offsets returns, per job, the MS position of its first operation
func (inst *Instance) Offsets() []int {
	offsets := make([]int, len(inst.Jobs))
	total := 0
	for j, job := range inst.Jobs {
		offsets[j] = total
		total += len(job.Operations)
	}
	return offsets
}

// OperationAt returns the (job, operation) addressed by MS position i
func (inst *Instance) OperationAt(i int) (job, op int) {
	for j, jb := range inst.Jobs {
		if i < len(jb.Operations) {
			return j, i
		}
		i -= len(jb.Operations)
	}
	return -1, -1
}

// AlternativeCounts returns the number of alternatives for each MS position
func (inst *Instance) AlternativeCounts() []int {
	counts := make([]int, 0, inst.OperationCount())
	for _, job := range inst.Jobs {
		for _, op := range job.Operations {
			counts = append(counts, len(op.Alternatives))
		}
	}
	return counts
}

// RandomInstance generates a random instance; used by tests and benchmarks.
// Every operation gets between 1 and maxAlts alternatives on distinct machines.
func RandomInstance(jobs, machines, maxOps, maxAlts, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("random source is nil")
	}
	if jobs <= 0 || machines <= 0 || maxOps <= 0 || maxAlts <= 0 || maxTime <= 0 {
		panic("invalid instance bounds")
	}
	js := make([]Job, jobs)
	for j := range js {
		ops := make([]Operation, 1+rng.Intn(maxOps))
		for o := range ops {
			n := 1 + rng.Intn(min(maxAlts, machines))
			perm := rng.Perm(machines)[:n]
			alts := make([]Alternative, n)
			for a, m := range perm {
				alts[a] = Alternative{Machine: m + 1, ProcessingTime: 1 + rng.Intn(maxTime)}
			}
			ops[o] = Operation{Alternatives: alts}
		}
		js[j] = Job{Operations: ops}
	}
	inst, err := NewInstance(machines, js)
	if err != nil {
		panic(err)
	}
	return inst
}
