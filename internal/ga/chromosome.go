package ga

import (
	"fmt"
	"math/rand"
	"slices"

	"fjspga/internal/fjsp"
)

// Chromosome encodes a candidate schedule. OS holds job ids in visitation
// order; MS holds one alternative index per operation in job-major order.
// Operators never modify a chromosome in place.
type Chromosome struct {
	OS []int `json:"os"`
	MS []int `json:"ms"`
}

// Clone returns a deep copy
func (c Chromosome) Clone() Chromosome {
	return Chromosome{OS: slices.Clone(c.OS), MS: slices.Clone(c.MS)}
}

// GenerateOS writes each job id once per operation and shuffles the result
func GenerateOS(inst *fjsp.Instance, rng *rand.Rand) []int {
	os := make([]int, 0, inst.OperationCount())
	for j, job := range inst.Jobs {
		for range job.Operations {
			os = append(os, j)
		}
	}
	rng.Shuffle(len(os), func(a, b int) {
		os[a], os[b] = os[b], os[a]
	})
	return os
}

// GenerateMS picks a uniform alternative index for every operation
func GenerateMS(inst *fjsp.Instance, rng *rand.Rand) []int {
	ms := make([]int, 0, inst.OperationCount())
	for _, job := range inst.Jobs {
		for _, op := range job.Operations {
			ms = append(ms, rng.Intn(len(op.Alternatives)))
		}
	}
	return ms
}

// RandomChromosome generates an independent (OS, MS) pair
func RandomChromosome(inst *fjsp.Instance, rng *rand.Rand) Chromosome {
	return Chromosome{OS: GenerateOS(inst, rng), MS: GenerateMS(inst, rng)}
}

// Validate checks the OS job-count invariant and the MS index ranges
func (c Chromosome) Validate(inst *fjsp.Instance) error {
	total := inst.OperationCount()
	if len(c.OS) != total {
		return fmt.Errorf("OS length must be %d (got %d)", total, len(c.OS))
	}
	if len(c.MS) != total {
		return fmt.Errorf("MS length must be %d (got %d)", total, len(c.MS))
	}

	counts := make([]int, inst.JobCount())
	for i, j := range c.OS {
		if j < 0 || j >= len(counts) {
			return fmt.Errorf("OS[%d]=%d out of range [0,%d)", i, j, len(counts))
		}
		counts[j]++
	}
	for j, job := range inst.Jobs {
		if counts[j] != len(job.Operations) {
			return fmt.Errorf("job %d appears %d times in OS, want %d", j, counts[j], len(job.Operations))
		}
	}

	for i, n := range inst.AlternativeCounts() {
		if c.MS[i] < 0 || c.MS[i] >= n {
			return fmt.Errorf("MS[%d]=%d out of range [0,%d)", i, c.MS[i], n)
		}
	}
	return nil
}
