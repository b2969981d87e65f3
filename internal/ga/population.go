package ga

import (
	"math/rand"
	"sort"

	"fjspga/internal/fjsp"
)

// Individual is a chromosome with its evaluated makespan
type Individual struct {
	Chromosome Chromosome
	Makespan   int
}

// Population is a set of evaluated individuals
type Population struct {
	Individuals []*Individual
}

// InitializePopulation returns size independently generated chromosomes
func InitializePopulation(inst *fjsp.Instance, size int, rng *rand.Rand) []Chromosome {
	pop := make([]Chromosome, size)
	for i := range pop {
		pop[i] = RandomChromosome(inst, rng)
	}
	return pop
}

// NewPopulation pairs chromosomes with their makespans
func NewPopulation(chromosomes []Chromosome, makespans []int) *Population {
	p := &Population{Individuals: make([]*Individual, len(chromosomes))}
	for i, c := range chromosomes {
		p.Individuals[i] = &Individual{Chromosome: c, Makespan: makespans[i]}
	}
	return p
}

// Size returns the population size
func (p *Population) Size() int {
	return len(p.Individuals)
}

// SortByMakespan sorts individuals ascending by makespan (best first).
// The sort is stable so equal makespans keep their relative order.
func (p *Population) SortByMakespan() {
	sort.SliceStable(p.Individuals, func(i, j int) bool {
		return p.Individuals[i].Makespan < p.Individuals[j].Makespan
	})
}

// Best returns the individual with the lowest makespan
func (p *Population) Best() *Individual {
	if len(p.Individuals) == 0 {
		return nil
	}
	best := p.Individuals[0]
	for _, ind := range p.Individuals[1:] {
		if ind.Makespan < best.Makespan {
			best = ind
		}
	}
	return best
}

// Makespans returns the makespan of every individual, in population order
func (p *Population) Makespans() []int {
	out := make([]int, len(p.Individuals))
	for i, ind := range p.Individuals {
		out[i] = ind.Makespan
	}
	return out
}

// Chromosomes returns the chromosomes in population order
func (p *Population) Chromosomes() []Chromosome {
	out := make([]Chromosome, len(p.Individuals))
	for i, ind := range p.Individuals {
		out[i] = ind.Chromosome
	}
	return out
}
