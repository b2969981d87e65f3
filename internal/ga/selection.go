package ga

import (
	"math"
	"math/rand"
)

// EliteCount returns ceil(keep * size), clamped to [0, size]
func EliteCount(size int, keep float64) int {
	// the tolerance keeps products like 0.2*300 from rounding up past 60
	n := int(math.Ceil(keep*float64(size) - 1e-9))
	if n < 0 {
		return 0
	}
	if n > size {
		return size
	}
	return n
}

// Selection keeps the best ceil(keep*N) individuals and fills the rest
// with binary tournament winners. The result has the population's size;
// its elite prefix is sorted ascending by makespan.
func Selection(pop *Population, keep float64, rng *rand.Rand) []Chromosome {
	size := pop.Size()
	selected := make([]Chromosome, 0, size)

	pop.SortByMakespan()
	for _, ind := range pop.Individuals[:EliteCount(size, keep)] {
		selected = append(selected, ind.Chromosome)
	}

	for len(selected) < size {
		selected = append(selected, TournamentSelect(pop.Individuals, rng).Chromosome)
	}
	return selected
}

// TournamentSelect draws two distinct individuals and returns the one with
// the lower makespan. With a single individual it returns that individual.
func TournamentSelect(individuals []*Individual, rng *rand.Rand) *Individual {
	if len(individuals) == 0 {
		return nil
	}
	if len(individuals) == 1 {
		return individuals[0]
	}

	a := rng.Intn(len(individuals))
	b := rng.Intn(len(individuals) - 1)
	if b >= a {
		b++
	}
	if individuals[b].Makespan < individuals[a].Makespan {
		return individuals[b]
	}
	return individuals[a]
}
