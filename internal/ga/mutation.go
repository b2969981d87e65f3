package ga

import (
	"math/rand"
	"slices"
)

// Mutation mutates each chromosome independently with probability pm.
// altCounts[i] is the number of alternatives of the operation at MS position i.
func Mutation(pop []Chromosome, altCounts []int, pm float64, rng *rand.Rand) []Chromosome {
	out := make([]Chromosome, len(pop))
	for i, c := range pop {
		if rng.Float64() < pm {
			out[i] = Mutate(c, altCounts, rng)
		} else {
			out[i] = c
		}
	}
	return out
}

// Mutate applies swap or neighborhood mutation (chosen uniformly) to OS and
// half mutation to MS, returning a new chromosome
func Mutate(c Chromosome, altCounts []int, rng *rand.Rand) Chromosome {
	var os []int
	if rng.Intn(2) == 0 {
		os = SwapMutation(c.OS, rng)
	} else {
		os = NeighborhoodMutation(c.OS, rng)
	}
	return Chromosome{OS: os, MS: HalfMutation(c.MS, altCounts, rng)}
}

// SwapMutation exchanges the values at two distinct random positions
func SwapMutation(p []int, rng *rand.Rand) []int {
	o := slices.Clone(p)
	if len(o) < 2 {
		return o
	}
	i := rng.Intn(len(o))
	j := rng.Intn(len(o) - 1)
	if j >= i {
		j++
	}
	o[i], o[j] = o[j], o[i]
	return o
}

// permutations3 lists the six orderings of three values
var permutations3 = [6][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// NeighborhoodMutation picks three positions holding pairwise distinct job
// ids and rewrites them with a uniformly chosen permutation of those ids.
// Sequences with fewer than three distinct jobs fall back to SwapMutation.
func NeighborhoodMutation(p []int, rng *rand.Rand) []int {
	if !distinctAtLeast(p, 3) {
		return SwapMutation(p, rng)
	}

	n := len(p)
	pos1 := rng.Intn(n)
	pos2 := rng.Intn(n)
	for p[pos2] == p[pos1] {
		pos2 = rng.Intn(n)
	}
	pos3 := rng.Intn(n)
	for p[pos3] == p[pos1] || p[pos3] == p[pos2] {
		pos3 = rng.Intn(n)
	}

	positions := []int{pos1, pos2, pos3}
	slices.Sort(positions)
	values := [3]int{p[positions[0]], p[positions[1]], p[positions[2]]}

	o := slices.Clone(p)
	perm := permutations3[rng.Intn(len(permutations3))]
	for k, pos := range positions {
		o[pos] = values[perm[k]]
	}
	return o
}

func distinctAtLeast(p []int, n int) bool {
	seen := make(map[int]struct{}, n)
	for _, v := range p {
		seen[v] = struct{}{}
		if len(seen) >= n {
			return true
		}
	}
	return false
}

// HalfMutation resamples floor(len/2) distinct positions, each uniformly
// within the alternative range of the operation it addresses
func HalfMutation(p []int, altCounts []int, rng *rand.Rand) []int {
	o := slices.Clone(p)
	for _, i := range rng.Perm(len(o))[:len(o)/2] {
		o[i] = rng.Intn(altCounts[i])
	}
	return o
}
