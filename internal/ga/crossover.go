package ga

import (
	"math/rand"
	"slices"
)

// Crossover processes the population in adjacent pairs. Each pair is
// recombined with probability pc, otherwise passed through. A trailing
// unpaired chromosome is carried over unchanged.
func Crossover(pop []Chromosome, jobCount int, pc float64, rng *rand.Rand) []Chromosome {
	out := make([]Chromosome, 0, len(pop))
	for i := 0; i+1 < len(pop); i += 2 {
		p1, p2 := pop[i], pop[i+1]
		if rng.Float64() < pc {
			c1, c2 := CrossoverPair(p1, p2, jobCount, rng)
			out = append(out, c1, c2)
		} else {
			out = append(out, p1, p2)
		}
	}
	if len(pop)%2 == 1 {
		out = append(out, pop[len(pop)-1])
	}
	return out
}

// CrossoverPair recombines OS with POX or JBX (chosen uniformly) and MS
// with two-point crossover
func CrossoverPair(p1, p2 Chromosome, jobCount int, rng *rand.Rand) (Chromosome, Chromosome) {
	var os1, os2 []int
	if rng.Intn(2) == 0 {
		os1, os2 = PrecedenceCrossover(p1.OS, p2.OS, jobCount, rng)
	} else {
		os1, os2 = JobBasedCrossover(p1.OS, p2.OS, jobCount, rng)
	}
	ms1, ms2 := TwoPointCrossover(p1.MS, p2.MS, rng)
	return Chromosome{OS: os1, MS: ms1}, Chromosome{OS: os2, MS: ms2}
}

// randomJobSet draws a subset of job ids whose size is uniform in [0, jobCount]
func randomJobSet(jobCount int, rng *rand.Rand) []bool {
	inSet := make([]bool, jobCount)
	size := rng.Intn(jobCount + 1)
	for _, j := range rng.Perm(jobCount)[:size] {
		inSet[j] = true
	}
	return inSet
}

// PrecedenceCrossover (POX): child1 keeps p1's genes whose job is in a random
// set S in place and fills the other positions with p2's genes not in S, in
// p2's order. child2 is built the same way with the parents swapped.
func PrecedenceCrossover(p1, p2 []int, jobCount int, rng *rand.Rand) ([]int, []int) {
	set := randomJobSet(jobCount, rng)
	inS := func(j int) bool { return set[j] }
	notInS := func(j int) bool { return !set[j] }
	return mergeOS(p1, p2, inS, notInS), mergeOS(p2, p1, inS, notInS)
}

// JobBasedCrossover (JBX): S and its complement S' partition the jobs.
// child1 keeps p1's S genes and fills from p2's S' genes; child2 keeps p2's
// S' genes and fills from p1's S genes.
func JobBasedCrossover(p1, p2 []int, jobCount int, rng *rand.Rand) ([]int, []int) {
	set := randomJobSet(jobCount, rng)
	inS := func(j int) bool { return set[j] }
	inComplement := func(j int) bool { return !set[j] }
	return mergeOS(p1, p2, inS, inComplement), mergeOS(p2, p1, inComplement, inS)
}

// mergeOS keeps base[i] where keep(base[i]) holds and fills the remaining
// positions left to right with donor's genes accepted by fill.
func mergeOS(base, donor []int, keep, fill func(int) bool) []int {
	child := make([]int, len(base))
	d := 0
	for i, j := range base {
		if keep(j) {
			child[i] = j
			continue
		}
		for !fill(donor[d]) {
			d++
		}
		child[i] = donor[d]
		d++
	}
	return child
}

// TwoPointCrossover swaps the segment [a, b) between parents. Equal cut
// points leave both parents unchanged.
func TwoPointCrossover(p1, p2 []int, rng *rand.Rand) ([]int, []int) {
	c1, c2 := slices.Clone(p1), slices.Clone(p2)
	if len(p1) == 0 {
		return c1, c2
	}
	a, b := rng.Intn(len(p1)), rng.Intn(len(p1))
	if a > b {
		a, b = b, a
	}
	copy(c1[a:b], p2[a:b])
	copy(c2[a:b], p1[a:b])
	return c1, c2
}
