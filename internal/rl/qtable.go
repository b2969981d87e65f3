package rl

import "math"

// Action biases which operator probability gets resampled
type Action int

const (
	ActionCrossover Action = iota // resample Pc
	ActionMutation                // resample Pm
)

// ActionCount is the number of columns of the value table
const ActionCount = 2

func (a Action) String() string {
	switch a {
	case ActionCrossover:
		return "crossover"
	case ActionMutation:
		return "mutation"
	default:
		return "unknown"
	}
}

// QTable holds one row of action values per state
type QTable struct {
	values [][ActionCount]float64
}

// NewQTable creates a zeroed table with the given number of states
func NewQTable(states int) (*QTable, error) {
	if states <= 0 {
		return nil, &EmptyRangeError{What: "value table states", Low: 0, High: float64(states)}
	}
	return &QTable{values: make([][ActionCount]float64, states)}, nil
}

// States returns the number of rows
func (q *QTable) States() int {
	return len(q.values)
}

// Get returns Q[s, a]
func (q *QTable) Get(s int, a Action) float64 {
	return q.values[s][a]
}

// Set stores Q[s, a]
func (q *QTable) Set(s int, a Action, v float64) {
	q.values[s][a] = v
}

// Row returns a copy of the action values of state s
func (q *QTable) Row(s int) [ActionCount]float64 {
	return q.values[s]
}

// Greedy returns the highest-valued action of state s; the first index wins ties
func (q *QTable) Greedy(s int) Action {
	best := Action(0)
	for a := Action(1); a < ActionCount; a++ {
		if q.values[s][a] > q.values[s][best] {
			best = a
		}
	}
	return best
}

// Max returns the largest action value of state s
func (q *QTable) Max(s int) float64 {
	m := math.Inf(-1)
	for _, v := range q.values[s] {
		m = max(m, v)
	}
	return m
}
