// Package rl adapts crossover and mutation probabilities across generations
// with a two-action value table updated by SARSA and then Q-learning.
package rl

import (
	"math"
	"math/rand"
)

// Policy selects the bootstrap term of the value update
type Policy int

const (
	OnPolicy  Policy = iota // SARSA: bootstrap with the chosen next action
	OffPolicy               // Q-learning: bootstrap with the best next action
)

func (p Policy) String() string {
	if p == OffPolicy {
		return "q-learning"
	}
	return "sarsa"
}

// Range is a closed-open interval for uniform draws
type Range struct {
	Low  float64
	High float64
}

// Params configures a Controller
type Params struct {
	States       int // population size
	Pc           Range
	Pm           Range
	Epsilon      float64
	Alpha        float64
	Gamma        float64
	SwitchFactor int // off-policy once generation > States*SwitchFactor
}

// Decision is the operator setup chosen for one generation
type Decision struct {
	State  int
	Action Action
	Pc     float64
	Pm     float64
}

// Update describes one value-table update
type Update struct {
	State      int
	Action     Action
	NextState  int
	NextAction Action
	Reward     float64
	Policy     Policy
	Value      float64 // Q[State, Action] after the update
}

// Controller chooses per-generation operator probabilities
type Controller struct {
	params  Params
	q       *QTable
	rng     *rand.Rand
	policy  Policy
	pending *Decision // next action chosen during the last update
}

// NewController creates a controller with a zeroed value table in on-policy mode
func NewController(p Params, rng *rand.Rand) (*Controller, error) {
	if err := checkRange("crossover probability", p.Pc); err != nil {
		return nil, err
	}
	if err := checkRange("mutation probability", p.Pm); err != nil {
		return nil, err
	}
	q, err := NewQTable(p.States)
	if err != nil {
		return nil, err
	}
	return &Controller{params: p, q: q, rng: rng, policy: OnPolicy}, nil
}

func checkRange(what string, r Range) error {
	if !(r.High > r.Low) {
		return &EmptyRangeError{What: what, Low: r.Low, High: r.High}
	}
	return nil
}

// Uniform draws from [r.Low, r.High)
func Uniform(r Range, rng *rand.Rand) (float64, error) {
	if err := checkRange("uniform draw", r); err != nil {
		return 0, err
	}
	return r.Low + rng.Float64()*(r.High-r.Low), nil
}

// Policy returns the active update rule
func (c *Controller) Policy() Policy {
	return c.policy
}

// Table exposes the value table
func (c *Controller) Table() *QTable {
	return c.q
}

// State maps a generation number to its table row
func (c *Controller) State(generation int) int {
	s := generation % c.q.States()
	if s < 0 {
		s += c.q.States()
	}
	return s
}

// SelectAction is epsilon-greedy over the action values of state s
func (c *Controller) SelectAction(s int) Action {
	if c.rng.Float64() < c.params.Epsilon {
		return Action(c.rng.Intn(ActionCount))
	}
	return c.q.Greedy(s)
}

// Decide draws baseline Pc and Pm, picks an action for the generation's
// state and resamples the probability that action targets. The action
// chosen by the previous Learn call for this state is reused.
func (c *Controller) Decide(generation int) (Decision, error) {
	pc, err := Uniform(c.params.Pc, c.rng)
	if err != nil {
		return Decision{}, err
	}
	pm, err := Uniform(c.params.Pm, c.rng)
	if err != nil {
		return Decision{}, err
	}

	s := c.State(generation)
	var a Action
	if c.pending != nil && c.pending.State == s {
		a = c.pending.Action
	} else {
		a = c.SelectAction(s)
	}
	c.pending = nil

	switch a {
	case ActionCrossover:
		pc, err = Uniform(c.params.Pc, c.rng)
	case ActionMutation:
		pm, err = Uniform(c.params.Pm, c.rng)
	}
	if err != nil {
		return Decision{}, err
	}

	return Decision{State: s, Action: a, Pc: pc, Pm: pm}, nil
}

// Reward is the relative improvement of the best makespan, clamped to
// [-1, 1]; it is 0 when before <= 0
func Reward(before, after int) float64 {
	if before <= 0 {
		return 0
	}
	r := float64(before-after) / float64(before)
	return max(-1, min(1, r))
}

// Learn updates Q[d.State, d.Action] from the best makespans observed before
// and after the generation's operators ran. The controller switches to
// off-policy updates once generation exceeds States*SwitchFactor and never
// switches back.
func (c *Controller) Learn(generation int, d Decision, bestBefore, bestAfter int) Update {
	if c.policy == OnPolicy && generation > c.params.States*c.params.SwitchFactor {
		c.policy = OffPolicy
	}

	next := c.State(generation + 1)
	nextAction := c.SelectAction(next)
	c.pending = &Decision{State: next, Action: nextAction}

	reward := Reward(bestBefore, bestAfter)

	var bootstrap float64
	if c.policy == OnPolicy {
		bootstrap = c.q.Get(next, nextAction)
	} else {
		bootstrap = c.q.Max(next)
	}

	old := c.q.Get(d.State, d.Action)
	value := (1-c.params.Alpha)*old + c.params.Alpha*(reward+c.params.Gamma*bootstrap)
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = old
	}
	c.q.Set(d.State, d.Action, value)

	return Update{
		State:      d.State,
		Action:     d.Action,
		NextState:  next,
		NextAction: nextAction,
		Reward:     reward,
		Policy:     c.policy,
		Value:      value,
	}
}
