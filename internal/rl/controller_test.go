package rl

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(states int) Params {
	return Params{
		States:       states,
		Pc:           Range{Low: 0.4, High: 0.9},
		Pm:           Range{Low: 0.01, High: 0.21},
		Epsilon:      0.1,
		Alpha:        0.5,
		Gamma:        0.9,
		SwitchFactor: 10,
	}
}

func TestNewControllerRejectsEmptyRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var rangeErr *EmptyRangeError

	p := testParams(4)
	p.Pc = Range{Low: 0.9, High: 0.4}
	_, err := NewController(p, rng)
	require.True(t, errors.As(err, &rangeErr))

	p = testParams(4)
	p.Pm = Range{Low: 0.1, High: 0.1}
	_, err = NewController(p, rng)
	require.True(t, errors.As(err, &rangeErr))

	_, err = NewController(testParams(0), rng)
	require.True(t, errors.As(err, &rangeErr))
}

func TestUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		v, err := Uniform(Range{Low: 0.4, High: 0.9}, rng)
		require.NoError(t, err)
		assert.True(t, v >= 0.4 && v < 0.9)
	}
	_, err := Uniform(Range{Low: 1, High: 1}, rng)
	assert.Error(t, err)
}

func TestGreedyTiesPickFirst(t *testing.T) {
	q, err := NewQTable(3)
	require.NoError(t, err)
	assert.Equal(t, ActionCrossover, q.Greedy(0))

	q.Set(1, ActionMutation, 0.3)
	assert.Equal(t, ActionMutation, q.Greedy(1))
	assert.Equal(t, 0.3, q.Max(1))
	assert.Equal(t, [ActionCount]float64{0, 0.3}, q.Row(1))
}

func TestSelectActionExploits(t *testing.T) {
	p := testParams(2)
	p.Epsilon = 0
	c, err := NewController(p, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	c.Table().Set(1, ActionMutation, 1)
	for i := 0; i < 20; i++ {
		assert.Equal(t, ActionMutation, c.SelectAction(1))
		assert.Equal(t, ActionCrossover, c.SelectAction(0))
	}
}

func TestDecideDrawsWithinRanges(t *testing.T) {
	c, err := NewController(testParams(5), rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	for gen := 0; gen < 50; gen++ {
		d, err := c.Decide(gen)
		require.NoError(t, err)
		assert.Equal(t, gen%5, d.State)
		assert.True(t, d.Pc >= 0.4 && d.Pc < 0.9)
		assert.True(t, d.Pm >= 0.01 && d.Pm < 0.21)
	}
}

func TestDecideReusesPendingAction(t *testing.T) {
	p := testParams(3)
	p.Epsilon = 1 // fully random, so reuse is observable only through pending
	c, err := NewController(p, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	d, err := c.Decide(0)
	require.NoError(t, err)
	u := c.Learn(0, d, 100, 90)

	next, err := c.Decide(1)
	require.NoError(t, err)
	assert.Equal(t, u.NextState, next.State)
	assert.Equal(t, u.NextAction, next.Action)
}

func TestReward(t *testing.T) {
	assert.InDelta(t, 0.1, Reward(100, 90), 1e-12)
	assert.InDelta(t, -0.5, Reward(100, 150), 1e-12)
	assert.Equal(t, 0.0, Reward(100, 100))
	assert.Equal(t, 0.0, Reward(0, 10))
	assert.Equal(t, -1.0, Reward(10, 50))
}

func TestLearnOnPolicyUpdate(t *testing.T) {
	p := testParams(4)
	p.Epsilon = 0
	c, err := NewController(p, rand.New(rand.NewSource(6)))
	require.NoError(t, err)

	// greedy action of next state 2 is crossover, valued 0.4
	c.Table().Set(2, ActionCrossover, 0.4)
	c.Table().Set(2, ActionMutation, 0.2)

	d := Decision{State: 1, Action: ActionMutation}
	u := c.Learn(1, d, 100, 80)

	assert.Equal(t, OnPolicy, u.Policy)
	assert.Equal(t, 2, u.NextState)
	assert.Equal(t, ActionCrossover, u.NextAction)
	want := 0.5*0 + 0.5*(0.2+0.9*0.4)
	assert.InDelta(t, want, u.Value, 1e-12)
	assert.InDelta(t, want, c.Table().Get(1, ActionMutation), 1e-12)
}

func TestLearnSwitchesToOffPolicyOnce(t *testing.T) {
	p := testParams(2)
	p.Epsilon = 1
	c, err := NewController(p, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	for gen := 0; gen <= 20; gen++ {
		d, err := c.Decide(gen)
		require.NoError(t, err)
		assert.Equal(t, OnPolicy, c.Learn(gen, d, 100, 100).Policy, "generation %d", gen)
	}

	d, err := c.Decide(21)
	require.NoError(t, err)
	assert.Equal(t, OffPolicy, c.Learn(21, d, 100, 100).Policy)

	// one-way: later generations keep the off-policy rule
	for gen := 22; gen < 30; gen++ {
		d, err := c.Decide(gen)
		require.NoError(t, err)
		assert.Equal(t, OffPolicy, c.Learn(gen, d, 100, 99).Policy)
	}
}

func TestLearnOffPolicyBootstrapsWithMax(t *testing.T) {
	p := testParams(1)
	p.Epsilon = 1
	p.SwitchFactor = 0
	c, err := NewController(p, rand.New(rand.NewSource(8)))
	require.NoError(t, err)

	c.Table().Set(0, ActionMutation, 0.6)
	u := c.Learn(1, Decision{State: 0, Action: ActionCrossover}, 50, 40)
	require.Equal(t, OffPolicy, u.Policy)
	assert.InDelta(t, 0.5*(0.2+0.9*0.6), u.Value, 1e-12)
}

func TestValuesStayFinite(t *testing.T) {
	c, err := NewController(testParams(6), rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(10))

	best := 1000
	for gen := 0; gen < 500; gen++ {
		d, err := c.Decide(gen)
		require.NoError(t, err)
		after := best + rng.Intn(200) - 100
		if after < 1 {
			after = 1
		}
		u := c.Learn(gen, d, best, after)
		assert.False(t, math.IsNaN(u.Value) || math.IsInf(u.Value, 0))
		assert.True(t, u.Reward >= -1 && u.Reward <= 1)
		best = after
	}
}
