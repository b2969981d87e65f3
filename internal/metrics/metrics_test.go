package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjspga/internal/evolution"
)

func TestObserveUpdatesGauges(t *testing.T) {
	c := New()
	c.Observe(evolution.Record{Generation: 1, BestMakespan: 9, BestEver: 9, MeanMakespan: 10.5, Pc: 0.8, Pm: 0.1})
	c.Observe(evolution.Record{Generation: 2, BestMakespan: 7, BestEver: 7, MeanMakespan: 8, Pc: 0.6, Pm: 0.1, Action: "crossover", Reward: 0.25})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.generation))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.bestMakespan))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.bestEver))
	assert.Equal(t, 8.0, testutil.ToFloat64(c.meanMakespan))
	assert.Equal(t, 0.6, testutil.ToFloat64(c.pc))
	assert.Equal(t, 0.25, testutil.ToFloat64(c.reward))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.generations))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.actions.WithLabelValues("crossover")))
}

func TestHandlerServesMetrics(t *testing.T) {
	c := New()
	c.Observe(evolution.Record{Generation: 3, BestMakespan: 11, BestEver: 11})

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "fjspga_best_makespan 11")
	assert.Contains(t, string(body), "fjspga_generations_total 1")
}

func TestRegistryGather(t *testing.T) {
	c := New()
	families, err := c.Registry().Gather()
	require.NoError(t, err)
	// the action vector has no children until an action is observed
	assert.Len(t, families, 8)
}
