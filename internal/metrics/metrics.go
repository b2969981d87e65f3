// Package metrics exposes per-generation optimizer state to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fjspga/internal/evolution"
)

// Collector holds the optimizer gauges on a private registry
type Collector struct {
	registry     *prometheus.Registry
	generation   prometheus.Gauge
	bestMakespan prometheus.Gauge
	bestEver     prometheus.Gauge
	meanMakespan prometheus.Gauge
	pc           prometheus.Gauge
	pm           prometheus.Gauge
	reward       prometheus.Gauge
	generations  prometheus.Counter
	actions      *prometheus.CounterVec
}

// New registers the optimizer metrics
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fjspga", Name: "generation", Help: "Current generation index.",
		}),
		bestMakespan: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fjspga", Name: "best_makespan", Help: "Best makespan in the current population.",
		}),
		bestEver: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fjspga", Name: "best_ever_makespan", Help: "Best makespan seen in the run.",
		}),
		meanMakespan: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fjspga", Name: "mean_makespan", Help: "Mean makespan of the current population.",
		}),
		pc: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fjspga", Name: "crossover_rate", Help: "Crossover probability used this generation.",
		}),
		pm: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fjspga", Name: "mutation_rate", Help: "Mutation probability used this generation.",
		}),
		reward: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fjspga", Name: "reward", Help: "Last reward given to the rate controller.",
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fjspga", Name: "generations_total", Help: "Generations observed.",
		}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fjspga", Name: "actions_total", Help: "Controller actions by kind.",
		}, []string{"action"}),
	}
	c.registry.MustRegister(
		c.generation, c.bestMakespan, c.bestEver, c.meanMakespan,
		c.pc, c.pm, c.reward, c.generations, c.actions,
	)
	return c
}

// Observe records one generation. It matches evolution.Driver.Observe.
func (c *Collector) Observe(rec evolution.Record) {
	c.generation.Set(float64(rec.Generation))
	c.bestMakespan.Set(float64(rec.BestMakespan))
	c.bestEver.Set(float64(rec.BestEver))
	c.meanMakespan.Set(rec.MeanMakespan)
	c.pc.Set(rec.Pc)
	c.pm.Set(rec.Pm)
	c.reward.Set(rec.Reward)
	c.generations.Inc()
	if rec.Action != "" {
		c.actions.WithLabelValues(rec.Action).Inc()
	}
}

// Registry returns the registry backing the collector
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the metrics in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
