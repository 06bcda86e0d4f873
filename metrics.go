package lightjson

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts binder activity.
type Metrics struct {
	binds          *prometheus.CounterVec
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter
	fieldIssues    *prometheus.CounterVec
}

// NewMetrics creates the binder counters and registers them with registerer.
// A nil registerer leaves them unregistered.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		binds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightjson_binds_total",
			Help: "Decode calls by outcome (ok, partial, error)",
		}, []string{"outcome"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lightjson_cache_hits_total",
			Help: "Decode calls answered from the cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lightjson_cache_misses_total",
			Help: "Decode calls that had to parse and bind",
		}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lightjson_cache_evictions_total",
			Help: "Cache entries evicted to stay within capacity",
		}),
		fieldIssues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lightjson_field_issues_total",
			Help: "Fields left unbound by issue code",
		}, []string{"code"}),
	}
	if registerer != nil {
		registerer.MustRegister(m.binds)
		registerer.MustRegister(m.cacheHits)
		registerer.MustRegister(m.cacheMisses)
		registerer.MustRegister(m.cacheEvictions)
		registerer.MustRegister(m.fieldIssues)
	}
	return m
}

// The methods below accept a nil receiver so callers need no guard.

func (m *Metrics) observeBind(outcome string) {
	if m != nil {
		m.binds.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) observeCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

func (m *Metrics) observeEviction() {
	if m != nil {
		m.cacheEvictions.Inc()
	}
}

func (m *Metrics) observeIssues(iss Issues) {
	if m == nil {
		return
	}
	for _, it := range iss {
		m.fieldIssues.WithLabelValues(it.Code).Inc()
	}
}
