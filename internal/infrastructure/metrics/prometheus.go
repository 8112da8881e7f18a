// Package metrics publica métricas Prometheus del servicio.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-core/internal/application/ports"
)

var _ ports.MutationObserver = (*Metrics)(nil)

// Metrics agrupa los colectores en un registro propio (no el global).
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// New registra los colectores del servicio y los del runtime de Go.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Mutaciones por entidad, tipo y resultado.",
		}, []string{"entity", "kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mutation_duration_seconds",
			Help:      "Duración de las mutaciones, incluida la transacción.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "kind"}),
	}
	reg.MustRegister(
		m.mutations,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveMutation implementa ports.MutationObserver.
func (m *Metrics) ObserveMutation(entityType, kind, outcome string, elapsed time.Duration) {
	m.mutations.WithLabelValues(entityType, kind, outcome).Inc()
	m.duration.WithLabelValues(entityType, kind).Observe(elapsed.Seconds())
}

// Registry devuelve el registro (tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone el registro en formato de texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
