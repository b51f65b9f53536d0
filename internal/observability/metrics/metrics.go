// Package metrics define los contadores Prometheus de la API. Todos los métodos aceptan un
// receptor nil para que los casos de uso funcionen sin métricas (tests, herramientas).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Resultados usados como etiqueta "result".
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics instrumentos registrados para un servicio.
type Metrics struct {
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec
	AuditWritesTotal           *prometheus.CounterVec
	CashFlowLinksTotal         *prometheus.CounterVec
	ExportsTotal               *prometheus.CounterVec
	AuthLoginsTotal            *prometheus.CounterVec
}

// New crea los instrumentos con la etiqueta service fija y los registra en reg.
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests.",
				ConstLabels: labels,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Duration of HTTP requests.",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: labels,
			},
			[]string{"method", "path"},
		),
		AuditWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "audit_writes_total",
				Help:        "Audit log writes by entity type and result.",
				ConstLabels: labels,
			},
			[]string{"entity_type", "result"},
		),
		CashFlowLinksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "cash_flow_links_total",
				Help:        "Derived cash-flow writes triggered by production and purchases.",
				ConstLabels: labels,
			},
			[]string{"source", "operation", "result"},
		),
		ExportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "exports_total",
				Help:        "Generated exports by format and result.",
				ConstLabels: labels,
			},
			[]string{"format", "result"},
		),
		AuthLoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "auth_logins_total",
				Help:        "Total number of login attempts.",
				ConstLabels: labels,
			},
			[]string{"result"},
		),
	}
	if reg != nil {
		reg.MustRegister(
			m.HTTPRequestsTotal,
			m.HTTPRequestDurationSeconds,
			m.AuditWritesTotal,
			m.CashFlowLinksTotal,
			m.ExportsTotal,
			m.AuthLoginsTotal,
		)
	}
	return m
}

func result(ok bool) string {
	if ok {
		return ResultOK
	}
	return ResultError
}

// AuditWrite cuenta una escritura de auditoría.
func (m *Metrics) AuditWrite(entityType string, ok bool) {
	if m == nil {
		return
	}
	m.AuditWritesTotal.WithLabelValues(entityType, result(ok)).Inc()
}

// CashFlowLink cuenta un efecto derivado sobre el caixa (source: production|purchase; operation: create|delete).
func (m *Metrics) CashFlowLink(source, operation string, ok bool) {
	if m == nil {
		return
	}
	m.CashFlowLinksTotal.WithLabelValues(source, operation, result(ok)).Inc()
}

// Export cuenta una exportación generada (format: csv|pdf).
func (m *Metrics) Export(format string, ok bool) {
	if m == nil {
		return
	}
	m.ExportsTotal.WithLabelValues(format, result(ok)).Inc()
}

// Login cuenta un intento de login.
func (m *Metrics) Login(ok bool) {
	if m == nil {
		return
	}
	m.AuthLoginsTotal.WithLabelValues(result(ok)).Inc()
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDurationSeconds.WithLabelValues(method, path).Observe(seconds)
}
