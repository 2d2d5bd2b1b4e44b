// Package metrics registra as métricas Prometheus do serviço.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordLogin(outcome string)
	RecordMutation(entity, action string)
}

type Collector struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	logins    *prometheus.CounterVec
	mutations *prometheus.CounterVec
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mvauto_http_requests_total",
			Help: "Requisições HTTP por rota e status",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mvauto_http_request_duration_seconds",
			Help:    "Latência das requisições HTTP (segundos)",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mvauto_login_attempts_total",
			Help: "Tentativas de login por resultado",
		}, []string{"outcome"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mvauto_record_mutations_total",
			Help: "Alterações de registros por entidade e ação",
		}, []string{"entity", "action"}),
	}

	reg.MustRegister(c.requests, c.latency, c.logins, c.mutations)
	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordMutation(entity, action string) {
	c.mutations.WithLabelValues(entity, action).Inc()
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop descarta tudo; usado quando as métricas não importam (testes).
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordLogin(string)                               {}
func (Nop) RecordMutation(string, string)                    {}
