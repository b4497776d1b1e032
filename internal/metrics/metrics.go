// Package metrics expõe os indicadores do pipeline de leads no formato Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-qualifier-api/internal/domain"
)

const namespace = "lead"

// Tempo máximo de consulta ao banco durante um scrape
const collectTimeout = 5 * time.Second

var leadsByStatusDesc = prometheus.NewDesc(
	prometheus.BuildFQName(namespace, "", "leads_by_status"),
	"Current number of leads per pipeline status",
	[]string{"status"},
	nil,
)

// StatusCounter é a leitura agregada usada pelo coletor
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[domain.LeadStatus]int, error)
}

// FunnelCollector consulta a contagem por status a cada scrape
type FunnelCollector struct {
	counter StatusCounter
}

func NewFunnelCollector(counter StatusCounter) *FunnelCollector {
	return &FunnelCollector{counter: counter}
}

func (c *FunnelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- leadsByStatusDesc
}

func (c *FunnelCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	counts, err := c.counter.CountByStatus(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao coletar métricas de leads por status")
		return
	}

	for _, status := range domain.LeadStatuses {
		ch <- prometheus.MustNewConstMetric(
			leadsByStatusDesc,
			prometheus.GaugeValue,
			float64(counts[status]),
			string(status),
		)
	}
}

// Recorder concentra as métricas atualizadas pelos serviços
type Recorder struct {
	registry          *prometheus.Registry
	statusChanges     *prometheus.CounterVec
	activitiesByType  *prometheus.CounterVec
	scores            prometheus.Histogram
	staleLeads        prometheus.Gauge
	rescoredLeadsLast prometheus.Gauge
}

// NewRecorder cria um registry próprio com as métricas do processo e do pipeline.
// O coletor de funil é registrado apenas quando counter não é nil.
func NewRecorder(counter StatusCounter) *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_changes_total",
			Help:      "Status transitions applied to leads",
		}, []string{"from", "to"}),
		activitiesByType: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_recorded_total",
			Help:      "Activities appended to the ledger by type",
		}, []string{"type"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Overall lead rating computed at intake or rescoring",
			Buckets:   []float64{2, 3, 4, 5.5, 7, 8.5, 10},
		}),
		staleLeads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stale_leads",
			Help:      "Leads without recent contact found by the last sweep",
		}),
		rescoredLeadsLast: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rescored_leads_last_run",
			Help:      "Leads whose rating changed in the last rescoring run",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.statusChanges,
		r.activitiesByType,
		r.scores,
		r.staleLeads,
		r.rescoredLeadsLast,
	)

	if counter != nil {
		registry.MustRegister(NewFunnelCollector(counter))
	}

	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) StatusChanged(from, to domain.LeadStatus) {
	r.statusChanges.WithLabelValues(string(from), string(to)).Inc()
}

func (r *Recorder) LeadScored(rating float64) {
	r.scores.Observe(rating)
}

// ActivityRecorded é usado como observer do ledger
func (r *Recorder) ActivityRecorded(activity *domain.Activity) {
	r.activitiesByType.WithLabelValues(string(activity.Type)).Inc()
}

func (r *Recorder) StaleLeads(count int) {
	r.staleLeads.Set(float64(count))
}

func (r *Recorder) LeadsRescored(count int) {
	r.rescoredLeadsLast.Set(float64(count))
}
