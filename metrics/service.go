package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

type Service struct {
	Generations          *prometheus.CounterVec
	ResultsRecorded      *prometheus.CounterVec
	DependentPopulations *prometheus.CounterVec
	Finalizations        *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carambole_generations_total",
			Help: "The total number of tournament generations, by resulting mode.",
		}, []string{"mode"}),
		ResultsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carambole_match_results_recorded_total",
			Help: "The total number of match results recorded, by phase.",
		}, []string{"phase"}),
		DependentPopulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carambole_dependent_populations_total",
			Help: "The total number of dependent match populations, by kind.",
		}, []string{"kind"}),
		Finalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carambole_finalizations_total",
			Help: "The total number of finalization attempts, by outcome.",
		}, []string{"outcome"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carambole_operation_duration_seconds",
			Help:    "The duration of progression operations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
	}

	reg.MustRegister(
		s.Generations,
		s.ResultsRecorded,
		s.DependentPopulations,
		s.Finalizations,
		s.OperationDuration,
	)

	return s
}

func (s *Service) IncGenerations(mode string) {
	s.Generations.WithLabelValues(mode).Inc()
}

func (s *Service) IncResultsRecorded(phase string) {
	s.ResultsRecorded.WithLabelValues(phase).Inc()
}

func (s *Service) IncDependentPopulations(kind string) {
	s.DependentPopulations.WithLabelValues(kind).Inc()
}

func (s *Service) IncFinalizations(outcome string) {
	s.Finalizations.WithLabelValues(outcome).Inc()
}

func (s *Service) ObserveOperationDuration(operation string, seconds float64) {
	s.OperationDuration.WithLabelValues(operation).Observe(seconds)
}
