package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the service's collectors.
type Recorder struct {
	Calculations      *prometheus.CounterVec
	CalculationErrors *prometheus.CounterVec
	ReferenceReloads  *prometheus.CounterVec
}

// NewRecorder registers the collectors with reg. Tests pass a fresh prometheus.NewRegistry().
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		Calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worldtax",
			Name:      "calculations_total",
			Help:      "Tax evaluations by resulting treatment and transaction type.",
		}, []string{"calculation_type", "transaction_type"}),
		CalculationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worldtax",
			Name:      "calculation_errors_total",
			Help:      "Failed tax evaluations by error kind.",
		}, []string{"reason"}),
		ReferenceReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worldtax",
			Name:      "reference_reloads_total",
			Help:      "Reference data loads by source and outcome.",
		}, []string{"source", "status"}),
	}
}

func (r *Recorder) ObserveCalculation(calculationType, transactionType string) {
	r.Calculations.WithLabelValues(calculationType, transactionType).Inc()
}

func (r *Recorder) ObserveCalculationError(reason string) {
	r.CalculationErrors.WithLabelValues(reason).Inc()
}

func (r *Recorder) ObserveReload(source string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	r.ReferenceReloads.WithLabelValues(source, status).Inc()
}
