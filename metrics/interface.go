package metrics

// Metrics defines the interface for collecting progression metrics.
// This decouples the services from the Prometheus implementation.
type Metrics interface {
	IncGenerations(mode string)
	IncResultsRecorded(phase string)
	IncDependentPopulations(kind string)
	IncFinalizations(outcome string)
	ObserveOperationDuration(operation string, seconds float64)
}

// Dependent population kinds.
const (
	PopulationFinals = "finals"
	PopulationRound2 = "classification_round2"
)

// Finalization outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeIncomplete = "incomplete"
	OutcomeFailed     = "failed"
)
