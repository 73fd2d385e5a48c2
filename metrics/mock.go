package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	generations          map[string]int
	resultsRecorded      map[string]int
	dependentPopulations map[string]int
	finalizations        map[string]int
	durations            map[string][]float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		generations:          make(map[string]int),
		resultsRecorded:      make(map[string]int),
		dependentPopulations: make(map[string]int),
		finalizations:        make(map[string]int),
		durations:            make(map[string][]float64),
	}
}

func (m *Mock) IncGenerations(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generations[mode]++
}

func (m *Mock) IncResultsRecorded(phase string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded[phase]++
}

func (m *Mock) IncDependentPopulations(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dependentPopulations[kind]++
}

func (m *Mock) IncFinalizations(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalizations[outcome]++
}

func (m *Mock) ObserveOperationDuration(operation string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[operation] = append(m.durations[operation], seconds)
}

// Generations returns how many generations ended in mode.
func (m *Mock) Generations(mode string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generations[mode]
}

// ResultsRecorded returns how many results were recorded for phase.
func (m *Mock) ResultsRecorded(phase string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded[phase]
}

// DependentPopulations returns how many populations of kind happened.
func (m *Mock) DependentPopulations(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dependentPopulations[kind]
}

// Finalizations returns how many finalizations ended with outcome.
func (m *Mock) Finalizations(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finalizations[outcome]
}

// Durations returns the observed durations for operation.
func (m *Mock) Durations(operation string) []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.durations[operation]...)
}
