package calc

import (
	"context"
	"sort"
)

// MockEvaluator is an Evaluator with a canned response, exported for tests in
// other packages.
type MockEvaluator struct {
	EngineName string
	Result     Result
	Err        error
	Fn         func(ctx context.Context, expr Expression) (Result, error)
}

// Name returns EngineName, or "mock" when unset.
func (m *MockEvaluator) Name() string {
	if m.EngineName == "" {
		return "mock"
	}
	return m.EngineName
}

// Evaluate returns the configured Result and Err, or calls Fn if provided.
func (m *MockEvaluator) Evaluate(ctx context.Context, expr Expression) (Result, error) {
	if m.Fn != nil {
		return m.Fn(ctx, expr)
	}
	return m.Result, m.Err
}

// TestFactory is an EvaluatorFactory backed by a fixed set of evaluators.
type TestFactory struct {
	evaluators map[string]Evaluator
}

// NewTestFactory creates a factory holding the given evaluators.
func NewTestFactory(evaluators map[string]Evaluator) *TestFactory {
	if evaluators == nil {
		evaluators = make(map[string]Evaluator)
	}
	return &TestFactory{evaluators: evaluators}
}

// Create returns the evaluator by name.
func (f *TestFactory) Create(name string) (Evaluator, error) {
	return f.Get(name)
}

// Get returns the evaluator by name.
func (f *TestFactory) Get(name string) (Evaluator, error) {
	ev, ok := f.evaluators[name]
	if !ok {
		return nil, &UnknownEngineError{Name: name}
	}
	return ev, nil
}

// List returns the sorted evaluator names.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.evaluators))
	for name := range f.evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is a no-op; evaluators are fixed at construction.
func (f *TestFactory) Register(string, func() coreEvaluator) error {
	return nil
}

// GetAll returns a copy of the evaluators.
func (f *TestFactory) GetAll() map[string]Evaluator {
	result := make(map[string]Evaluator, len(f.evaluators))
	for k, v := range f.evaluators {
		result[k] = v
	}
	return result
}
