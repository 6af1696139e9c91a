package calc

import (
	"fmt"
	"sort"
	"sync"
)

// EvaluatorFactory creates and caches Evaluator instances by engine name.
type EvaluatorFactory interface {
	// Create returns a new, uncached Evaluator for name.
	Create(name string) (Evaluator, error)

	// Get returns the cached Evaluator for name, creating it on first use.
	Get(name string) (Evaluator, error)

	// List returns the sorted names of the registered engines.
	List() []string

	// Register adds or replaces an engine.
	Register(name string, creator func() coreEvaluator) error

	// GetAll returns every registered engine, keyed by name.
	GetAll() map[string]Evaluator
}

// DefaultFactory is the thread-safe EvaluatorFactory used by the application.
// Every Evaluator it builds shares the factory's observers.
type DefaultFactory struct {
	mu         sync.RWMutex
	creators   map[string]func() coreEvaluator
	evaluators map[string]Evaluator
	observers  []Observer
}

// NewDefaultFactory creates a factory with the built-in engines registered.
//
// Pre-registered engines:
//   - "schoolbook": decimal digit arithmetic (package bignum)
//   - "reference": math/big
//
// Parameters:
//   - observers: Observers attached to every Evaluator the factory builds.
//
// Returns:
//   - *DefaultFactory: A new factory with the default engines registered.
func NewDefaultFactory(observers ...Observer) *DefaultFactory {
	f := &DefaultFactory{
		creators:   make(map[string]func() coreEvaluator),
		evaluators: make(map[string]Evaluator),
		observers:  observers,
	}
	_ = f.Register("schoolbook", func() coreEvaluator { return SchoolbookEngine{} })
	_ = f.Register("reference", func() coreEvaluator { return ReferenceEngine{} })
	return f
}

// Register adds an engine. An existing engine with the same name is replaced
// and its cached Evaluator discarded.
func (f *DefaultFactory) Register(name string, creator func() coreEvaluator) error {
	if name == "" || creator == nil {
		return fmt.Errorf("calc: invalid engine registration %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.evaluators, name)
	return nil
}

// Create builds a fresh Evaluator for name without caching it.
func (f *DefaultFactory) Create(name string) (Evaluator, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, &UnknownEngineError{Name: name}
	}
	return NewEvaluator(creator(), f.observers...), nil
}

// Get returns the cached Evaluator for name.
//
// Parameters:
//   - name: The engine name.
//
// Returns:
//   - Evaluator: The Evaluator instance.
//   - error: An *UnknownEngineError if the engine is not registered.
func (f *DefaultFactory) Get(name string) (Evaluator, error) {
	f.mu.RLock()
	if ev, exists := f.evaluators[name]; exists {
		f.mu.RUnlock()
		return ev, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if ev, exists := f.evaluators[name]; exists {
		return ev, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, &UnknownEngineError{Name: name}
	}
	ev := NewEvaluator(creator(), f.observers...)
	f.evaluators[name] = ev
	return ev, nil
}

// List returns the registered engine names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll initializes every registered engine and returns a copy of the cache.
func (f *DefaultFactory) GetAll() map[string]Evaluator {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.evaluators[name]; !exists {
			f.evaluators[name] = NewEvaluator(creator(), f.observers...)
		}
	}
	result := make(map[string]Evaluator, len(f.evaluators))
	for name, ev := range f.evaluators {
		result[name] = ev
	}
	return result
}

// MustGet is like Get but panics if the engine is not registered.
func (f *DefaultFactory) MustGet(name string) Evaluator {
	ev, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("calc: required engine not found: %s", name))
	}
	return ev
}

// Has reports whether an engine is registered under name.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

var globalFactory = NewDefaultFactory(NewLoggingObserver(nil), NewMetricsObserver())

// GlobalFactory returns the process-wide factory. Its evaluators log through
// the global zerolog logger and record result sizes in Prometheus.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterEngine registers an engine in the global factory.
func RegisterEngine(name string, creator func() coreEvaluator) error {
	return globalFactory.Register(name, creator)
}

// UnknownEngineError is returned when an engine name is not registered.
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return "unknown engine: " + e.Name
}
