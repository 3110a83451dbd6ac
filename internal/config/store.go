package config

import (
	"sync"
	"sync/atomic"
)

// ChangeFunc is called after the options change.
type ChangeFunc func(prev, next Options)

// Store holds the current options. Reads are lock free; writers are
// serialized and observers run after the new snapshot is visible.
type Store struct {
	current atomic.Pointer[Options]

	mu        sync.Mutex
	observers map[int]ChangeFunc
	nextID    int
}

// NewStore creates a store holding opts.
func NewStore(opts Options) *Store {
	s := &Store{observers: make(map[int]ChangeFunc)}
	opts = opts.Clone()
	s.current.Store(&opts)
	return s
}

// Get returns the current snapshot.
func (s *Store) Get() Options {
	return s.current.Load().Clone()
}

// Set validates and stores opts.
func (s *Store) Set(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	opts = opts.Clone()

	s.mu.Lock()
	old := *s.current.Load()
	s.current.Store(&opts)
	observers := make([]ChangeFunc, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(old, opts)
	}
	return nil
}

// Apply runs a ":set" argument list against the current options.
func (s *Store) Apply(args string) error {
	next, err := ParseSet(s.Get(), args)
	if err != nil {
		return err
	}
	return s.Set(next)
}

// OnChange registers fn and returns a function removing it.
func (s *Store) OnChange(fn ChangeFunc) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}
