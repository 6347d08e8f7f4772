package state

import "sync"

// Store serializes dispatches and notifies subscribers with each new snapshot
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// NewStore creates a store holding initial
func NewStore(initial State) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int]func(State)),
	}
}

// State returns the current snapshot
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and notifies subscribers outside the lock
func (s *Store) Dispatch(a Action) State {
	return s.Update(func(State) Action { return a })
}

// Update builds an action from the current snapshot and applies it in one
// step, so concurrent read-modify-write callers never lose each other's
// changes. A nil action leaves the state untouched and notifies no one.
func (s *Store) Update(build func(State) Action) State {
	next, listeners := s.apply(build)
	for _, fn := range listeners {
		fn(next)
	}
	return next
}

func (s *Store) apply(build func(State) Action) (State, []func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := build(s.state)
	if a == nil {
		return s.state, nil
	}
	s.state = Reduce(s.state, a)

	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return s.state, listeners
}

// Subscribe registers fn for every later dispatch
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
