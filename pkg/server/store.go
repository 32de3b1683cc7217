package server

import (
	"sync"
	"time"

	"confab/pkg/types"
)

// Store holds this server's replica of the federation-wide user and event
// directories. Check-and-insert is atomic under concurrent callers; every
// entity mutation happens under the store lock via UpdateEvent or the
// dedicated user mutators.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*types.User
	events map[string]*types.Event
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*types.User),
		events: make(map[string]*types.Event),
	}
}

// PutUserIfAbsent inserts u unless the name is taken. This is Phase 0/1 of
// the registration protocol.
func (s *Store) PutUserIfAbsent(u *types.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.users[u.Name]; taken {
		return false
	}
	s.users[u.Name] = u
	return true
}

// GetUser returns a copy; the stored record is only mutated under the lock.
func (s *Store) GetUser(name string) (types.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[name]
	if !ok {
		return types.User{}, false
	}
	return *u, true
}

func (s *Store) CommitUser(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[name]; ok {
		u.Committed = true
	}
}

// RollbackUser removes a tentative entry. A committed entry stays: the losing
// attempt that triggered this rollback must not erase an earlier winner.
func (s *Store) RollbackUser(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[name]; ok && !u.Committed {
		delete(s.users, name)
	}
}

func (s *Store) SetUserOnline(name string, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[name]; ok {
		u.Online = online
	}
}

func (s *Store) PutEventIfAbsent(e *types.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.events[e.Name]; taken {
		return false
	}
	if e.Invited == nil {
		e.Invited = make(map[string][]time.Time)
	}
	s.events[e.Name] = e
	return true
}

func (s *Store) CommitEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.events[name]; ok {
		e.Committed = true
	}
}

func (s *Store) RollbackEvent(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.events[name]; ok && !e.Committed {
		delete(s.events, name)
	}
}

// ViewEvent runs fn with the event under the read lock.
func (s *Store) ViewEvent(name string, fn func(*types.Event) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[name]
	if !ok {
		return types.ErrNotFound
	}
	return fn(e)
}

// UpdateEvent runs fn with the event under the write lock. All lifecycle
// mutations go through here.
func (s *Store) UpdateEvent(name string, fn func(*types.Event) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[name]
	if !ok {
		return types.ErrNotFound
	}
	return fn(e)
}
