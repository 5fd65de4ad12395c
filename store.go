package fleetdispatch

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/lifeline-ems/fleet-dispatch/assignment"
)

// ErrAssignmentNotFound reports an unknown assignment ID.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentStore is the in-memory assignment collaborator. It owns
// persistence of transition results; the state machine itself stays a pure
// function in the assignment package.
type AssignmentStore struct {
	mu   sync.RWMutex
	byID map[string]assignment.Assignment
}

// NewAssignmentStore creates an empty store.
func NewAssignmentStore() *AssignmentStore {
	return &AssignmentStore{byID: map[string]assignment.Assignment{}}
}

// Put inserts or replaces an assignment record.
func (s *AssignmentStore) Put(a assignment.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[a.ID] = a
}

// Get looks up one assignment by ID.
func (s *AssignmentStore) Get(id string) (assignment.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	return a, ok
}

// List returns assignments newest first, optionally restricted to active ones.
func (s *AssignmentStore) List(activeOnly bool) []assignment.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]assignment.Assignment, 0, len(s.byID))
	for _, a := range s.byID {
		if activeOnly && a.Status != assignment.StatusActive {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Transition applies a status transition to a stored assignment and persists
// the result. On *assignment.InvalidTransitionError the stored record is left
// unchanged.
func (s *AssignmentStore) Transition(id string, to assignment.Status, actor assignment.Actor, notes *string, now time.Time) (assignment.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[id]
	if !ok {
		return assignment.Assignment{}, ErrAssignmentNotFound
	}
	updated, err := assignment.Transition(current, to, actor, notes, now)
	if err != nil {
		return assignment.Assignment{}, err
	}
	s.byID[id] = updated
	return updated, nil
}
