package assignment

import (
	"fmt"
	"time"
)

// InvalidTransitionError reports a transition the lifecycle graph does not
// permit. The assignment it was requested against is left untouched.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid assignment transition from %q to %q", e.From, e.To)
}

// The lifecycle graph: active is the only non-terminal state. Cleared,
// timeout and completed have no outgoing edges.
var allowedTransitions = map[Status]map[Status]bool{
	StatusActive: {
		StatusCleared:   true,
		StatusTimeout:   true,
		StatusCompleted: true,
	},
}

// Transition applies a status change and returns the updated copy. On
// success the copy carries the new status, the acting user and the supplied
// instant; notes are replaced only when the caller provides them. Any request
// the graph does not allow, including self-transitions and anything out of a
// terminal state, fails with *InvalidTransitionError and the input value is
// returned unchanged.
func Transition(a Assignment, to Status, actor Actor, notes *string, now time.Time) (Assignment, error) {
	if !allowedTransitions[a.Status][to] {
		return a, &InvalidTransitionError{From: a.Status, To: to}
	}
	updated := a
	updated.Status = to
	updated.UpdatedBy = &Actor{ID: actor.ID, Name: actor.Name}
	ts := now
	updated.UpdatedAt = &ts
	if notes != nil {
		n := *notes
		updated.Notes = &n
	}
	return updated, nil
}
