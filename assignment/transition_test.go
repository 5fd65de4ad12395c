package assignment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-ems/fleet-dispatch/geo"
)

var (
	origin      = geo.Position{Lat: 50.0, Lon: 8.0}
	destination = geo.Position{Lat: 50.1, Lon: 8.1}
	medic       = Actor{ID: "u-7", Name: "Dispatcher Reyes"}
)

func activeAssignment(t *testing.T) Assignment {
	t.Helper()
	a := New("amb-1", origin, destination, PriorityCritical, time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC))
	require.Equal(t, StatusActive, a.Status)
	require.NotEmpty(t, a.ID)
	require.Nil(t, a.UpdatedBy)
	require.Nil(t, a.UpdatedAt)
	return a
}

func TestTransitionFromActive(t *testing.T) {
	now := time.Date(2026, 8, 26, 9, 30, 0, 0, time.UTC)

	for _, to := range []Status{StatusCleared, StatusTimeout, StatusCompleted} {
		t.Run(string(to), func(t *testing.T) {
			a := activeAssignment(t)
			updated, err := Transition(a, to, medic, nil, now)
			require.NoError(t, err)
			assert.Equal(t, to, updated.Status)
			require.NotNil(t, updated.UpdatedBy)
			assert.Equal(t, medic, *updated.UpdatedBy)
			require.NotNil(t, updated.UpdatedAt)
			assert.Equal(t, now, *updated.UpdatedAt)
			assert.Nil(t, updated.Notes)

			// The input value stays untouched.
			assert.Equal(t, StatusActive, a.Status)
			assert.Nil(t, a.UpdatedBy)
		})
	}
}

func TestTransitionSetsNotesOnlyWhenProvided(t *testing.T) {
	now := time.Now()
	a := activeAssignment(t)

	notes := "patient handed over at ER"
	updated, err := Transition(a, StatusCompleted, medic, &notes, now)
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
}

func TestTerminalStatesAreFinal(t *testing.T) {
	now := time.Now()
	a := activeAssignment(t)

	cleared, err := Transition(a, StatusCleared, medic, nil, now)
	require.NoError(t, err)

	// A follow-up transition out of a terminal state must fail and leave the
	// record as it was.
	got, err := Transition(cleared, StatusTimeout, medic, nil, now.Add(time.Minute))
	require.Error(t, err)

	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, StatusCleared, invalid.From)
	assert.Equal(t, StatusTimeout, invalid.To)
	assert.Equal(t, cleared, got)
}

func TestInvalidTransitions(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		from Status
		to   Status
	}{
		{name: "self transition", from: StatusActive, to: StatusActive},
		{name: "cleared to completed", from: StatusCleared, to: StatusCompleted},
		{name: "completed to active", from: StatusCompleted, to: StatusActive},
		{name: "timeout to cleared", from: StatusTimeout, to: StatusCleared},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := activeAssignment(t)
			a.Status = tt.from
			got, err := Transition(a, tt.to, medic, nil, now)
			var invalid *InvalidTransitionError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.from, invalid.From)
			assert.Equal(t, tt.to, invalid.To)
			assert.Equal(t, a, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	for _, valid := range []string{"critical", "high", "medium", "low"} {
		p, err := ParsePriority(valid)
		require.NoError(t, err)
		assert.Equal(t, Priority(valid), p)
	}
	_, err := ParsePriority("urgent")
	assert.Error(t, err)
}
