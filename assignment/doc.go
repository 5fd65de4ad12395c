// Package assignment models dispatched routes and the finite state machine
// that governs their lifecycle.
//
// An assignment starts active and may move to exactly one of cleared, timeout
// or completed; all three are terminal. Transition is a pure function over an
// assignment value — no hidden mutation, no I/O — so the store layer decides
// when and whether the result is persisted.
package assignment
