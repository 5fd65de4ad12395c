// Package dispatch selects the nearest dispatchable vehicle for a target
// location. The search is a single pass over a materialized candidate list;
// there is no spatial index because fleet scopes are small (tens of vehicles
// per hospital).
package dispatch
