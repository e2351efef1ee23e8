// Package binding connects a remote collection endpoint to a card
// rendering strategy.
//
// A View moves through Idle, Loading, Loaded and Failed. Each transition
// replaces the FetchState wholesale. Fetches are returned as tea.Cmd values
// so the caller's event loop runs them and feeds the result back through
// Update; results are tagged with the view's instance id and a generation
// number, and anything but the latest request for the mounted view is
// discarded. Screen derives the single output to draw: a placeholder, the
// empty message, a card grid, or an error line.
package binding
