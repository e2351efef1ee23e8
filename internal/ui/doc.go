// Package ui implements thwip's terminal browser using Bubble Tea.
//
// # Layout
//
//   - Header: logo, the Series and Publishers tabs, the active route title
//     and its load status
//   - Command bar: key hints, replaced by the ":" prompt while typing a path
//   - Grid: cards in a scrolling viewport, as many columns as fit
//   - Footer: the endpoint being shown or a transient notice, plus the
//     metadata credit
//
// # Pages
//
// The model keeps one binding.Page for the active route. Moving to another
// path of the same route passes the new parameter to that page; any other
// move unmounts it and mounts a fresh one from the router. Fetch results
// arrive as ordinary messages and are forwarded to the page, which drops
// anything it did not ask for last. Reload (r) remounts the route and is
// the way to retry after an error.
//
// # Selection
//
// The cursor is tracked by card key, so after a reload it returns to the
// same publisher, series or issue even if the list changed around it.
//
// # Preferences
//
// Theme changes and the last visited path are written to the prefs file
// so the next session resumes where this one stopped.
package ui
