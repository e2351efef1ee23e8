// Package web serves the catalogue as HTML card grids.
//
// Each request resolves its path through the router, mounts a fresh view,
// runs the view's single fetch inline and renders the resulting screen with
// gomponents. Upstream failures render the error screen with 502. The page
// shell boosts links with htmx so moving between lists swaps the body in
// place instead of reloading.
package web
