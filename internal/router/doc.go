// Package router owns the in-app route table.
//
// Paths are matched with a chi mux, so patterns read the same as the HTML
// server's. Each match mounts a brand new binding.Page; a surface that
// moves between two paths of the same route can instead pass the new
// parameter to its existing page.
package router
