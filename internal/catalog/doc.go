// Package catalog is the HTTP client for the comic catalogue REST API.
//
// The client fetches one collection per call from an already resolved
// endpoint path such as "/api/series/12/issue_list/". It performs a single
// GET, never caches and never retries. The body must be a JSON array; the
// backend's paginated envelope ({"count", "next", "previous", "results"})
// is accepted too and yields its results.
//
// Every failure is returned as a *FetchError classified as NetworkError,
// HTTPError (with the status code) or ParseError. Decode turns the raw
// elements into one of the record variants:
//
//   - PublisherRecord: slug, name, image, issue_count
//   - SeriesRecord: id (or slug), name, image, issue_count
//   - IssueRecord: __str__ (or name + number), slug, image, page_count
//
// All variants implement Record, the projection list renderers consume.
// The series image may arrive nested as {"image": url}; ImageRef accepts
// both shapes.
package catalog
