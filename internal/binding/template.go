package binding

import (
	"net/url"
	"strings"
)

// paramToken is the single positional placeholder an endpoint may carry.
const paramToken = "{id}"

// Template is an endpoint path such as "/api/series/{id}/issue_list/".
type Template string

// HasParam reports whether the template needs a route parameter.
func (t Template) HasParam() bool {
	return strings.Contains(string(t), paramToken)
}

// Resolve substitutes param into the template as one escaped path segment.
// Templates without a placeholder ignore param.
func (t Template) Resolve(param string) string {
	if !t.HasParam() {
		return string(t)
	}
	return strings.ReplaceAll(string(t), paramToken, url.PathEscape(param))
}
