// Package pathutil normalizes request paths for metric labels and parses
// numeric identifiers from request parameters.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/ingest/[a-z-]+$`), Template: "/ingest/:kind"},
	{Pattern: regexp.MustCompile(`^/swagger/.*$`), Template: "/swagger/*"},
}

// knownPaths are the static routes reported as-is.
var knownPaths = map[string]struct{}{
	"/articles":                  {},
	"/research":                  {},
	"/events":                    {},
	"/startups":                  {},
	"/startups/featured":         {},
	"/export/csv":                {},
	"/pins":                      {},
	"/dismissed":                 {},
	"/starred":                   {},
	"/star":                      {},
	"/notifications/startups":    {},
	"/notifications/preferences": {},
	"/health":                    {},
	"/ready":                     {},
	"/live":                      {},
	"/metrics":                   {},
}

// UnknownPath labels every path that is not a route of the API.
const UnknownPath = "/:unknown"

// NormalizePath returns the route template for path. The query string and a
// trailing slash are ignored; unrouted paths collapse to UnknownPath.
//
//	NormalizePath("/ingest/news")      // "/ingest/:kind"
//	NormalizePath("/articles?limit=5") // "/articles"
//	NormalizePath("/wp-admin.php")     // "/:unknown"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return UnknownPath
}
