package v1 // import "github.com/bookdenapp/bookden/api/v1"

import (
	"net/http"
	"strings"

	"github.com/bookdenapp/bookden/util"
)

var authenticationAllowlistPaths = map[string]bool{
	"/api/v1/auth/register": true,
	"/api/v1/auth/login":    true,
	"/healthcheck":          true,
	"/version":              true,
}

// isUnauthorizeAllowed returns whether the request can skip the
// authentication check. The public catalog surface is read-only, every
// mutation and every personalized read needs a verified token.
func isUnauthorizeAllowed(r *http.Request) bool {
	if authenticationAllowlistPaths[r.URL.Path] {
		return true
	}
	if r.Method != http.MethodGet && r.Method != http.MethodOptions {
		return false
	}
	if strings.HasPrefix(r.URL.Path, "/api/v1/books/personalized/") {
		return false
	}
	return util.HasPrefixes(r.URL.Path,
		"/api/v1/books",
		"/api/v1/genres",
		"/api/v1/tutorials",
	)
}

// isOnlyForAdminAllowedPath returns whether the path needs the ADMIN
// role. Catalog, genre and tutorial mutations are admin-only, the one
// exception is review submission which any authenticated reader may do.
func isOnlyForAdminAllowedPath(method, path string) bool {
	if util.HasPrefixes(path, "/api/v1/admin") {
		return true
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		if util.HasPrefixes(path, "/api/v1/books", "/api/v1/genres", "/api/v1/tutorials") {
			return !strings.HasSuffix(path, "/review")
		}
	}
	return false
}
