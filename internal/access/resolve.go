package access

import "strings"

// Has reports whether the map grants the given action at the given request
// path. requestPath may carry a query string; only the part before '?' is
// used as the map key. Query-based tab disambiguation is a UI concern and is
// deliberately invisible to permission resolution.
//
// Lookup order:
//  1. normalize: strip the query string, then a single trailing '/'
//     (the root "/" is never stripped to empty),
//  2. exact match on the normalized path,
//  3. fallback: the first key in insertion order that is a prefix of the
//     normalized path.
//
// The prefix fallback means a shorter, earlier-inserted key can shadow a
// more specific later one. That ordering hazard is inherited reference
// behavior and is kept as-is.
//
// Has never fails: unknown paths and unknown actions resolve to false.
func (m *PermissionMap) Has(requestPath, actionName string) bool {
	if m == nil {
		return false
	}

	path := NormalizePath(requestPath)

	if actions, ok := m.perms[path]; ok {
		return actions[actionName]
	}

	for _, key := range m.keys {
		if strings.HasPrefix(path, key) {
			return m.perms[key][actionName]
		}
	}

	return false
}

// NormalizePath reduces a request path to its map-key form: the query string
// is dropped and one trailing slash is stripped, except for the root path.
func NormalizePath(requestPath string) string {
	path, _, _ := strings.Cut(requestPath, "?")

	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}

	return path
}
