package sanitizer

import (
	"strings"
)

// TrimAndNormalize trims s and collapses every run of whitespace to a
// single space.
func TrimAndNormalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeURL forces https, lowercases the host and drops a trailing slash.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(raw, "https://"); ok {
		raw = rest
	} else {
		raw = strings.TrimPrefix(raw, "http://")
	}

	host, path, hasPath := strings.Cut(raw, "/")
	normalized := "https://" + strings.ToLower(host)
	if hasPath {
		normalized += "/" + path
	}
	return strings.TrimSuffix(normalized, "/")
}
