package middleware

import "strings"

// ExemptRule matches requests that bypass authentication. An empty Method
// matches any method.
type ExemptRule struct {
	PathPrefix string
	Method     string
}

// ExemptionTable is a static ordered rule set, evaluated top to bottom with
// first match winning; no match means authentication is required. Built once
// at startup and read-only afterwards.
type ExemptionTable []ExemptRule

// Exempt reports whether a request for method and path bypasses authentication.
func (t ExemptionTable) Exempt(method, path string) bool {
	for _, r := range t {
		if r.Method != "" && r.Method != method {
			continue
		}
		if strings.HasPrefix(path, r.PathPrefix) {
			return true
		}
	}
	return false
}
