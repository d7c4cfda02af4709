// Package clientip extracts a best-effort client identifier from forwarded
// request headers. The result is advisory only, since headers are trivially
// spoofable, and is used purely as a rate-limit bucket key.
package clientip

import (
	"net/http"
	"strings"
)

// Unknown is returned when no address header is present.
const Unknown = "unknown"

// FromRequest resolves the client identifier by checking, in priority order,
// X-Forwarded-For (first comma-separated token), X-Real-IP, then
// CF-Connecting-IP.
func FromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if cfIP := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); cfIP != "" {
		return cfIP
	}

	return Unknown
}
