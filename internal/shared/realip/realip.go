// Package realip resolves the originating client address of an HTTP request.
//
// Requests routed through reverse proxies carry the original client address
// in forwarding headers; the transport-layer remote address is only the last
// hop. Resolution precedence:
//  1. X-Forwarded-For: first entry of the chain (the original client).
//  2. X-Real-IP: verbatim.
//  3. The connection's remote address, with any port stripped.
//
// No validation is performed on header values; a proxy chain is trusted as
// presented.
package realip

import (
	"net"
	"net/http"
	"strings"
)

// Resolve derives the client origin from forwarding headers, falling back to
// the transport remote address. It never fails: step 3 is always resolvable
// since it is the live connection's address.
func Resolve(headers http.Header, remoteAddr string) string {
	if fwd := headers.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}

	if real := headers.Get("X-Real-IP"); real != "" {
		return real
	}

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

// FromRequest resolves the client origin of an inbound request.
func FromRequest(r *http.Request) string {
	return Resolve(r.Header, r.RemoteAddr)
}
