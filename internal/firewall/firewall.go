// Package firewall implements the two write-path/health-path trust
// surfaces: an IP allowlist for writes (with trusted-proxy header
// unwrapping) and a shared bearer secret for health.
package firewall

import (
	"net"
	"net/http"
	"os"

	"imagecdn/internal/applog"
	"imagecdn/internal/config"
)

// DefaultSecret is used in debug mode when CDN_SECRET is unset.
const DefaultSecret = "d3v_secret"

// Secret resolves CDN_SECRET. In release mode (CDN_ENV=release) a missing
// secret is a FatalStartup condition; in debug mode it falls back to
// DefaultSecret.
func Secret() string {
	if v := os.Getenv("CDN_SECRET"); v != "" {
		return v
	}
	if config.IsRelease() {
		applog.Fatal("CDN_SECRET must be set in release mode")
	}
	return DefaultSecret
}

// CheckBearer reports whether the Authorization header matches secret
// exactly.
func CheckBearer(r *http.Request, secret string) bool {
	return r.Header.Get("Authorization") == secret
}

// RemoteIP resolves the caller's address for the allowlist check: X-Real-IP
// is honored only when the socket peer itself is loopback (a trusted
// reverse proxy); any other peer has the header ignored to prevent
// spoofing.
func RemoteIP(r *http.Request) net.IP {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer := net.ParseIP(host)

	if peer != nil && peer.IsLoopback() {
		if real := r.Header.Get("X-Real-IP"); real != "" {
			if parsed := net.ParseIP(real); parsed != nil {
				return parsed
			}
		}
	}
	return peer
}

// Allowed reports whether the resolved caller IP is permitted to write,
// given the configured firewall. A disabled firewall (empty allowlist)
// always allows.
func Allowed(fw config.Firewall, r *http.Request) (net.IP, bool) {
	if !fw.Enabled() {
		return RemoteIP(r), true
	}
	ip := RemoteIP(r)
	return ip, ip != nil && fw.Allows(ip)
}
