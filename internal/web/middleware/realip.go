package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// TrustedRealIP rewrites RemoteAddr and X-Real-IP from forwarding headers,
// but only when the connection comes from a trusted proxy CIDR. Otherwise
// the socket address stands, so untrusted clients cannot spoof their IP to
// dodge rate limiting or pollute the audit log.
func TrustedRealIP(trustedCIDRs []string) func(http.Handler) http.Handler {
	trustedNets := parseCIDRs(trustedCIDRs)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			ip := net.ParseIP(host)
			if ip != nil && fromTrusted(ip, trustedNets) {
				if realIP := clientIPFromHeaders(r); realIP != "" {
					r.RemoteAddr = realIP
				}
			}

			r.Header.Set("X-Real-IP", strings.SplitN(r.RemoteAddr, ":", 2)[0])
			next.ServeHTTP(w, r)
		})
	}
}

// parseCIDRs parses the configured list once at startup. Bare IPs are
// accepted as single-host networks.
func parseCIDRs(cidrs []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, cidr := range cidrs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}

		_, network, err := net.ParseCIDR(cidr)
		if err == nil {
			nets = append(nets, network)
			continue
		}

		if ip := net.ParseIP(cidr); ip != nil {
			mask := net.CIDRMask(128, 128)
			if ip.To4() != nil {
				mask = net.CIDRMask(32, 32)
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: mask})
			continue
		}

		slog.Warn("realip: invalid trusted proxy CIDR, skipping", "cidr", cidr)
	}
	return nets
}

func fromTrusted(ip net.IP, nets []*net.IPNet) bool {
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// clientIPFromHeaders returns the first parseable address from X-Real-IP or
// the leftmost X-Forwarded-For entry.
func clientIPFromHeaders(r *http.Request) string {
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		if net.ParseIP(realIP) != nil {
			return realIP
		}
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}

	return ""
}
