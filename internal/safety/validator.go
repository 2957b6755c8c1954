// Package safety validates seed URLs before any network work is done with
// them. The check resolves hostnames and inspects every returned address, so
// it defends against server-side request forgery rather than just pattern
// matching the URL string.
package safety

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxURLLength caps accepted seed URL length.
const DefaultMaxURLLength = 2048

// Error describes why a URL was rejected. Rejection is never fatal to a run;
// the caller logs the reason and skips the URL.
type Error struct {
	URL    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unsafe url %s: %s", e.URL, e.Reason)
}

// LookupFunc resolves a hostname to its addresses. It is injectable so tests
// can run without DNS.
type LookupFunc func(ctx context.Context, host string) ([]net.IPAddr, error)

// Validator rejects unsafe or out-of-policy seed URLs.
type Validator struct {
	maxURLLength int
	blockedHosts map[string]struct{}
	lookup       LookupFunc
	logger       *zap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLookup overrides the DNS lookup function.
func WithLookup(lookup LookupFunc) Option {
	return func(v *Validator) { v.lookup = lookup }
}

// WithMaxURLLength overrides the URL length cap.
func WithMaxURLLength(n int) Option {
	return func(v *Validator) { v.maxURLLength = n }
}

// NewValidator creates a Validator with the default blocklist (cloud
// metadata hosts) and the system resolver.
func NewValidator(logger *zap.Logger, opts ...Option) *Validator {
	v := &Validator{
		maxURLLength: DefaultMaxURLLength,
		blockedHosts: map[string]struct{}{
			"metadata.google.internal":  {},
			"metadata.google.internal.": {},
		},
		lookup: func(ctx context.Context, host string) ([]net.IPAddr, error) {
			return net.DefaultResolver.LookupIPAddr(ctx, host)
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns nil when the URL is safe to fetch, or an *Error naming the
// rejection reason. All resolved addresses, IPv4 and IPv6, must be public.
func (v *Validator) Validate(ctx context.Context, rawURL string) error {
	if len(rawURL) > v.maxURLLength {
		return v.reject(rawURL, fmt.Sprintf("URL too long (%d chars)", len(rawURL)))
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return v.reject(rawURL, "malformed URL")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return v.reject(rawURL, fmt.Sprintf("scheme %q not allowed", parsed.Scheme))
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return v.reject(rawURL, "empty hostname")
	}

	if _, blocked := v.blockedHosts[strings.ToLower(hostname)]; blocked {
		return v.reject(rawURL, "blocked metadata host")
	}

	// An IP literal needs no DNS round trip.
	if ip := net.ParseIP(hostname); ip != nil {
		if !isPublicIP(ip) {
			return v.reject(rawURL, fmt.Sprintf("address %s is not public", ip))
		}
		return nil
	}

	addrs, err := v.lookup(ctx, hostname)
	if err != nil || len(addrs) == 0 {
		return v.reject(rawURL, "DNS resolution failed")
	}

	for _, addr := range addrs {
		if !isPublicIP(addr.IP) {
			return v.reject(rawURL, fmt.Sprintf("resolves to non-public address %s", addr.IP))
		}
	}

	return nil
}

func (v *Validator) reject(rawURL, reason string) error {
	v.logger.Warn("rejecting unsafe URL",
		zap.String("url", truncate(rawURL, 120)),
		zap.String("reason", reason))
	return &Error{URL: truncate(rawURL, 120), Reason: reason}
}

// isPublicIP reports whether the address is globally routable: not private,
// loopback, link-local, multicast, unspecified, or in a reserved block.
func isPublicIP(ip net.IP) bool {
	if ip.IsPrivate() || ip.IsLoopback() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsMulticast() {
		return false
	}
	for _, block := range reservedBlocks {
		if block.Contains(ip) {
			return false
		}
	}
	return true
}

// reservedBlocks are special-use ranges not covered by the net.IP predicates.
var reservedBlocks = mustParseCIDRs(
	"0.0.0.0/8",       // "this network"
	"100.64.0.0/10",   // carrier-grade NAT
	"192.0.0.0/24",    // IETF protocol assignments
	"192.0.2.0/24",    // TEST-NET-1
	"198.18.0.0/15",   // benchmarking
	"198.51.100.0/24", // TEST-NET-2
	"203.0.113.0/24",  // TEST-NET-3
	"240.0.0.0/4",     // reserved for future use
	"2001:db8::/32",   // IPv6 documentation
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	blocks := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, block, err := net.ParseCIDR(c)
		if err != nil {
			panic(fmt.Sprintf("bad reserved CIDR %s: %v", c, err))
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
