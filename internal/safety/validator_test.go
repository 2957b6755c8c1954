package safety

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeLookup returns a canned address list per hostname.
func fakeLookup(hosts map[string][]string) LookupFunc {
	return func(_ context.Context, host string) ([]net.IPAddr, error) {
		ips, ok := hosts[host]
		if !ok {
			return nil, fmt.Errorf("no such host: %s", host)
		}
		addrs := make([]net.IPAddr, 0, len(ips))
		for _, ip := range ips {
			addrs = append(addrs, net.IPAddr{IP: net.ParseIP(ip)})
		}
		return addrs, nil
	}
}

func newTestValidator(t *testing.T, hosts map[string][]string) *Validator {
	t.Helper()
	return NewValidator(zap.NewNop(), WithLookup(fakeLookup(hosts)))
}

func TestValidate_AcceptsPublicHTTPS(t *testing.T) {
	v := newTestValidator(t, map[string][]string{
		"examplefund.com": {"93.184.216.34"},
	})

	err := v.Validate(context.Background(), "https://examplefund.com/portfolio")
	assert.NoError(t, err)
}

func TestValidate_RejectsMetadataIP(t *testing.T) {
	v := newTestValidator(t, nil)

	err := v.Validate(context.Background(), "http://169.254.169.254/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not public")
}

func TestValidate_RejectsBlockedHost(t *testing.T) {
	v := newTestValidator(t, nil)

	err := v.Validate(context.Background(), "http://metadata.google.internal/computeMetadata")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked metadata host")
}

func TestValidate_RejectsLoopbackResolution(t *testing.T) {
	v := newTestValidator(t, map[string][]string{
		"sneaky.example.com": {"127.0.0.1"},
	})

	err := v.Validate(context.Background(), "https://sneaky.example.com/portfolio")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-public")
}

func TestValidate_RejectsWhenAnyAddressIsPrivate(t *testing.T) {
	// Dual-homed host: one public, one private answer. All must be public.
	v := newTestValidator(t, map[string][]string{
		"mixed.example.com": {"93.184.216.34", "10.0.0.5"},
	})

	err := v.Validate(context.Background(), "https://mixed.example.com/")
	assert.Error(t, err)
}

func TestValidate_RejectsPrivateIPv6(t *testing.T) {
	v := newTestValidator(t, map[string][]string{
		"v6.example.com": {"fd00::1"},
	})

	err := v.Validate(context.Background(), "https://v6.example.com/")
	assert.Error(t, err)
}

func TestValidate_RejectsBadScheme(t *testing.T) {
	v := newTestValidator(t, nil)

	assert.Error(t, v.Validate(context.Background(), "ftp://example.com/file"))
	assert.Error(t, v.Validate(context.Background(), "file:///etc/passwd"))
}

func TestValidate_RejectsOverlongURL(t *testing.T) {
	v := newTestValidator(t, nil)

	long := "https://example.com/" + strings.Repeat("a", DefaultMaxURLLength)
	err := v.Validate(context.Background(), long)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestValidate_RejectsDNSFailure(t *testing.T) {
	v := newTestValidator(t, nil)

	err := v.Validate(context.Background(), "https://does-not-resolve.example.invalid/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DNS resolution failed")
}

func TestValidate_RejectsEmptyHostname(t *testing.T) {
	v := newTestValidator(t, nil)

	assert.Error(t, v.Validate(context.Background(), "https:///portfolio"))
}
