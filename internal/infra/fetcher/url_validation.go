// Package fetcher retrieves article pages and extracts readable text for
// content enhancement.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
)

// Fetch failures. The pipeline treats all of them alike, they exist for
// logs and tests.
var (
	ErrInvalidURL        = errors.New("invalid URL or unsupported scheme")
	ErrPrivateIP         = errors.New("address is not publicly routable")
	ErrTooManyRedirects  = errors.New("too many redirects")
	ErrBodyTooLarge      = errors.New("response body too large")
	ErrTimeout           = errors.New("request timeout")
	ErrReadabilityFailed = errors.New("content extraction failed")
)

// sharedAddressSpace is RFC 6598 carrier-grade NAT space, which netip does
// not classify as private.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// checkTarget accepts only absolute http(s) URLs. With denyPrivate set the
// host is resolved and every address must be publicly routable.
func checkTarget(ctx context.Context, rawURL string, denyPrivate bool) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q not allowed", ErrInvalidURL, u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("%w: empty host", ErrInvalidURL)
	}
	if !denyPrivate {
		return nil
	}

	// IP リテラルは DNS を引かない
	if addr, err := netip.ParseAddr(host); err == nil {
		return checkAddr(host, addr)
	}
	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrInvalidURL, host, err)
	}
	for _, addr := range addrs {
		if err := checkAddr(host, addr); err != nil {
			return err
		}
	}
	return nil
}

func checkAddr(host string, addr netip.Addr) error {
	if internalAddr(addr) {
		return fmt.Errorf("%w: %s resolves to %s", ErrPrivateIP, host, addr)
	}
	return nil
}

func internalAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() || addr.IsUnspecified() || sharedAddressSpace.Contains(addr)
}
