// Package httpclient builds the HTTP client used to download remote type
// manifests.
package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matsim-eth/python-matsim/errors"
)

// Options configures a download client. Zero values select the defaults.
type Options struct {
	Timeout        time.Duration // default 60s
	MaxRedirects   int           // default 10
	AllowedSchemes []string      // default http, https
	BlockPrivate   bool          // refuse loopback, private and link-local hosts
}

const (
	defaultTimeout      = 60 * time.Second
	defaultMaxRedirects = 10
)

// New returns an http.Client enforcing opts on the first request and on
// every redirect.
func New(opts Options) *http.Client {
	opts = withDefaults(opts)

	client := &http.Client{Timeout: opts.Timeout}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= opts.MaxRedirects {
			return errors.Newf("stopped after %d redirects", opts.MaxRedirects)
		}
		if err := ValidateURL(req.URL, opts); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}
		return nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.BlockPrivate {
		dialer := &net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, errors.Wrap(err, "invalid address")
			}
			// resolve here so a rebinding DNS answer cannot slip past ValidateURL
			ips, err := net.DefaultResolver.LookupIP(ctx, "ip", host)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to resolve host %q", host)
			}
			for _, ip := range ips {
				if isPrivateIP(ip) {
					return nil, errors.Newf("private IP address blocked: %s", ip)
				}
			}
			return dialer.DialContext(ctx, network, addr)
		}
	}
	client.Transport = &validatingTransport{base: transport, opts: opts}
	return client
}

// validatingTransport checks the initial request URL; redirects are
// checked by CheckRedirect.
type validatingTransport struct {
	base http.RoundTripper
	opts Options
}

func (t *validatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := ValidateURL(req.URL, t.opts); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// ValidateURL reports whether u may be fetched under opts.
func ValidateURL(u *url.URL, opts Options) error {
	opts = withDefaults(opts)

	scheme := strings.ToLower(u.Scheme)
	allowed := false
	for _, s := range opts.AllowedSchemes {
		if scheme == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, opts.AllowedSchemes)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return errors.New("URL missing hostname")
	}

	if opts.BlockPrivate {
		if isLocalhost(hostname) {
			return errors.New("localhost access blocked")
		}
		if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
			return errors.Newf("private IP address blocked: %s", hostname)
		}
	}
	return nil
}

func withDefaults(opts Options) Options {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = defaultMaxRedirects
	}
	if len(opts.AllowedSchemes) == 0 {
		opts.AllowedSchemes = []string{"http", "https"}
	}
	return opts
}

var privateBlocks = []net.IPNet{
	{IP: net.IPv4(10, 0, 0, 0), Mask: net.CIDRMask(8, 32)},
	{IP: net.IPv4(172, 16, 0, 0), Mask: net.CIDRMask(12, 32)},
	{IP: net.IPv4(192, 168, 0, 0), Mask: net.CIDRMask(16, 32)},
	{IP: net.IPv4(127, 0, 0, 0), Mask: net.CIDRMask(8, 32)},   // loopback
	{IP: net.IPv4(169, 254, 0, 0), Mask: net.CIDRMask(16, 32)}, // link-local
	{IP: net.IPv4(0, 0, 0, 0), Mask: net.CIDRMask(8, 32)},
	{IP: net.IPv4(224, 0, 0, 0), Mask: net.CIDRMask(4, 32)}, // multicast
	{IP: net.IPv4(240, 0, 0, 0), Mask: net.CIDRMask(4, 32)}, // reserved
}

// isPrivateIP checks if an IP is in private or special use ranges
func isPrivateIP(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		for _, block := range privateBlocks {
			if block.Contains(ip4) {
				return true
			}
		}
		return false
	}
	if len(ip) != net.IPv6len {
		return false
	}
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsMulticast() || ip.IsUnspecified() {
		return true
	}
	// unique local fc00::/7
	return ip[0]&0xfe == 0xfc
}

// isLocalhost checks for localhost variants
func isLocalhost(hostname string) bool {
	hostname = strings.ToLower(hostname)
	return hostname == "localhost" ||
		hostname == "localhost.localdomain" ||
		strings.HasSuffix(hostname, ".localhost")
}
