package httpclient

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		opts      Options
		shouldErr bool
	}{
		{"https", "https://example.com/universe.yaml", Options{}, false},
		{"http", "http://example.com", Options{}, false},
		{"file scheme", "file:///etc/passwd", Options{}, true},
		{"ftp scheme", "ftp://example.com/x", Options{}, true},
		{"missing host", "http:///x", Options{}, true},
		{"localhost allowed by default", "http://localhost:8080/x", Options{}, false},
		{"localhost blocked", "http://localhost:8080/x", Options{BlockPrivate: true}, true},
		{"private ip blocked", "http://10.1.2.3/x", Options{BlockPrivate: true}, true},
		{"public ip", "http://8.8.8.8/x", Options{BlockPrivate: true}, false},
		{"custom schemes", "ftp://example.com/x", Options{AllowedSchemes: []string{"ftp"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.url)
			require.NoError(t, err)
			err = ValidateURL(u, tt.opts)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip      string
		private bool
	}{
		{"10.0.0.1", true},
		{"172.16.5.4", true},
		{"172.32.0.1", false},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"169.254.169.254", true},
		{"8.8.8.8", false},
		{"::1", true},
		{"fe80::1", true},
		{"fd00::1", true},
		{"2001:4860:4860::8888", false},
	}
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.private, isPrivateIP(net.ParseIP(tt.ip)))
		})
	}
}

func TestIsLocalhost(t *testing.T) {
	assert.True(t, isLocalhost("LOCALHOST"))
	assert.True(t, isLocalhost("admin.localhost"))
	assert.False(t, isLocalhost("local.host"))
}

func TestDefaults(t *testing.T) {
	client := New(Options{})
	assert.Equal(t, defaultTimeout, client.Timeout)

	client = New(Options{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, client.Timeout)
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "format: 1\n")
	}))
	defer server.Close()

	resp, err := New(Options{}).Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "format: 1\n", string(body))
}

func TestBlockPrivateRefusesLoopbackServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	_, err := New(Options{BlockPrivate: true}).Get(server.URL)
	assert.Error(t, err)
}

func TestMaxRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer server.Close()

	resp, err := New(Options{MaxRedirects: 3}).Get(server.URL)
	if err == nil {
		resp.Body.Close()
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped after 3 redirects")
}

func TestRedirectToForbiddenScheme(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "ftp://example.com/universe.yaml", http.StatusFound)
	}))
	defer server.Close()

	resp, err := New(Options{}).Get(server.URL)
	if err == nil {
		resp.Body.Close()
	}
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect blocked")
}
