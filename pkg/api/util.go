package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	unixPrefix  = "unix:"
	httpPrefix  = "http://"
	httpsPrefix = "https://"

	// unixHost is the placeholder host used in URLs of requests sent over a unix socket
	unixHost = "unix"
)

// Address denotes a location an API is served on or queried at. It is either a TCP
// host:port (with optional scheme) or a unix socket given as unix:/path/to/socket
type Address struct {
	Scheme string
	Host   string
	Socket string
}

// ParseAddress parses addr. Without an explicit scheme, http is assumed
func ParseAddress(addr string) Address {
	addr = strings.TrimSpace(addr)
	switch {
	case strings.HasPrefix(addr, unixPrefix):
		return Address{Scheme: "http", Host: unixHost, Socket: filepath.Clean(strings.TrimPrefix(addr, unixPrefix))}
	case strings.HasPrefix(addr, httpsPrefix):
		return Address{Scheme: "https", Host: strings.TrimSuffix(strings.TrimPrefix(addr, httpsPrefix), "/")}
	case strings.HasPrefix(addr, httpPrefix):
		return Address{Scheme: "http", Host: strings.TrimSuffix(strings.TrimPrefix(addr, httpPrefix), "/")}
	}
	return Address{Scheme: "http", Host: addr}
}

// IsUnix returns true if the address refers to a unix socket
func (a Address) IsUnix() bool {
	return a.Socket != ""
}

// String returns the address in the form it was parsed from
func (a Address) String() string {
	if a.IsUnix() {
		return unixPrefix + a.Socket
	}
	return a.Scheme + "://" + a.Host
}

// URL returns the full URL for path on the address
func (a Address) URL(path string) string {
	return fmt.Sprintf("%s://%s%s", a.Scheme, a.Host, path)
}

// Listen opens a listener on the address. Stale socket files are removed before binding
func (a Address) Listen() (net.Listener, error) {
	if !a.IsUnix() {
		return net.Listen("tcp", a.Host)
	}
	if err := os.Remove(a.Socket); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale socket %s: %w", a.Socket, err)
	}
	return net.Listen("unix", a.Socket)
}

// Transport returns a round tripper that reaches the address. For TCP addresses, base is
// returned as is
func (a Address) Transport(base *http.Transport) *http.Transport {
	if !a.IsUnix() {
		return base
	}
	t := base.Clone()
	socket := a.Socket
	t.DialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "unix", socket)
	}
	return t
}
