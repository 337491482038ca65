package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/els0r/netproto/pkg/api"
	"github.com/els0r/netproto/pkg/api/client"
	npserver "github.com/els0r/netproto/pkg/api/netproto/server"
	"github.com/els0r/netproto/pkg/protocols"
	"github.com/stretchr/testify/require"
)

const testProtocols = `ip	0	IP
icmp	1	ICMP
tcp	6	TCP
udp	17	UDP
ddp	37	DDP datagram-delivery
`

func newTestDirectory() *protocols.FileDirectory {
	return protocols.NewFileDirectory("protocols", protocols.WithFS(fstest.MapFS{
		"protocols": &fstest.MapFile{Data: []byte(testProtocols)},
	}))
}

type lookupOnly struct {
	protocols.Directory
}

// testOpts make the client distinguishable from the server running in the same process
var testOpts = []client.Option{
	client.WithRetry(false),
	client.WithRequestTimeout(5 * time.Second),
	client.WithHeader(api.RuntimeIDHeaderKey, "test-client"),
}

func newTestClient(t *testing.T, d protocols.Directory) *Client {
	t.Helper()

	ts := httptest.NewServer(npserver.New("localhost:0", d).Router())
	t.Cleanup(ts.Close)

	return New(ts.URL, testOpts...)
}

func TestLookup(t *testing.T) {
	c := newTestClient(t, newTestDirectory())
	ctx := context.Background()

	r, err := c.LookupByName(ctx, "TCP")
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, "tcp", r.Name())
	require.Equal(t, 6, r.Number())
	require.Equal(t, []string{"TCP"}, r.Aliases())

	r, err = c.LookupByNumber(ctx, 37)
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, "ddp", r.Name())
	require.Equal(t, []string{"DDP", "datagram-delivery"}, r.Aliases())

	r, err = c.LookupByName(ctx, "this-protocol-does-not-exist-xyz")
	require.NoError(t, err)
	require.Nil(t, r)

	r, err = c.LookupByNumber(ctx, 999999)
	require.NoError(t, err)
	require.Nil(t, r)

	t.Run("answered locally", func(t *testing.T) {
		r, err := c.ByName("")
		require.NoError(t, err)
		require.Nil(t, r)

		r, err = c.ByNumber(-1)
		require.NoError(t, err)
		require.Nil(t, r)

		r, err = c.ByName("tcp\x00")
		require.ErrorIs(t, err, protocols.ErrInvalidArgument)
		require.Nil(t, r)
	})
}

func TestList(t *testing.T) {
	d := newTestDirectory()
	c := newTestClient(t, d)

	records, fp, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)
	require.Equal(t, protocols.FormatFingerprint(protocols.Fingerprint(d.All())), fp)

	// the client enumerates like any local directory
	seq, err := protocols.Enumerate(c)
	require.NoError(t, err)

	var names []string
	for r := range seq {
		names = append(names, r.Name())
	}
	require.Equal(t, []string{"ip", "icmp", "tcp", "udp", "ddp"}, names)
	require.Equal(t, protocols.Fingerprint(d.All()), protocols.Fingerprint(c.All()))

	t.Run("unsupported", func(t *testing.T) {
		c := newTestClient(t, lookupOnly{Directory: d})

		_, _, err := c.List(context.Background())
		require.ErrorIs(t, err, protocols.ErrUnsupported)
		require.Empty(t, protocols.Collect(c))
	})

	t.Run("unreachable", func(t *testing.T) {
		c := New("http://127.0.0.1:1", testOpts...)

		_, _, err := c.List(context.Background())
		require.Error(t, err)
		require.NotErrorIs(t, err, protocols.ErrUnsupported)
	})
}

func TestResponseError(t *testing.T) {
	var tests = []struct {
		name     string
		status   int
		body     string
		expected error
		contains string
	}{
		{"invalid argument", http.StatusBadRequest, `{"status_code":400,"error":"protocol name contains a NUL byte"}`, protocols.ErrInvalidArgument, "NUL byte"},
		{"unsupported", http.StatusNotImplemented, `{"status_code":501,"error":"enumeration not supported"}`, protocols.ErrUnsupported, "enumeration not supported"},
		{"problem", http.StatusInternalServerError, `{"title":"Internal Server Error","status":500,"detail":"protocol lookup failed"}`, nil, "protocol lookup failed"},
		{"no body", http.StatusBadGateway, ``, nil, "502"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rec.WriteHeader(test.status)
			_, _ = rec.WriteString(test.body)

			err := responseError(rec.Result())
			require.Error(t, err)
			require.ErrorContains(t, err, test.contains)
			if test.expected != nil {
				require.ErrorIs(t, err, test.expected)
				return
			}
			require.NotErrorIs(t, err, protocols.ErrInvalidArgument)
			require.NotErrorIs(t, err, protocols.ErrUnsupported)
		})
	}
}

func TestUnixSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "netproto.sock")

	s := npserver.New("unix:"+socket, newTestDirectory())
	go func() {
		_ = s.Serve()
	}()
	t.Cleanup(func() {
		require.NoError(t, s.Shutdown(context.Background()))
	})

	c := New("unix:"+socket, testOpts...)
	require.Eventually(t, func() bool {
		r, err := c.LookupByNumber(context.Background(), 17)
		return err == nil && r != nil && r.Name() == "udp"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestNewFromReader(t *testing.T) {
	var tests = []struct {
		name   string
		config string
		err    error
		addr   string
	}{
		{"tcp address", "addr: localhost:8146\ntimeout: 5s\nlog: true\n", nil, "http://localhost:8146"},
		{"unix socket", "addr: unix:/var/run/netproto.sock\n", nil, "unix:/var/run/netproto.sock"},
		{"missing address", "log: true\n", ErrorEmptyAddress, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := NewFromReader(strings.NewReader(test.config))
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.addr, c.Addr().String())
		})
	}
}
