package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"testing/fstest"
	"time"

	"github.com/els0r/netproto/pkg/api"
	"github.com/els0r/netproto/pkg/api/client"
	npapi "github.com/els0r/netproto/pkg/api/netproto"
	npclient "github.com/els0r/netproto/pkg/api/netproto/client"
	apiserver "github.com/els0r/netproto/pkg/api/server"
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

// lookupOnly hides the Enumerator capability of the wrapped directory
type lookupOnly struct {
	d protocols.Directory
}

func (l lookupOnly) ByName(name string) (*protocols.Record, error) { return l.d.ByName(name) }
func (l lookupOnly) ByNumber(number int) (*protocols.Record, error) {
	return l.d.ByNumber(number)
}

func get(t *testing.T, s *Server, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestGetByName(t *testing.T) {
	s := New("localhost:8146", newTestDirectory())

	var tests = []struct {
		name     string
		path     string
		status   int
		found    bool
		expected int
	}{
		{"canonical", "/protocols/name/tcp", http.StatusOK, true, 6},
		{"alias", "/protocols/name/datagram-delivery", http.StatusOK, true, 37},
		{"unknown", "/protocols/name/this-protocol-does-not-exist-xyz", http.StatusOK, false, 0},
		{"case sensitive", "/protocols/name/Tcp", http.StatusOK, false, 0},
		{"whitespace", "/protocols/name/%20", http.StatusOK, false, 0},
		{"NUL byte", "/protocols/name/tcp%00", http.StatusBadRequest, false, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := get(t, s, test.path, nil)
			require.Equal(t, test.status, rec.Code, rec.Body.String())

			var resp npapi.ProtocolResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, test.status, resp.StatusCode)
			require.Equal(t, test.found, resp.Found)
			if !test.found {
				require.Nil(t, resp.Protocol)
				return
			}
			require.Equal(t, test.expected, resp.Protocol.Number)
		})
	}
}

func TestGetByNumber(t *testing.T) {
	s := New("localhost:8146", newTestDirectory())

	var tests = []struct {
		name     string
		path     string
		status   int
		found    bool
		expected string
	}{
		{"zero", "/protocols/number/0", http.StatusOK, true, "ip"},
		{"udp", "/protocols/number/17", http.StatusOK, true, "udp"},
		{"unknown", "/protocols/number/999999", http.StatusOK, false, ""},
		{"negative", "/protocols/number/-1", http.StatusOK, false, ""},
		{"out of range", "/protocols/number/4294967296", http.StatusBadRequest, false, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := get(t, s, test.path, nil)
			require.Equal(t, test.status, rec.Code, rec.Body.String())

			var resp npapi.ProtocolResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, test.found, resp.Found)
			if !test.found {
				return
			}
			require.Equal(t, test.expected, resp.Protocol.Name)
		})
	}

	t.Run("not a number", func(t *testing.T) {
		rec := get(t, s, "/protocols/number/tcp", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestList(t *testing.T) {
	d := newTestDirectory()
	s := New("localhost:8146", d)

	rec := get(t, s, npapi.ProtocolsRoute, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp npapi.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	var names []string
	for _, e := range resp.Protocols {
		names = append(names, e.Name)
	}
	require.Equal(t, []string{"ip", "icmp", "tcp", "udp", "ddp"}, names)
	require.Equal(t, []string{"DDP", "datagram-delivery"}, resp.Protocols[4].Aliases)

	fp := protocols.FormatFingerprint(protocols.Fingerprint(d.All()))
	require.Equal(t, fp, resp.Fingerprint)
	require.Equal(t, strconv.Quote(fp), rec.Header().Get(npapi.ETagHeaderKey))

	t.Run("not modified", func(t *testing.T) {
		rec := get(t, s, npapi.ProtocolsRoute, map[string]string{
			npapi.IfNoneMatchHeaderKey: strconv.Quote(fp),
		})
		require.Equal(t, http.StatusNotModified, rec.Code)
	})

	t.Run("unsupported", func(t *testing.T) {
		s := New("localhost:8146", lookupOnly{d: d})

		rec := get(t, s, npapi.ProtocolsRoute, nil)
		require.Equal(t, http.StatusNotImplemented, rec.Code)

		var resp npapi.ListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Error)
		require.Empty(t, resp.Protocols)
	})
}

// newRemoteDirectory serves d and returns a client of it, wrapped like the remote backend
func newRemoteDirectory(t *testing.T, d protocols.Directory) protocols.Directory {
	t.Helper()

	ts := httptest.NewServer(New("localhost:0", d).Router())
	t.Cleanup(ts.Close)

	return remoteDirectory(ts.URL)
}

func remoteDirectory(addr string) protocols.Directory {
	return protocols.Instrument("remote", npclient.New(addr,
		client.WithRetry(false),
		client.WithRequestTimeout(5*time.Second),
		// both servers run in this process and would be rejected as recursive
		client.WithHeader(api.RuntimeIDHeaderKey, "upstream-client"),
	))
}

func TestListRemoteBackend(t *testing.T) {
	d := newTestDirectory()

	t.Run("supported", func(t *testing.T) {
		s := New("localhost:8146", newRemoteDirectory(t, d))

		rec := get(t, s, npapi.ProtocolsRoute, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp npapi.ListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Protocols, 5)
		require.Equal(t, protocols.FormatFingerprint(protocols.Fingerprint(d.All())), resp.Fingerprint)
	})

	t.Run("upstream unsupported", func(t *testing.T) {
		s := New("localhost:8146", newRemoteDirectory(t, lookupOnly{d: d}))

		rec := get(t, s, npapi.ProtocolsRoute, nil)
		require.Equal(t, http.StatusNotImplemented, rec.Code, rec.Body.String())
		require.Empty(t, rec.Header().Get(npapi.ETagHeaderKey))

		var resp npapi.ListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Error)
		require.Empty(t, resp.Fingerprint)
	})

	t.Run("upstream unreachable", func(t *testing.T) {
		s := New("localhost:8146", remoteDirectory("http://127.0.0.1:1"))

		rec := get(t, s, npapi.ProtocolsRoute, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
		require.Empty(t, rec.Header().Get(npapi.ETagHeaderKey))
	})
}

func TestMetrics(t *testing.T) {
	s := New("localhost:8146", protocols.Instrument("metrics-test", newTestDirectory()),
		apiserver.WithMetrics(true),
	)

	require.Equal(t, http.StatusOK, get(t, s, "/protocols/name/tcp", nil).Code)
	require.Equal(t, http.StatusOK, get(t, s, npapi.ProtocolsRoute, nil).Code)

	rec := get(t, s, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, `netproto_directory_lookups_total{backend="metrics-test",op="by_name",result="found"} 1`)
	require.Contains(t, body, `netproto_directory_enumerations_total{backend="metrics-test"} 1`)
	require.Contains(t, body, "netproto_api_requests_total")
}

func TestReady(t *testing.T) {
	rec := get(t, New("localhost:8146", newTestDirectory()), "/-/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
