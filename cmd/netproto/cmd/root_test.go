package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/els0r/netproto/pkg/protocols"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testProtocols = `# test database
ip	0	IP
tcp	6	TCP
udp	17	UDP
ddp	37	DDP datagram-delivery
`

func writeProtocols(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "protocols")
	require.NoError(t, os.WriteFile(path, []byte(testProtocols), 0600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLookupCommands(t *testing.T) {
	path := writeProtocols(t)

	var tests = []struct {
		name     string
		args     []string
		expected string
		err      error
	}{
		{"name", []string{"name", "tcp"}, "tcp\t6\tTCP\n", nil},
		{"alias", []string{"name", "datagram-delivery"}, "ddp\t37\tDDP datagram-delivery\n", nil},
		{"number", []string{"number", "17"}, "udp\t17\tUDP\n", nil},
		{"lookup mixed", []string{"lookup", "0", "UDP"}, "ip\t0\tIP\nudp\t17\tUDP\n", nil},
		{"unknown name", []string{"name", "tcp", "nope"}, "tcp\t6\tTCP\n", ErrNotFound},
		{"unknown number", []string{"number", "999"}, "", ErrNotFound},
		{"negative number", []string{"number", "--", "-1"}, "", ErrNotFound},
		{"not a number", []string{"number", "tcp"}, "", protocols.ErrInvalidArgument},
		{"out of range", []string{"number", "4294967296"}, "", protocols.ErrInvalidArgument},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := append([]string{test.args[0], "--directory.backend", "file", "--directory.source", path, "-o", "plain"}, test.args[1:]...)

			stdout, _, err := run(t, args...)
			if test.err != nil {
				require.ErrorIs(t, err, test.err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, test.expected, stdout)
		})
	}
}

func TestLookupCommandsSingleDocument(t *testing.T) {
	path := writeProtocols(t)
	lookup := func(t *testing.T, format string, names ...string) (string, error) {
		stdout, _, err := run(t, append([]string{"name", "--directory.backend", "file", "--directory.source", path, "-o", format}, names...)...)
		return stdout, err
	}

	t.Run("csv", func(t *testing.T) {
		stdout, err := lookup(t, "csv", "tcp", "nope", "udp")
		require.ErrorIs(t, err, ErrNotFound)
		require.Equal(t, "name,number,aliases\ntcp,6,TCP\nudp,17,UDP\n", stdout)
	})

	t.Run("json", func(t *testing.T) {
		stdout, err := lookup(t, "json", "tcp", "nope", "udp")
		require.ErrorIs(t, err, ErrNotFound)
		require.JSONEq(t, `{"protocols":[{"name":"tcp","number":6,"aliases":["TCP"]},{"name":"udp","number":17,"aliases":["UDP"]}]}`, stdout)
	})

	t.Run("json single", func(t *testing.T) {
		stdout, err := lookup(t, "json", "tcp")
		require.NoError(t, err)
		require.JSONEq(t, `{"name":"tcp","number":6,"aliases":["TCP"]}`, stdout)
	})

	t.Run("table", func(t *testing.T) {
		stdout, err := lookup(t, "table", "tcp", "udp")
		require.NoError(t, err)
		require.Equal(t, 1, strings.Count(stdout, "NAME"))
	})
}

func TestListCommand(t *testing.T) {
	path := writeProtocols(t)

	stdout, _, err := run(t, "list", "--directory.backend", "file", "--directory.source", path)
	require.NoError(t, err)
	require.Equal(t, "ip\t0\tIP\ntcp\t6\tTCP\nudp\t17\tUDP\nddp\t37\tDDP datagram-delivery\n", stdout)

	stdout, _, err = run(t, "list", "--directory.backend", "file", "--directory.source", path, "--fingerprint", "-o", "json")
	require.NoError(t, err)
	require.Contains(t, stdout, `"fingerprint"`)
	require.Contains(t, stdout, `"datagram-delivery"`)
}

func TestConfigSources(t *testing.T) {
	path := writeProtocols(t)

	t.Run("environment", func(t *testing.T) {
		t.Setenv("NETPROTO_DIRECTORY_BACKEND", "file")
		t.Setenv("NETPROTO_DIRECTORY_SOURCE", path)

		stdout, _, err := run(t, "name", "tcp")
		require.NoError(t, err)
		require.Equal(t, "tcp\t6\tTCP\n", stdout)
	})

	t.Run("config file", func(t *testing.T) {
		cfgFile := filepath.Join(t.TempDir(), "netproto.yaml")
		require.NoError(t, os.WriteFile(cfgFile, []byte("directory:\n  backend: iana\noutput:\n  format: csv\n"), 0600))

		stdout, _, err := run(t, "number", "-c", cfgFile, "6")
		require.NoError(t, err)
		require.Equal(t, "name,number,aliases\ntcp,6,TCP\n", stdout)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := run(t, "name", "--directory.backend", "ldap", "tcp")
		require.Error(t, err)
	})

	t.Run("missing protocols file", func(t *testing.T) {
		_, _, err := run(t, "name", "--directory.backend", "file", "--directory.source", filepath.Join(t.TempDir(), "missing"), "tcp")
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, protocols.Version)
}

func TestWriteOpenAPISpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.yaml")

	_, _, err := run(t, "serve", "--server.openapi", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "/protocols/name/{name}")
}
