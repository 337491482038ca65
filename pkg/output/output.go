// Package output renders protocol records for the command line
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/els0r/netproto/pkg/protocols"
)

// Format denotes an output format
type Format string

// Supported output formats
const (
	FormatTable Format = "table"
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatCSV   Format = "csv"
)

// Formats lists all supported output formats
var Formats = []Format{FormatTable, FormatPlain, FormatJSON, FormatYAML, FormatTOML, FormatCSV}

// ParseFormat parses a format name (case insensitive)
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatTable, FormatPlain, FormatJSON, FormatYAML, FormatTOML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt", "text":
		return FormatPlain, nil
	}
	return "", fmt.Errorf("unsupported output format %q (supported: %v)", s, Formats)
}

// DefaultFormat returns the table format if w is an interactive terminal and the plain
// format otherwise
func DefaultFormat(w io.Writer) Format {
	if f, ok := w.(*os.File); ok && os.Getenv("TERM") != "dumb" && isTerminal(f.Fd()) {
		return FormatTable
	}
	return FormatPlain
}

// Printer writes protocol records in a specific format
type Printer interface {
	// PrintRecord prints the result of a single lookup
	PrintRecord(r *protocols.Record) error

	// PrintRecords prints a full enumeration. fingerprint may be empty
	PrintRecords(records []*protocols.Record, fingerprint string) error
}

// New creates a printer for format writing to w
func New(format Format, w io.Writer) (Printer, error) {
	switch format {
	case FormatTable:
		return &tablePrinter{w: w}, nil
	case FormatPlain:
		return &plainPrinter{w: w}, nil
	case FormatJSON:
		return &jsonPrinter{w: w}, nil
	case FormatYAML:
		return &yamlPrinter{w: w}, nil
	case FormatTOML:
		return &tomlPrinter{w: w}, nil
	case FormatCSV:
		return &csvPrinter{w: w}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

// List is the serializable form of an enumeration
type List struct {
	Protocols   []protocols.Entry `json:"protocols" yaml:"protocols" toml:"protocols"`
	Fingerprint string            `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty" toml:"fingerprint,omitempty"`
}

func newList(records []*protocols.Record, fingerprint string) List {
	l := List{
		Protocols:   make([]protocols.Entry, 0, len(records)),
		Fingerprint: fingerprint,
	}
	for _, r := range records {
		l.Protocols = append(l.Protocols, r.Entry())
	}
	return l
}
