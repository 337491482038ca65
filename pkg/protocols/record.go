package protocols

import (
	"fmt"
	"strings"
	"unicode"
)

// Record is a read-only snapshot of one protocol database entry. Records are only
// produced by a Directory (or decoded from an Entry), never constructed directly
type Record struct {
	name    string
	aliases []string
	number  int
}

func newRecord(name string, aliases []string, number int) *Record {
	return &Record{
		name:    name,
		aliases: append(make([]string, 0, len(aliases)), aliases...),
		number:  number,
	}
}

// Name returns the canonical protocol name (e.g. "tcp")
func (r *Record) Name() string {
	return r.name
}

// Aliases returns the alternate names of the protocol in database order. The returned
// slice is a copy and never nil
func (r *Record) Aliases() []string {
	return append(make([]string, 0, len(r.aliases)), r.aliases...)
}

// Number returns the IANA protocol number
func (r *Record) Number() int {
	return r.number
}

// String formats the record the way it appears in a protocols file
func (r *Record) String() string {
	if len(r.aliases) == 0 {
		return fmt.Sprintf("%s\t%d", r.name, r.number)
	}
	return fmt.Sprintf("%s\t%d\t%s", r.name, r.number, strings.Join(r.aliases, " "))
}

// Entry returns the serializable representation of the record
func (r *Record) Entry() Entry {
	return Entry{
		Name:    r.name,
		Aliases: r.Aliases(),
		Number:  r.number,
	}
}

// Entry is the serializable representation of a Record, used to carry protocol entries
// across API and output boundaries
type Entry struct {
	Name    string   `json:"name" yaml:"name" toml:"name" doc:"Canonical protocol name" example:"tcp"`
	Aliases []string `json:"aliases" yaml:"aliases" toml:"aliases" doc:"Alternate names of the protocol, in database order" example:"[\"TCP\"]"`
	Number  int      `json:"number" yaml:"number" toml:"number" doc:"IANA protocol number" example:"6"`
}

// Record validates the entry and converts it into a read-only Record
func (e Entry) Record() (*Record, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("%w: empty protocol name", ErrInvalidEntry)
	}
	if !isKeyword(e.Name) {
		return nil, fmt.Errorf("%w: malformed protocol name %q", ErrInvalidEntry, e.Name)
	}
	if e.Number < 0 {
		return nil, fmt.Errorf("%w: negative protocol number %d for %s", ErrInvalidEntry, e.Number, e.Name)
	}
	for _, alias := range e.Aliases {
		if !isKeyword(alias) {
			return nil, fmt.Errorf("%w: malformed alias %q for %s", ErrInvalidEntry, alias, e.Name)
		}
	}
	return newRecord(e.Name, e.Aliases, e.Number), nil
}

// isKeyword reports whether s can be a single field of a protocols file
func isKeyword(s string) bool {
	if s == "" || strings.HasPrefix(s, "#") {
		return false
	}
	for _, c := range s {
		if c == 0 || unicode.IsSpace(c) {
			return false
		}
	}
	return true
}
