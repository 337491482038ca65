package protocols

import (
	"context"
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"
)

// Directory resolves protocol names and numbers against a protocol database. A nil
// record with a nil error denotes that no entry matched
type Directory interface {
	// ByName looks up a protocol by its name or one of its aliases
	ByName(name string) (*Record, error)

	// ByNumber looks up a protocol by its number
	ByNumber(number int) (*Record, error)
}

// Enumerator is implemented by directories able to walk the full protocol database
type Enumerator interface {
	// All returns the database entries in native database order. Each iteration starts
	// at the beginning of the database
	All() iter.Seq[*Record]
}

// Lister is an Enumerator that fetches the whole database at once and can report failing
// to do so, e.g. a remote server. A walk through All ends without records on such failures
type Lister interface {
	Enumerator

	// List returns all entries in database order along with their fingerprint
	List(ctx context.Context) ([]*Record, string, error)
}

// List returns all records of d in database order along with their fingerprint. It
// fails with ErrUnsupported if d cannot enumerate
func List(ctx context.Context, d Directory) ([]*Record, string, error) {
	if l, ok := d.(Lister); ok {
		return l.List(ctx)
	}

	seq, err := Enumerate(d)
	if err != nil {
		return nil, "", err
	}
	records := make([]*Record, 0)
	for r := range seq {
		records = append(records, r)
	}
	return records, FormatFingerprint(Fingerprint(slices.Values(records))), nil
}

// Enumerate returns the record sequence of d, or ErrUnsupported if d cannot enumerate
func Enumerate(d Directory) (iter.Seq[*Record], error) {
	e, ok := d.(Enumerator)
	if !ok {
		return nil, fmt.Errorf("%w: enumeration of %T", ErrUnsupported, d)
	}
	return e.All(), nil
}

// Each calls fn once per record of e, in database order
func Each(e Enumerator, fn func(*Record)) {
	for r := range e.All() {
		fn(r)
	}
}

// Collect walks the full database of e and returns all records in database order.
// The result is never nil
func Collect(e Enumerator) []*Record {
	records := make([]*Record, 0)
	for r := range e.All() {
		records = append(records, r)
	}
	return records
}

// CheckName validates a name before it is handed to the database. skip is set if the
// lookup can be answered with "not found" without consulting the database
func CheckName(name string) (skip bool, err error) {
	if strings.IndexByte(name, 0) >= 0 {
		return true, fmt.Errorf("%w: protocol name %q contains a NUL byte", ErrInvalidArgument, name)
	}
	return strings.TrimSpace(name) == "", nil
}

// CheckNumber validates a number before it is handed to the database. Numbers must
// fit into a C int, negative ones never match
func CheckNumber(number int64) (skip bool, err error) {
	if number > math.MaxInt32 || number < math.MinInt32 {
		return true, fmt.Errorf("%w: protocol number %d out of range", ErrInvalidArgument, number)
	}
	return number < 0, nil
}

// fromSnapshot turns a snapshot into a lazily consumed sequence
func fromSnapshot(snapshot func() []*Record) iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, r := range snapshot() {
			if !yield(r) {
				return
			}
		}
	}
}
