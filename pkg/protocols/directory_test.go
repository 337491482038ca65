package protocols

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

type lookupOnly struct{}

func (lookupOnly) ByName(string) (*Record, error) { return nil, nil }
func (lookupOnly) ByNumber(int) (*Record, error)  { return nil, nil }

func TestEnumerate(t *testing.T) {
	seq, err := Enumerate(lookupOnly{})
	require.ErrorIs(t, err, ErrUnsupported)
	require.Nil(t, seq)

	seq, err = Enumerate(NewFileDirectory(testProtocolsFile))
	require.NoError(t, err)

	var n int
	for range seq {
		n++
	}
	require.Equal(t, len(testNames), n)
}

var errUpstream = errors.New("upstream unavailable")

// staticLister serves a fixed list, or fails with err
type staticLister struct {
	lookupOnly
	records []*Record
	err     error
}

func (l staticLister) All() iter.Seq[*Record] {
	if l.err != nil {
		return func(func(*Record) bool) {}
	}
	return slices.Values(l.records)
}

func (l staticLister) List(context.Context) ([]*Record, string, error) {
	if l.err != nil {
		return nil, "", l.err
	}
	return l.records, "static", nil
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup only", func(t *testing.T) {
		records, fp, err := List(ctx, lookupOnly{})
		require.ErrorIs(t, err, ErrUnsupported)
		require.Nil(t, records)
		require.Empty(t, fp)
	})

	t.Run("enumerator", func(t *testing.T) {
		d := NewFileDirectory(testProtocolsFile)

		records, fp, err := List(ctx, d)
		require.NoError(t, err)
		require.Len(t, records, len(testNames))
		require.Equal(t, FormatFingerprint(Fingerprint(d.All())), fp)
	})

	t.Run("lister", func(t *testing.T) {
		records, fp, err := List(ctx, staticLister{records: Collect(NewFileDirectory(testProtocolsFile))})
		require.NoError(t, err)
		require.Len(t, records, len(testNames))
		require.Equal(t, "static", fp)
	})

	t.Run("lister failure", func(t *testing.T) {
		_, _, err := List(ctx, staticLister{err: errUpstream})
		require.ErrorIs(t, err, errUpstream)
	})
}

func TestCheckName(t *testing.T) {
	skip, err := CheckName("tcp")
	require.False(t, skip)
	require.NoError(t, err)

	skip, err = CheckName("  ")
	require.True(t, skip)
	require.NoError(t, err)

	skip, err = CheckName("tc\x00p")
	require.True(t, skip)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCheckNumber(t *testing.T) {
	var tests = []struct {
		input   int64
		skip    bool
		invalid bool
	}{
		{0, false, false},
		{255, false, false},
		{999999, false, false},
		{-1, true, false},
		{1 << 31, true, true},
		{-1 << 40, true, true},
	}

	for _, test := range tests {
		skip, err := CheckNumber(test.input)
		require.Equal(t, test.skip, skip, "input %d", test.input)
		if test.invalid {
			require.ErrorIs(t, err, ErrInvalidArgument, "input %d", test.input)
		} else {
			require.NoError(t, err, "input %d", test.input)
		}
	}
}
