package protocols

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestInstrument(t *testing.T) {
	const backend = "instrument-test"

	d := Instrument(backend, NewFileDirectory(testProtocolsFile))

	_, ok := d.(Enumerator)
	require.True(t, ok, "instrumented directory must remain enumerable")

	r, err := d.ByName("tcp")
	require.NoError(t, err)
	require.NotNil(t, r)

	r, err = d.ByNumber(999999)
	require.NoError(t, err)
	require.Nil(t, r)

	_, err = d.ByName("t\x00cp")
	require.ErrorIs(t, err, ErrInvalidArgument)

	require.Equal(t, 1., testutil.ToFloat64(lookups.WithLabelValues(backend, opByName, resultFound)))
	require.Equal(t, 1., testutil.ToFloat64(lookups.WithLabelValues(backend, opByNumber, resultNotFound)))
	require.Equal(t, 1., testutil.ToFloat64(lookups.WithLabelValues(backend, opByName, resultInvalid)))

	seq, err := Enumerate(d)
	require.NoError(t, err)
	for range seq {
	}
	require.Equal(t, 1., testutil.ToFloat64(enumerations.WithLabelValues(backend)))
	require.Equal(t, float64(len(testNames)), testutil.ToFloat64(recordsEnumerated.WithLabelValues(backend)))
}

func TestInstrumentLookupOnly(t *testing.T) {
	d := Instrument("instrument-test-lookup-only", lookupOnly{})

	_, ok := d.(Enumerator)
	require.False(t, ok)

	_, err := Enumerate(d)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestInstrumentLister(t *testing.T) {
	const backend = "instrument-test-lister"

	d := Instrument(backend, staticLister{records: Collect(NewFileDirectory(testProtocolsFile))})
	_, ok := d.(Lister)
	require.True(t, ok, "instrumented directory must remain a lister")

	records, fp, err := List(context.Background(), d)
	require.NoError(t, err)
	require.Len(t, records, len(testNames))
	require.Equal(t, "static", fp)
	require.Equal(t, 1., testutil.ToFloat64(enumerations.WithLabelValues(backend)))
	require.Equal(t, float64(len(testNames)), testutil.ToFloat64(recordsEnumerated.WithLabelValues(backend)))

	_, _, err = List(context.Background(), Instrument(backend, staticLister{err: errUpstream}))
	require.ErrorIs(t, err, errUpstream)
}
