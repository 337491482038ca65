package protocols

import (
	"context"
	"errors"
	"iter"
	"time"
)

const (
	opByName   = "by_name"
	opByNumber = "by_number"

	resultFound    = "found"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultError    = "error"
)

type instrumented struct {
	backend string
	Directory
}

type instrumentedEnumerator struct {
	*instrumented
	enumerator Enumerator
}

type instrumentedLister struct {
	*instrumentedEnumerator
	lister Lister
}

// Instrument wraps d so that lookups and walks are counted in the prometheus metrics of
// this package, labeled with backend. The Enumerator and Lister capabilities of d are
// preserved
func Instrument(backend string, d Directory) Directory {
	i := &instrumented{
		backend:   backend,
		Directory: d,
	}
	e, ok := d.(Enumerator)
	if !ok {
		return i
	}
	ie := &instrumentedEnumerator{
		instrumented: i,
		enumerator:   e,
	}
	if l, ok := d.(Lister); ok {
		return &instrumentedLister{
			instrumentedEnumerator: ie,
			lister:                 l,
		}
	}
	return ie
}

// ByName implements Directory
func (i *instrumented) ByName(name string) (*Record, error) {
	start := time.Now()
	r, err := i.Directory.ByName(name)
	i.observe(opByName, start, r, err)
	return r, err
}

// ByNumber implements Directory
func (i *instrumented) ByNumber(number int) (*Record, error) {
	start := time.Now()
	r, err := i.Directory.ByNumber(number)
	i.observe(opByNumber, start, r, err)
	return r, err
}

func (i *instrumented) observe(op string, start time.Time, r *Record, err error) {
	lookupDuration.WithLabelValues(i.backend, op).Observe(time.Since(start).Seconds())

	result := resultFound
	switch {
	case errors.Is(err, ErrInvalidArgument):
		result = resultInvalid
	case err != nil:
		result = resultError
	case r == nil:
		result = resultNotFound
	}
	lookups.WithLabelValues(i.backend, op, result).Inc()
}

// All implements Enumerator
func (i *instrumentedEnumerator) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		enumerations.WithLabelValues(i.backend).Inc()
		counter := recordsEnumerated.WithLabelValues(i.backend)
		for r := range i.enumerator.All() {
			counter.Inc()
			if !yield(r) {
				return
			}
		}
	}
}

// List implements Lister
func (i *instrumentedLister) List(ctx context.Context) ([]*Record, string, error) {
	enumerations.WithLabelValues(i.backend).Inc()

	records, fingerprint, err := i.lister.List(ctx)
	if err != nil {
		return nil, "", err
	}
	recordsEnumerated.WithLabelValues(i.backend).Add(float64(len(records)))
	return records, fingerprint, nil
}
