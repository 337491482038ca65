//go:build cgo && ((linux && !android) || solaris)

package protocols

/*
#include <netdb.h>
#include <stdlib.h>
*/
import "C"

import (
	"iter"
	"syscall"
	"unsafe"
)

const (
	initialBufferSize = 1024
	maxBufferSize     = 1 << 20
)

// reentrantCall is a single call into one of the *_r functions of the C library
type reentrantCall func(ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno

// systemDirectory queries the C library through its reentrant functions. Lookups use a
// buffer per call and do not touch the database cursor
type systemDirectory struct{}

func newSystem() *systemDirectory {
	return &systemDirectory{}
}

// ByName implements Directory
func (*systemDirectory) ByName(name string) (*Record, error) {
	skip, err := CheckName(name)
	if skip {
		return nil, err
	}

	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	r, _ := withBuffer(func(ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno {
		return getprotobynameR(cname, ent, buf, size, result)
	})
	return r, nil
}

// ByNumber implements Directory
func (*systemDirectory) ByNumber(number int) (*Record, error) {
	skip, err := CheckNumber(int64(number))
	if skip {
		return nil, err
	}

	r, _ := withBuffer(func(ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno {
		return getprotobynumberR(C.int(number), ent, buf, size, result)
	})
	return r, nil
}

// All implements Enumerator. The reentrant enumeration function still advances the
// shared database cursor, hence the walk is serialized
func (*systemDirectory) All() iter.Seq[*Record] {
	return fromSnapshot(func() []*Record {
		defer acquireCursor()()

		var snapshot []*Record
		for {
			r, ok := withBuffer(getprotoentR)
			if !ok {
				return snapshot
			}
			snapshot = append(snapshot, r)
		}
	})
}

// withBuffer runs call with a C allocated buffer, growing it as long as the C library
// reports it to be too small. ok is false if the call yielded no (valid) entry
func withBuffer(call reentrantCall) (r *Record, ok bool) {
	for size := initialBufferSize; ; size *= 2 {
		buf := C.malloc(C.size_t(size))
		if buf == nil {
			return nil, false
		}

		var (
			ent    C.struct_protoent
			result *C.struct_protoent
		)
		errno := call(&ent, (*C.char)(buf), C.size_t(size), &result)
		if errno == 0 && result != nil {
			r, ok = recordFromC(result)
		}
		C.free(buf)

		if errno != syscall.ERANGE || size >= maxBufferSize {
			return r, ok
		}
	}
}
