//go:build cgo && unix && !linux && !solaris

package protocols

/*
#include <netdb.h>
#include <stdlib.h>
*/
import "C"

import (
	"iter"
	"unsafe"
)

// systemDirectory queries the C library through its non-reentrant functions. They all
// share one database cursor, so every call is serialized and brackets the cursor
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

	defer acquireCursor()()

	p := C.getprotobyname(cname)
	if p == nil {
		return nil, nil
	}
	r, _ := recordFromC(p)
	return r, nil
}

// ByNumber implements Directory
func (*systemDirectory) ByNumber(number int) (*Record, error) {
	skip, err := CheckNumber(int64(number))
	if skip {
		return nil, err
	}

	defer acquireCursor()()

	p := C.getprotobynumber(C.int(number))
	if p == nil {
		return nil, nil
	}
	r, _ := recordFromC(p)
	return r, nil
}

// All implements Enumerator
func (*systemDirectory) All() iter.Seq[*Record] {
	return fromSnapshot(func() []*Record {
		return snapshotCursor(func() *C.struct_protoent {
			return C.getprotoent()
		})
	})
}
