//go:build cgo && unix && !android

package protocols

/*
#include <netdb.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

// cursor guards the process-wide protocol database cursor of the C library
var cursor sync.Mutex

// acquireCursor locks the database cursor and rewinds it. The returned function closes
// the database and unlocks the cursor, so that it can be used as
//
//	defer acquireCursor()()
func acquireCursor() (release func()) {
	cursor.Lock()
	C.setprotoent(0)
	return func() {
		C.endprotoent()
		cursor.Unlock()
	}
}

// snapshotCursor walks the database until next returns nil. The whole walk runs under
// the cursor lock, yielding happens afterwards so consumers may issue lookups
func snapshotCursor(next func() *C.struct_protoent) []*Record {
	defer acquireCursor()()

	var snapshot []*Record
	for {
		p := next()
		if p == nil {
			return snapshot
		}
		r, ok := recordFromC(p)
		if !ok {
			return snapshot
		}
		snapshot = append(snapshot, r)
	}
}

// recordFromC copies a C protoent into Go memory
func recordFromC(p *C.struct_protoent) (*Record, bool) {
	if p.p_name == nil {
		return nil, false
	}

	var aliases []string
	for a := p.p_aliases; a != nil && *a != nil; a = (**C.char)(unsafe.Add(unsafe.Pointer(a), unsafe.Sizeof(*a))) {
		aliases = append(aliases, C.GoString(*a))
	}
	return newRecord(C.GoString(p.p_name), aliases, int(p.p_proto)), true
}
