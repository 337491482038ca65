//go:build cgo && linux && !android

package protocols

/*
#define _GNU_SOURCE
#include <netdb.h>
*/
import "C"

import "syscall"

func getprotobynameR(name *C.char, ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno {
	return syscall.Errno(C.getprotobyname_r(name, ent, buf, size, result))
}

func getprotobynumberR(number C.int, ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno {
	return syscall.Errno(C.getprotobynumber_r(number, ent, buf, size, result))
}

func getprotoentR(ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno {
	return syscall.Errno(C.getprotoent_r(ent, buf, size, result))
}
