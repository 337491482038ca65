//go:build cgo && solaris

package protocols

/*
#cgo CFLAGS: -D__EXTENSIONS__ -D_REENTRANT
#cgo LDFLAGS: -lsocket -lnsl
#include <errno.h>
#include <netdb.h>

// The Solaris variants return the entry instead of an error code and signal a short
// buffer through errno.
static int netproto_getprotobyname_r(const char *name, struct protoent *ent, char *buf, size_t size, struct protoent **result) {
	errno = 0;
	*result = getprotobyname_r(name, ent, buf, (int)size);
	return *result == NULL ? errno : 0;
}

static int netproto_getprotobynumber_r(int number, struct protoent *ent, char *buf, size_t size, struct protoent **result) {
	errno = 0;
	*result = getprotobynumber_r(number, ent, buf, (int)size);
	return *result == NULL ? errno : 0;
}

static int netproto_getprotoent_r(struct protoent *ent, char *buf, size_t size, struct protoent **result) {
	errno = 0;
	*result = getprotoent_r(ent, buf, (int)size);
	return *result == NULL ? errno : 0;
}
*/
import "C"

import "syscall"

func getprotobynameR(name *C.char, ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno {
	return syscall.Errno(C.netproto_getprotobyname_r(name, ent, buf, size, result))
}

func getprotobynumberR(number C.int, ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno {
	return syscall.Errno(C.netproto_getprotobynumber_r(number, ent, buf, size, result))
}

func getprotoentR(ent *C.struct_protoent, buf *C.char, size C.size_t, result **C.struct_protoent) syscall.Errno {
	return syscall.Errno(C.netproto_getprotoent_r(ent, buf, size, result))
}
