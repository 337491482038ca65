//go:build windows

package protocols

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modws2_32            = windows.NewLazySystemDLL("ws2_32.dll")
	procGetProtoByNumber = modws2_32.NewProc("getprotobynumber")

	wsaOnce sync.Once
	wsaErr  error
)

// systemDirectory queries Winsock. Winsock offers no enumeration of its protocol
// database, hence systemDirectory does not implement Enumerator
type systemDirectory struct{}

func newSystem() *systemDirectory {
	return &systemDirectory{}
}

func startup() error {
	wsaOnce.Do(func() {
		var data windows.WSAData
		if err := windows.WSAStartup(uint32(0x202), &data); err != nil {
			wsaErr = fmt.Errorf("failed to initialize Winsock: %w", err)
		}
	})
	return wsaErr
}

// ByName implements Directory
func (*systemDirectory) ByName(name string) (*Record, error) {
	skip, err := CheckName(name)
	if skip {
		return nil, err
	}
	if startup() != nil {
		return nil, nil
	}

	// the result lives in thread local storage until the next Winsock call on the same thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p, err := windows.GetProtoByName(name)
	if err != nil || p == nil {
		return nil, nil
	}
	return recordFromProtoent(p), nil
}

// ByNumber implements Directory
func (*systemDirectory) ByNumber(number int) (*Record, error) {
	skip, err := CheckNumber(int64(number))
	if skip {
		return nil, err
	}
	if startup() != nil {
		return nil, nil
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	r0, _, _ := procGetProtoByNumber.Call(uintptr(number))
	if r0 == 0 {
		return nil, nil
	}
	return recordFromProtoent((*windows.Protoent)(unsafe.Pointer(r0))), nil
}

func recordFromProtoent(p *windows.Protoent) *Record {
	var aliases []string
	for a := p.Aliases; a != nil && *a != nil; a = (**byte)(unsafe.Add(unsafe.Pointer(a), unsafe.Sizeof(*a))) {
		aliases = append(aliases, windows.BytePtrToString(*a))
	}
	return newRecord(windows.BytePtrToString(p.Name), aliases, int(p.Proto))
}
