//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package output

func isTerminal(uintptr) bool {
	return false
}
