//go:build !windows && (!cgo || android || !unix)

package protocols

// systemDirectory reads the platform protocols file directly when the C library
// cannot be used
type systemDirectory struct {
	*FileDirectory
}

func newSystem() *systemDirectory {
	return &systemDirectory{
		FileDirectory: NewFileDirectory(DefaultPath()),
	}
}
