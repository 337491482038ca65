package protocols

import "embed"

const ianaFile = "iana_protocols.txt"

//go:embed iana_protocols.txt
var ianaFS embed.FS

// IANA returns a directory over the embedded registry of assigned internet protocol
// numbers. It is independent of the host's protocol database
func IANA() *FileDirectory {
	return NewFileDirectory(ianaFile, WithFS(ianaFS))
}
