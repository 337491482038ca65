// Package api provides the building blocks shared by the netproto API server and its clients:
// info routes, middlewares and address handling
package api

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	infoPrefix = "/-"

	// HealthRoute denotes the route / URI path to the health endpoint
	HealthRoute = infoPrefix + "/health"
	// InfoRoute denotes the route / URI path to the info endpoint
	InfoRoute = infoPrefix + "/info"
	// ReadyRoute denotes the route / URI path to the ready endpoint
	ReadyRoute = infoPrefix + "/ready"
)

// RuntimeIDHeaderKey denotes the header name / key that identifies the runtime of the caller
const RuntimeIDHeaderKey = "X-NETPROTO-RUNTIME-ID"

var runtimeID = newRuntimeID()

// RuntimeID returns an identifier that is unique to the running process
func RuntimeID() string {
	return runtimeID
}

func newRuntimeID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
