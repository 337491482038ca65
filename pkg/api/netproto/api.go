// Package netproto defines the routes and payloads of the protocol lookup API
package netproto

import (
	"github.com/els0r/netproto/pkg/protocols"
)

const (
	// DefaultServerAddress is the default address of the netproto server
	DefaultServerAddress = "localhost:8146"
)

const (
	// ProtocolsRoute is the route to enumerate the protocol database
	ProtocolsRoute = "/protocols"
	// ByNameRoute is the route to look up a protocol by name or alias
	ByNameRoute = ProtocolsRoute + "/name"
	// ByNumberRoute is the route to look up a protocol by number
	ByNumberRoute = ProtocolsRoute + "/number"
)

const (
	// ETagHeaderKey carries the fingerprint of an enumeration
	ETagHeaderKey = "ETag"
	// IfNoneMatchHeaderKey carries a previously seen fingerprint
	IfNoneMatchHeaderKey = "If-None-Match"
)

// Response stores the HTTP status code and error detail of the response
type Response struct {
	// StatusCode: stores the HTTP status code of the response
	StatusCode int `json:"status_code" doc:"HTTP status code of the response" example:"200"`
	// Error: stores the error message if the request failed
	Error string `json:"error,omitempty" doc:"Error message if request failed" example:"invalid argument"`
}

// ProtocolResponse is the response to a lookup by name or number. An unknown protocol
// is not an error: Found is false and Protocol is omitted
type ProtocolResponse struct {
	Response
	// Found: denotes whether the protocol database has a matching entry
	Found bool `json:"found" doc:"Whether the protocol database has a matching entry" example:"true"`
	// Protocol: the matching entry
	Protocol *protocols.Entry `json:"protocol,omitempty" doc:"Matching protocol entry"`
}

// ListResponse is the response to an enumeration of the protocol database
type ListResponse struct {
	Response
	// Protocols: all entries in database order
	Protocols []protocols.Entry `json:"protocols" doc:"All protocol entries in database order"`
	// Fingerprint: digest over all entries
	Fingerprint string `json:"fingerprint" doc:"Digest over all entries, changes whenever the database changes" example:"9c2f3a61d0e4b7a8"`
}
