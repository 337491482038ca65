// Package server serves the protocol lookup API on top of a protocol directory
package server

import (
	"context"

	"github.com/els0r/netproto/pkg/api/server"
	"github.com/els0r/netproto/pkg/protocols"
)

const serviceName = "netproto"

// Server serves lookups and enumerations of a single protocol directory
type Server struct {
	*server.DefaultServer

	directory protocols.Directory
}

// New creates a server answering requests from directory. The directory is consulted by
// the ready endpoint
func New(addr string, directory protocols.Directory, opts ...server.Option) *Server {
	s := &Server{directory: directory}

	opts = append([]server.Option{
		server.WithReadinessCheck(s.checkReady),
		server.WithMetricsCollectors(protocols.Collectors()...),
	}, opts...)
	s.DefaultServer = server.NewDefault(serviceName, addr, opts...)

	s.registerProtocolsAPI()
	return s
}

// checkReady issues a lookup that every database can answer, found or not
func (server *Server) checkReady(context.Context) error {
	_, err := server.directory.ByNumber(0)
	return err
}
