package server

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	npapi "github.com/els0r/netproto/pkg/api/netproto"
)

var protocolsTags = []string{"Protocols"}

const (
	getByNameOpName   = "get-protocol-by-name"
	getByNumberOpName = "get-protocol-by-number"
	listOpName        = "list-protocols"
)

func (server *Server) registerProtocolsAPI() {
	middlewares := server.Middlewares()

	huma.Register(server.API(),
		huma.Operation{
			OperationID: getByNameOpName,
			Method:      http.MethodGet,
			Path:        npapi.ByNameRoute + "/{name}",
			Summary:     "Look up protocol by name",
			Description: "Resolves a protocol name or alias to its database entry. Names are case sensitive. An unknown protocol is reported with found set to false",
			Tags:        protocolsTags,
			Middlewares: middlewares,
		},
		server.getByNameHandler(),
	)
	huma.Register(server.API(),
		huma.Operation{
			OperationID: getByNumberOpName,
			Method:      http.MethodGet,
			Path:        npapi.ByNumberRoute + "/{number}",
			Summary:     "Look up protocol by number",
			Description: "Resolves a protocol number to its database entry. An unknown protocol is reported with found set to false",
			Tags:        protocolsTags,
			Middlewares: middlewares,
		},
		server.getByNumberHandler(),
	)
	huma.Register(server.API(),
		huma.Operation{
			OperationID: listOpName,
			Method:      http.MethodGet,
			Path:        npapi.ProtocolsRoute,
			Summary:     "List protocols",
			Description: "Enumerates the full protocol database in database order. Not available on platforms without enumeration support",
			Tags:        protocolsTags,
			Middlewares: middlewares,
		},
		server.listHandler(),
	)
}

// GetByNameInput describes the input to a lookup by name
type GetByNameInput struct {
	Name string `path:"name" doc:"Protocol name or alias" example:"tcp"`
}

// GetByNumberInput describes the input to a lookup by number
type GetByNumberInput struct {
	Number int64 `path:"number" doc:"Protocol number" example:"6"`
}

// GetProtocolOutput returns the result of a lookup
type GetProtocolOutput struct {
	Status int
	Body   *npapi.ProtocolResponse
}

// ListInput describes the input to an enumeration
type ListInput struct {
	IfNoneMatch string `header:"If-None-Match" doc:"Fingerprint of a previous enumeration" required:"false"`
}

// ListOutput returns the enumerated protocol database
type ListOutput struct {
	Status int
	ETag   string `header:"ETag" doc:"Fingerprint of the enumeration"`
	Body   *npapi.ListResponse
}
