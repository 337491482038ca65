package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	npapi "github.com/els0r/netproto/pkg/api/netproto"
	"github.com/els0r/netproto/pkg/protocols"
	"github.com/els0r/telemetry/logging"
	"github.com/els0r/telemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (server *Server) getByNameHandler() func(context.Context, *GetByNameInput) (*GetProtocolOutput, error) {
	return func(ctx context.Context, input *GetByNameInput) (*GetProtocolOutput, error) {
		_, span := tracing.Start(ctx, "(*Server).getByName", trace.WithAttributes(attribute.String("name", input.Name)))
		defer span.End()

		r, err := server.directory.ByName(input.Name)
		return lookupOutput(ctx, r, err)
	}
}

func (server *Server) getByNumberHandler() func(context.Context, *GetByNumberInput) (*GetProtocolOutput, error) {
	return func(ctx context.Context, input *GetByNumberInput) (*GetProtocolOutput, error) {
		_, span := tracing.Start(ctx, "(*Server).getByNumber", trace.WithAttributes(attribute.Int64("number", input.Number)))
		defer span.End()

		// int may not hold every int64 on 32 bit platforms
		if _, err := protocols.CheckNumber(input.Number); err != nil {
			return lookupOutput(ctx, nil, err)
		}
		r, err := server.directory.ByNumber(int(input.Number))
		return lookupOutput(ctx, r, err)
	}
}

func lookupOutput(ctx context.Context, r *protocols.Record, err error) (*GetProtocolOutput, error) {
	output := &GetProtocolOutput{
		Status: http.StatusOK,
		Body:   &npapi.ProtocolResponse{},
	}
	if err != nil {
		if !errors.Is(err, protocols.ErrInvalidArgument) {
			logging.FromContext(ctx).With("error", err).Error("protocol lookup failed")
			return nil, huma.Error500InternalServerError("protocol lookup failed", err)
		}
		output.Status = http.StatusBadRequest
		output.Body.Error = err.Error()
	}
	output.Body.StatusCode = output.Status

	if r != nil {
		entry := r.Entry()
		output.Body.Found = true
		output.Body.Protocol = &entry
	}
	return output, nil
}

func (server *Server) listHandler() func(context.Context, *ListInput) (*ListOutput, error) {
	return func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		_, span := tracing.Start(ctx, "(*Server).list")
		defer span.End()

		output := &ListOutput{
			Status: http.StatusOK,
			Body:   &npapi.ListResponse{},
		}

		records, fp, err := protocols.List(ctx, server.directory)
		if err != nil {
			if !errors.Is(err, protocols.ErrUnsupported) {
				logging.FromContext(ctx).With("error", err).Error("protocol enumeration failed")
				return nil, huma.Error500InternalServerError("protocol enumeration failed", err)
			}
			output.Status = http.StatusNotImplemented
			output.Body.StatusCode = output.Status
			output.Body.Error = err.Error()
			output.Body.Protocols = []protocols.Entry{}
			return output, nil
		}
		output.ETag = strconv.Quote(fp)
		span.SetAttributes(attribute.Int("records", len(records)))

		if input.IfNoneMatch == output.ETag {
			output.Status = http.StatusNotModified
			output.Body = nil
			return output, nil
		}

		output.Body.StatusCode = output.Status
		output.Body.Fingerprint = fp
		output.Body.Protocols = make([]protocols.Entry, 0, len(records))
		for _, r := range records {
			output.Body.Protocols = append(output.Body.Protocols, r.Entry())
		}
		return output, nil
	}
}
