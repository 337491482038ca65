package server

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/els0r/telemetry/logging"
)

// OpenAPISpecWriter can be implemented by any server able to produce an OpenAPI spec
// from its registered routes
type OpenAPISpecWriter interface {
	WriteOpenAPISpec(w io.Writer) error
}

// GenerateSpec writes the OpenAPI spec of ow to path. An empty path is a no-op
func GenerateSpec(ctx context.Context, path string, ow OpenAPISpecWriter) (err error) {
	if path == "" {
		return nil
	}
	logging.FromContext(ctx).With("path", path).Info("writing OpenAPI spec")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err = ow.WriteOpenAPISpec(f); err != nil {
		return fmt.Errorf("failed to write OpenAPI spec to %s: %w", path, err)
	}
	return nil
}
