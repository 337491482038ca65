// Package file registers protocols(5) formatted files as directory backend
package file

import (
	"context"

	"github.com/els0r/netproto/pkg/protocols"
	"github.com/els0r/netproto/plugins"
	"github.com/els0r/telemetry/logging"
)

// Type is the identifier of the file directory backend
const Type = "file"

// New creates a directory reading from the protocols file at path (the platform default
// if empty). The file must be readable at the time of creation
func New(ctx context.Context, path string) (*protocols.FileDirectory, error) {
	d := protocols.NewFileDirectory(path)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).With("path", d.Path()).Debug("using protocols file")
	return d, nil
}

func init() {
	plugins.RegisterDirectory(Type, func(ctx context.Context, source string) (protocols.Directory, error) {
		d, err := New(ctx, source)
		if err != nil {
			return nil, err
		}
		return d, nil
	})
}
