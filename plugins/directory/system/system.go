// Package system registers the platform protocol database as directory backend
package system

import (
	"context"

	"github.com/els0r/netproto/pkg/protocols"
	"github.com/els0r/netproto/plugins"
)

// Type is the identifier of the system directory backend
const Type = "system"

func init() {
	plugins.RegisterDirectory(Type, func(_ context.Context, _ string) (protocols.Directory, error) {
		return protocols.System(), nil
	})
}
