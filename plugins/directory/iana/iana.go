// Package iana registers the embedded IANA protocol number registry as directory backend
package iana

import (
	"context"

	"github.com/els0r/netproto/pkg/protocols"
	"github.com/els0r/netproto/plugins"
)

// Type is the identifier of the IANA directory backend
const Type = "iana"

func init() {
	plugins.RegisterDirectory(Type, func(_ context.Context, _ string) (protocols.Directory, error) {
		return protocols.IANA(), nil
	})
}
