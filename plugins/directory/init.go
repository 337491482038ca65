package directory

// enumerates the default directory plugin list
import (
	_ "github.com/els0r/netproto/plugins/directory/file"
	_ "github.com/els0r/netproto/plugins/directory/iana"
	_ "github.com/els0r/netproto/plugins/directory/remote"
	_ "github.com/els0r/netproto/plugins/directory/system"
)
