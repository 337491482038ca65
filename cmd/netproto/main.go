package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/els0r/netproto/cmd/netproto/cmd"
	"github.com/els0r/telemetry/logging"
)

// exitNotFound is returned if at least one queried protocol is unknown
const exitNotFound = 2

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, cmd.ErrNotFound) {
		os.Exit(exitNotFound)
	}

	logger, _, logErr := logging.New(logging.LevelError, logging.EncodingPlain,
		logging.WithOutput(os.Stderr),
	)
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "Failed to instantiate CLI logger: %v\n", logErr)

		fmt.Fprintf(os.Stderr, "Error running application: %s\n", err)
		os.Exit(1)
	}
	logger.Fatalf("Error running application: %s", err)
}
