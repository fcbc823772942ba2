// Package logging provides the leveled, sublogger-capable logger used
// throughout uniqfiles.
package logging

import (
	"log"
	"os"
)

func init() {
	// Set the global logger to use standard output.
	log.SetOutput(os.Stdout)
}

// DebugEnabled controls whether Debug-level logging methods produce output.
// It is set from the command line (--debug).
var DebugEnabled bool
