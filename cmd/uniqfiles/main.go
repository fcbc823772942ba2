// Command uniqfiles scans a directory tree (including the contents of
// zip archives found within it) for duplicate files by content, using a
// persistent baseline index to avoid rehashing unchanged files between
// runs.
package main

import (
	"github.com/spf13/cobra"

	"github.com/Mushinako/uniqfiles/internal/logging"
)

var rootCommand = &cobra.Command{
	Use:          "uniqfiles",
	Short:        "Find duplicate files across a directory tree and archives within it",
	SilenceUsage: true,
}

func init() {
	rootCommand.PersistentFlags().BoolVar(&logging.DebugEnabled, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		Fatal(err)
	}
}
