package main

import "github.com/spf13/cobra"

// Mainify converts an entry point with a normal Go error return into a
// cobra Run function, routing any error through Fatal. Every subcommand's
// business logic is written as a plain (*cobra.Command, []string) error
// function and wrapped with this at registration time, so the logic itself
// stays easy to call from tests.
func Mainify(main func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := main(cmd, args); err != nil {
			Fatal(err)
		}
	}
}
