package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Warning prints a yellow warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(os.Stderr, color.YellowString("Warning: %s", message))
}

// Error prints a red error message to standard error.
func Error(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
}

// Fatal prints a red error message to standard error and exits with status
// 1.
func Fatal(err error) {
	Error(err)
	os.Exit(1)
}
