package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Success prints a green line with a checkmark prefix.
func Success(format string, a ...any) {
	green.Printf("✓ "+format, a...)
}

// Warning prints a yellow line.
func Warning(format string, a ...any) {
	yellow.Printf("⚠️  "+format, a...)
}

// Error prints err in red to stderr and hands it back for the exit code.
func Error(err error) error {
	red.Fprintf(os.Stderr, "Error: ")
	fmt.Fprintln(os.Stderr, err)
	return err
}
