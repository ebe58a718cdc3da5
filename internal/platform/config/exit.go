package config

import (
	"fmt"
	"io"
	"os"
)

var (
	exitProcess           = os.Exit
	exitOutput  io.Writer = os.Stderr
)

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	ExitCodef(1, format, args...)
}

// ExitCodef writes a formatted error message to stderr and exits with code.
// Codes below 1 are raised to 1 so a fatal path never reports success.
func ExitCodef(code int, format string, args ...any) {
	if code < 1 {
		code = 1
	}
	fmt.Fprintf(exitOutput, format+"\n", args...)
	exitProcess(code)
}
