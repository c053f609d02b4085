package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError is a command line error, optionally attributed to a specific flag. Usage errors
// exit with status 2.
type UsageError struct {
	Flag  string
	Value string
	Err   error
}

func (e *UsageError) Error() string {
	if e.Flag != "" && e.Value != "" {
		return fmt.Sprintf("invalid argument %q for \"--%s\" flag: %v", e.Value, e.Flag, e.Err)
	}

	if e.Flag != "" {
		return fmt.Sprintf("invalid argument for \"--%s\" flag: %v", e.Flag, e.Err)
	}

	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	var usage *UsageError

	switch {
	case err == nil:
		return ExitOK

	case errors.As(err, &usage):
		return ExitUsage

	default:
		return ExitFailure
	}
}

// noArgs rejects positional arguments as a usage error e.g. 'check --collection-ids c1 c2'.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return &UsageError{Err: err}
	}

	return nil
}

// usage marks cobra's command lookup errors as usage errors. Flag and argument errors are
// already wrapped by the flag error func and noArgs.
func usage(err error) error {
	var u *UsageError

	if err != nil && !errors.As(err, &u) && strings.HasPrefix(err.Error(), "unknown command") {
		return &UsageError{Err: err}
	}

	return err
}
