package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VERSION is overridden at build time with -ldflags "-X github.com/warctools/warc-tracker-sheets/commands.VERSION=v0.1.0"
var VERSION = "v0.0.x"

func newVersionCommand(options *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Displays the current version",
		Long:  "Displays the warc-tracker-sheets version in the format v<major>.<minor>.<build> e.g. v1.00.10",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(options.stdout(), "%s\n", VERSION)
			return err
		},
	}
}
