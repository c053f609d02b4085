package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/warctools/warc-tracker-sheets/config"
	"github.com/warctools/warc-tracker-sheets/log"
)

// NewRootCommand returns the warc-tracker-sheets command line with all the subcommands.
func NewRootCommand(options *Options) *cobra.Command {
	root := &cobra.Command{
		Use:   APP,
		Short: "WARC tracker checks and Google Sheets utilities",
		Long: `warc-tracker-sheets runs WARC tracker checks for web archive collections, optionally against a tracker
worksheet in a Google Sheets spreadsheet, and provides commands to read, write, rename and search worksheets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return options.load()
		},
	}

	root.PersistentFlags().BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	root.PersistentFlags().StringVar(&options.ConfigFile, "config", options.ConfigFile, fmt.Sprintf("Configuration file path. Defaults to <workdir>/%s", config.FILE))
	root.PersistentFlags().StringVar(&options.Workdir, "workdir", options.Workdir, "Directory for working files (tokens, configuration, etc)")

	root.AddCommand(newCheckCommand(options))
	root.AddCommand(newGetCommand(options))
	root.AddCommand(newPutCommand(options))
	root.AddCommand(newRenameCommand(options))
	root.AddCommand(newFindCommand(options))
	root.AddCommand(newAuthoriseCommand(options))
	root.AddCommand(newVersionCommand(options))

	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	return root
}

// Run executes the command line and returns the process exit status. Errors are reported
// on stderr.
func Run(ctx context.Context, args []string, options *Options, stderr io.Writer) int {
	if stderr == nil {
		stderr = options.stderr()
	}

	if options.Stderr == nil {
		options.Stderr = stderr
	}

	root := NewRootCommand(options)
	root.SetArgs(args)
	root.SetOut(options.stdout())
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err = usage(err); err == nil {
		return ExitOK
	}

	code := ExitCode(err)
	if code == ExitUsage {
		path := APP
		if cmd != nil {
			path = cmd.CommandPath()
		}

		fmt.Fprintf(stderr, "%s: error: %v\n", APP, err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", path)
	} else {
		fmt.Fprintf(stderr, "\nERROR: %v\n\n", err)
	}

	return code
}

func (o *Options) load() error {
	if o.Config == nil {
		conf, err := config.Load(o.ConfigFile, o.Workdir)
		if err != nil {
			return err
		}

		o.Config = conf
		o.Workdir = conf.Workdir
	}

	log.Init(o.stderr(), o.Config.Logging.Format, o.Config.Logging.Level)

	if o.Debug {
		log.SetDebug(true)
	}

	return nil
}
