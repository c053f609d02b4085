package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type Authorise struct {
	command
}

func newAuthoriseCommand(options *Options) *cobra.Command {
	c := Authorise{}

	cmd := &cobra.Command{
		Use:     "authorise",
		Aliases: []string{"authorize"},
		Short:   "Authorises warc-tracker-sheets to access Google Sheets and caches the OAuth2 token",
		Example: `  warc-tracker-sheets authorise --credentials "credentials.json"`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Execute(cmd.Context(), options)
		},
	}

	cmd.Flags().StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	cmd.Flags().StringVar(&c.tokens, "tokens", c.tokens, "Directory for the cached OAuth2 tokens")

	return cmd
}

// Execute discards any cached token and runs the OAuth2 authorisation flow.
func (c *Authorise) Execute(ctx context.Context, options *Options) error {
	c.defaults(options)

	if strings.TrimSpace(c.credentials) == "" {
		return &UsageError{Err: fmt.Errorf("--credentials is a required option")}
	}

	file := tokenFile(c.credentials, SHEETS, c.tokens)
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return err
	}

	if _, err := authorize(ctx, c.credentials, SHEETS, c.tokens, options.stdin(), options.stdout()); err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	}

	infof("Authorised access to Google Sheets")

	return nil
}
