package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/warctools/warc-tracker-sheets/config"
	"github.com/warctools/warc-tracker-sheets/log"
)

const APP = "warc-tracker-sheets"

const EXAMPLE_URL = "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"

// Options holds the global command line options and the loaded configuration shared by all
// the commands.
type Options struct {
	Debug      bool
	ConfigFile string
	Workdir    string
	Config     *config.Config
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
}

func (o *Options) stdout() io.Writer {
	if o == nil || o.Stdout == nil {
		return os.Stdout
	}

	return o.Stdout
}

func (o *Options) stderr() io.Writer {
	if o == nil || o.Stderr == nil {
		return os.Stderr
	}

	return o.Stderr
}

func (o *Options) stdin() io.Reader {
	if o == nil || o.Stdin == nil {
		return os.Stdin
	}

	return o.Stdin
}

// command holds the options common to every command that accesses a Google Sheets spreadsheet.
// Unset options default to the values in the configuration file.
type command struct {
	credentials string
	tokens      string
	url         string
}

func (c *command) flags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	cmd.Flags().StringVar(&c.tokens, "tokens", c.tokens, "Directory for the cached OAuth2 tokens")
	cmd.Flags().StringVar(&c.url, "url", c.url, "Spreadsheet URL")
}

func (c *command) defaults(options *Options) {
	if conf := options.Config; conf != nil {
		if strings.TrimSpace(c.credentials) == "" {
			c.credentials = conf.Google.Credentials
		}

		if strings.TrimSpace(c.tokens) == "" {
			c.tokens = conf.Google.Tokens
		}

		if strings.TrimSpace(c.url) == "" {
			c.url = conf.Tracker.URL
		}
	}

	if strings.TrimSpace(c.credentials) == "" {
		c.credentials = DEFAULT_CREDENTIALS
	}

	if strings.TrimSpace(c.tokens) == "" {
		c.tokens = filepath.Join(options.Workdir, ".google")
	}
}

func (c *command) validate() error {
	if strings.TrimSpace(c.credentials) == "" {
		return &UsageError{Err: fmt.Errorf("--credentials is a required option")}
	}

	if strings.TrimSpace(c.url) == "" {
		return &UsageError{Err: fmt.Errorf("--url is a required option")}
	}

	if _, err := spreadsheetID(c.url); err != nil {
		return &UsageError{Flag: "url", Value: c.url, Err: err}
	}

	return nil
}

// connect authorises access to Google Sheets and returns a Sheets client and the ID of the
// spreadsheet.
func (c *command) connect(ctx context.Context, options *Options) (*sheets.Service, string, error) {
	spreadsheet, err := spreadsheetID(c.url)
	if err != nil {
		return nil, "", err
	}

	client, err := authorize(ctx, c.credentials, SHEETS, c.tokens, options.stdin(), options.stdout())
	if err != nil {
		return nil, "", fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, "", fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return google, spreadsheet, nil
}

var urlRegex = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

func spreadsheetID(url string) (string, error) {
	match := urlRegex.FindStringSubmatch(strings.TrimSpace(url))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like '%s'", EXAMPLE_URL)
	}

	return match[1], nil
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func infof(format string, args ...any) {
	log.Infof(format, args...)
}

func warnf(format string, args ...any) {
	log.Warnf(format, args...)
}

func errorf(format string, args ...any) {
	log.Errorf(format, args...)
}
