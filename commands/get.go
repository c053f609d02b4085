package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type Get struct {
	command
	area string
	file string
}

func newGetCommand(options *Options) *cobra.Command {
	c := Get{
		file: time.Now().Format("2006-01-02T150405.tsv"),
	}

	cmd := &cobra.Command{
		Use:   "get --url <url> --range <range> [--file <file>]",
		Short: "Downloads a Google Sheets worksheet range to a TSV file",
		Example: `  warc-tracker-sheets --debug get --credentials "credentials.json" \
                                  --url "` + EXAMPLE_URL + `" \
                                  --range "Tracker!A1:C" \
                                  --file "tracker.tsv"`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Execute(cmd.Context(), options)
		},
	}

	c.command.flags(cmd)

	cmd.Flags().StringVar(&c.area, "range", c.area, "Spreadsheet range e.g. 'Tracker!A1:C'")
	cmd.Flags().StringVar(&c.file, "file", c.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return cmd
}

func (c *Get) Execute(ctx context.Context, options *Options) error {
	c.defaults(options)

	// ... check parameters
	if err := c.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.area) == "" {
		return &UsageError{Err: fmt.Errorf("--range is a required option")}
	}

	if strings.TrimSpace(c.file) == "" {
		return &UsageError{Err: fmt.Errorf("--file is a required option")}
	}

	google, spreadsheet, err := c.connect(ctx, options)
	if err != nil {
		return err
	}

	debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, c.area)

	response, err := getValues(ctx, google, spreadsheet, c.area)
	if err != nil {
		return err
	}

	if len(response.Values) == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	dir := filepath.Dir(c.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tracker-*.tsv")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := sheetToTSV(tmp, response); err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	tmp.Close()

	if err := os.Rename(tmp.Name(), c.file); err != nil {
		return err
	}

	infof("Retrieved %s to file %s", c.area, c.file)

	return nil
}
