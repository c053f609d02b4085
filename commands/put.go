package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/api/sheets/v4"
)

type Put struct {
	command
	area    string
	file    string
	replace bool
	dryrun  bool
}

func newPutCommand(options *Options) *cobra.Command {
	c := Put{}

	cmd := &cobra.Command{
		Use:   "put --url <url> --range <range> --file <file>",
		Short: "Uploads a TSV file to a Google Sheets worksheet",
		Example: `  warc-tracker-sheets --debug put --credentials "credentials.json" \
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
	cmd.Flags().StringVar(&c.file, "file", c.file, "TSV file")
	cmd.Flags().BoolVar(&c.replace, "replace", c.replace, "Clears the range before uploading the TSV file")
	cmd.Flags().BoolVar(&c.dryrun, "dryrun", c.dryrun, "Validates the TSV file without updating the worksheet")

	return cmd
}

func (c *Put) Execute(ctx context.Context, options *Options) error {
	c.defaults(options)

	if err := c.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.area) == "" {
		return &UsageError{Err: fmt.Errorf("--range is a required option")}
	}

	if strings.TrimSpace(c.file) == "" {
		return &UsageError{Err: fmt.Errorf("--file is a required option")}
	}

	f, err := os.Open(c.file)
	if err != nil {
		return err
	}

	defer f.Close()

	header, data, err := tsvToSheet(f, c.area)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%w)", err)
	}

	if c.dryrun {
		infof("TSV file %v: %v columns, %v rows (dry run - not uploaded)", c.file, len(header.Values[0]), len(data.Values))
		return nil
	}

	google, spreadsheet, err := c.connect(ctx, options)
	if err != nil {
		return err
	}

	debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, c.area)

	if c.replace {
		if err := clear(ctx, google, spreadsheet, []string{c.area}); err != nil {
			return fmt.Errorf("unable to clear range %v (%w)", c.area, err)
		}
	}

	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             []*sheets.ValueRange{header, data},
	}

	if _, err := google.Spreadsheets.Values.BatchUpdate(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	infof("Uploaded TSV file %v to Google Sheets %v", c.file, c.area)

	return nil
}
