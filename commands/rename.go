package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"google.golang.org/api/sheets/v4"
)

type Rename struct {
	command
	sheet string
	title string
}

func newRenameCommand(options *Options) *cobra.Command {
	c := Rename{}

	cmd := &cobra.Command{
		Use:   "rename --url <url> [--sheet <worksheet>] --title <title>",
		Short: "Renames a worksheet, or the spreadsheet if --sheet is not specified",
		Example: `  warc-tracker-sheets rename --url "` + EXAMPLE_URL + `" --sheet "Sheet1" --title "Tracker"
  warc-tracker-sheets rename --url "` + EXAMPLE_URL + `" --title "WARC Tracker 2024"`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Execute(cmd.Context(), options)
		},
	}

	c.command.flags(cmd)

	cmd.Flags().StringVar(&c.sheet, "sheet", c.sheet, "Title of the worksheet to rename")
	cmd.Flags().StringVar(&c.title, "title", c.title, "New title")

	return cmd
}

func (c *Rename) Execute(ctx context.Context, options *Options) error {
	c.defaults(options)

	if err := c.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.title) == "" {
		return &UsageError{Err: fmt.Errorf("--title is a required option")}
	}

	google, spreadsheet, err := c.connect(ctx, options)
	if err != nil {
		return err
	}

	s, err := getSpreadsheet(ctx, google, spreadsheet)
	if err != nil {
		return err
	}

	rq, err := renameRequest(s, c.sheet, c.title)
	if err != nil {
		return err
	}

	if _, err := google.Spreadsheets.BatchUpdate(spreadsheet, rq).Context(ctx).Do(); err != nil {
		return err
	}

	if strings.TrimSpace(c.sheet) == "" {
		infof("Renamed spreadsheet '%v' to '%v'", s.Properties.Title, strings.TrimSpace(c.title))
	} else {
		infof("Renamed worksheet '%v' to '%v'", strings.TrimSpace(c.sheet), strings.TrimSpace(c.title))
	}

	return nil
}

func renameRequest(spreadsheet *sheets.Spreadsheet, sheet, title string) (*sheets.BatchUpdateSpreadsheetRequest, error) {
	title = strings.TrimSpace(title)

	if strings.TrimSpace(sheet) == "" {
		return &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{
				{
					UpdateSpreadsheetProperties: &sheets.UpdateSpreadsheetPropertiesRequest{
						Properties: &sheets.SpreadsheetProperties{Title: title},
						Fields:     "title",
					},
				},
			},
		}, nil
	}

	if _, err := getSheet(spreadsheet, title); err == nil && !strings.EqualFold(strings.TrimSpace(sheet), title) {
		return nil, fmt.Errorf("worksheet '%s' already exists", title)
	}

	ws, err := getSheet(spreadsheet, sheet)
	if err != nil {
		return nil, err
	}

	return &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:         ws.Properties.SheetId,
						Title:           title,
						ForceSendFields: []string{"SheetId"},
					},
					Fields: "title",
				},
			},
		},
	}, nil
}
