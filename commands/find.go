package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type Find struct {
	command
	area  string
	text  string
	exact bool
}

// match is a cell that matches the search text.
type match struct {
	cell  string
	value string
}

func newFindCommand(options *Options) *cobra.Command {
	c := Find{}

	cmd := &cobra.Command{
		Use:   "find --url <url> --range <range> --text <text>",
		Short: "Finds the cells in a worksheet range that contain the text",
		Example: `  warc-tracker-sheets find --url "` + EXAMPLE_URL + `" --range "Tracker!A1:C" --text ARCHIVEIT-1001 --exact`,
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Execute(cmd.Context(), options)
		},
	}

	c.command.flags(cmd)

	cmd.Flags().StringVar(&c.area, "range", c.area, "Spreadsheet range e.g. 'Tracker!A1:C'")
	cmd.Flags().StringVar(&c.text, "text", c.text, "Text to find (case insensitive)")
	cmd.Flags().BoolVar(&c.exact, "exact", c.exact, "Matches only cells with exactly the search text")

	return cmd
}

func (c *Find) Execute(ctx context.Context, options *Options) error {
	c.defaults(options)

	if err := c.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(c.text) == "" {
		return &UsageError{Err: fmt.Errorf("--text is a required option")}
	}

	a, err := parseRange(c.area)
	if err != nil {
		return &UsageError{Flag: "range", Value: c.area, Err: err}
	}

	google, spreadsheet, err := c.connect(ctx, options)
	if err != nil {
		return err
	}

	debugf("Spreadsheet - ID:%s  range:%s  text:%q", spreadsheet, c.area, c.text)

	response, err := getValues(ctx, google, spreadsheet, c.area)
	if err != nil {
		return err
	}

	matches := find(*a, response.Values, c.text, c.exact)
	if len(matches) == 0 {
		infof("No cells in %v match '%v'", c.area, c.text)
		return nil
	}

	rows := [][]string{}
	for _, m := range matches {
		rows = append(rows, []string{fmt.Sprintf("%s!%s", a.sheet, m.cell), m.value})
	}

	fmt.Fprintln(options.stdout(), renderTable([]string{"Cell", "Value"}, rows))

	return nil
}

// find returns the cells with values that contain (or, if exact, equal) the text, in row
// order. Comparisons ignore case and surrounding whitespace.
func find(a area, values [][]any, text string, exact bool) []match {
	matches := []match{}
	needle := strings.ToLower(strings.TrimSpace(text))

	for r, row := range values {
		for c, v := range row {
			value := clean(fmt.Sprintf("%v", v))
			s := strings.ToLower(value)

			if (exact && s == needle) || (!exact && strings.Contains(s, needle)) {
				matches = append(matches, match{cell: a.cell(r, c), value: value})
			}
		}
	}

	return matches
}
