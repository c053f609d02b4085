package commands

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"
)

const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

var rangeRegex = regexp.MustCompile(`^(.+?)!([a-zA-Z]+)([0-9]+)?(?::([a-zA-Z]+)([0-9]+)?)?$`)

// area is a parsed A1 notation worksheet range e.g. 'Tracker!A2:E'.
type area struct {
	sheet  string
	left   string
	top    int
	right  string
	bottom int
}

func parseRange(r string) (*area, error) {
	match := rangeRegex.FindStringSubmatch(strings.TrimSpace(r))
	if match == nil {
		return nil, fmt.Errorf("invalid spreadsheet range '%s' - expected something like 'Tracker!A2:E'", r)
	}

	a := area{
		sheet: strings.Trim(match[1], "'"),
		left:  strings.ToUpper(match[2]),
		top:   1,
		right: strings.ToUpper(match[4]),
	}

	if match[3] != "" {
		a.top, _ = strconv.Atoi(match[3])
	}

	if match[5] != "" {
		a.bottom, _ = strconv.Atoi(match[5])
	}

	if a.right == "" {
		a.right = a.left
	}

	return &a, nil
}

// cell returns the A1 reference for the zero-based row and column offsets within the range.
func (a area) cell(row, col int) string {
	return fmt.Sprintf("%s%d", columnName(columnIndex(a.left)+col), a.top+row)
}

// columnIndex converts a column name to a zero-based index e.g. A => 0, AA => 26.
func columnIndex(name string) int {
	ix := 0
	for _, ch := range strings.ToUpper(name) {
		ix = ix*26 + int(ch-'A') + 1
	}

	return ix - 1
}

// columnName converts a zero-based column index to a column name e.g. 0 => A, 26 => AA.
func columnName(ix int) string {
	name := ""
	for n := ix + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}

	return name
}

func getSpreadsheet(ctx context.Context, google *sheets.Service, id string) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return spreadsheet, nil
}

// getSheet returns the worksheet with the title (ignoring case and surrounding spaces).
func getSheet(spreadsheet *sheets.Spreadsheet, title string) (*sheets.Sheet, error) {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(title)) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet '%s'", title)
}

func getValues(ctx context.Context, google *sheets.Service, spreadsheet string, r string) (*sheets.ValueRange, error) {
	response, err := google.Spreadsheets.Values.Get(spreadsheet, r).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	return response, nil
}

func clear(ctx context.Context, google *sheets.Service, spreadsheet string, ranges []string) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}

	if _, err := google.Spreadsheets.Values.BatchClear(spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}
