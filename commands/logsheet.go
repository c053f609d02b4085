package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"google.golang.org/api/sheets/v4"
)

const TIMESTAMP = "2006-01-02 15:04:05"

var logColumns = []string{"timestamp", "runid", "collectionid", "status", "result", "error"}

// logIndex maps the log sheet column names to column offsets. The default layout is used
// if the log sheet has no header row.
func logIndex(values [][]any) map[string]int {
	index := map[string]int{}

	if len(values) == 0 || len(values[0]) == 0 {
		for i, k := range logColumns {
			index[k] = i
		}

		return index
	}

	for i, v := range values[0] {
		k := normalise(fmt.Sprintf("%v", v))
		for _, c := range logColumns {
			if k == c {
				index[k] = i
			}
		}
	}

	return index
}

func logRows(index map[string]int, results []Result, timestamp time.Time, runID string) [][]any {
	columns := 0
	for _, v := range index {
		if v >= columns {
			columns = v + 1
		}
	}

	rows := [][]any{}
	for _, r := range results {
		row := make([]any, columns)
		for i := range row {
			row[i] = ""
		}

		set := func(k string, v any) {
			if ix, ok := index[k]; ok {
				row[ix] = v
			}
		}

		set("timestamp", timestamp.Format(TIMESTAMP))
		set("runid", runID)
		set("collectionid", r.ID)
		set("status", r.Status)

		if r.OK() {
			set("result", "ok")
		} else {
			set("result", "failed")
			set("error", r.Err.Error())
		}

		rows = append(rows, row)
	}

	return rows
}

func updateLogSheet(ctx context.Context, google *sheets.Service, spreadsheet string, logRange string, results []Result, runID string) error {
	response, err := getValues(ctx, google, spreadsheet, logRange)
	if err != nil {
		return fmt.Errorf("unable to retrieve column headers from log sheet (%w)", err)
	}

	index := logIndex(response.Values)
	if _, ok := index["collectionid"]; !ok {
		return fmt.Errorf("log sheet %v is missing a 'Collection ID' column", logRange)
	}

	debugf("log sheet column index: %v", index)

	rows := sheets.ValueRange{
		Values: logRows(index, results, time.Now(), runID),
	}

	if _, err := google.Spreadsheets.Values.Append(spreadsheet, logRange, &rows).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error writing log to Google Sheets (%w)", err)
	}

	return nil
}

// expired returns the (zero-based) rows with a timestamp before the cutoff.
func expired(values [][]any, column int, cutoff time.Time) []int {
	list := []int{}

	for row, record := range values {
		if column >= len(record) {
			continue
		}

		timestamp, err := time.ParseInLocation(TIMESTAMP, fmt.Sprintf("%v", record[column]), cutoff.Location())
		if err == nil && timestamp.Before(cutoff) {
			list = append(list, row)
		}
	}

	return list
}

// spans groups a list of row indices into contiguous [start,end] spans, ordered from the
// bottom of the sheet up so that deleting a span doesn't shift the rows of the spans that
// follow it.
func spans(rows []int) [][2]int {
	if len(rows) == 0 {
		return nil
	}

	sorted := append([]int{}, rows...)
	sort.Ints(sorted)

	list := [][2]int{}
	start := sorted[0]
	last := sorted[0]
	for _, row := range sorted[1:] {
		if row != last+1 {
			list = append(list, [2]int{start, last})
			start = row
		}

		last = row
	}

	list = append(list, [2]int{start, last})

	sort.Slice(list, func(i, j int) bool { return list[i][0] > list[j][0] })

	return list
}

// cutoff returns the start of the oldest day retained in the log sheet.
func cutoff(now time.Time, retention int) time.Time {
	before := now.AddDate(0, 0, -(retention - 1))

	return time.Date(before.Year(), before.Month(), before.Day(), 0, 0, 0, 0, now.Location())
}

func pruneLogSheet(ctx context.Context, google *sheets.Service, spreadsheet string, logRange string, retention int) error {
	if retention <= 0 {
		return nil
	}

	a, err := parseRange(logRange)
	if err != nil {
		return err
	}

	s, err := getSpreadsheet(ctx, google, spreadsheet)
	if err != nil {
		return err
	}

	sheet, err := getSheet(s, a.sheet)
	if err != nil {
		return err
	}

	response, err := getValues(ctx, google, spreadsheet, logRange)
	if err != nil {
		return fmt.Errorf("unable to retrieve data from log sheet (%w)", err)
	}

	index := logIndex(response.Values)
	column, ok := index["timestamp"]
	if !ok {
		warnf("log sheet %v has no 'Timestamp' column - not pruning", logRange)
		return nil
	}

	before := cutoff(time.Now().In(time.Local), retention)

	infof("Pruning log records from before %v", before.Format("2006-01-02"))

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{},
	}

	deleted := 0
	for _, span := range spans(expired(response.Values, column, before)) {
		rq.Requests = append(rq.Requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheet.Properties.SheetId,
					Dimension:  "ROWS",
					StartIndex: int64(a.top - 1 + span[0]),
					EndIndex:   int64(a.top + span[1]),
				},
			},
		})

		deleted += span[1] - span[0] + 1
	}

	if len(rq.Requests) > 0 {
		if _, err := google.Spreadsheets.BatchUpdate(spreadsheet, &rq).Context(ctx).Do(); err != nil {
			return err
		}
	}

	infof("Pruned %d log records from log sheet", deleted)

	return nil
}
