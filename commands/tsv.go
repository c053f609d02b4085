package commands

import (
	"encoding/csv"
	"fmt"
	"io"

	"google.golang.org/api/sheets/v4"
)

// sheetToTSV writes the worksheet values as TSV. The first row is the header and every row
// is padded (or truncated) to the header width.
func sheetToTSV(f io.Writer, data *sheets.ValueRange) error {
	if data == nil || len(data.Values) == 0 {
		return fmt.Errorf("empty sheet")
	}

	// ... header
	header := []string{}
	for _, v := range data.Values[0] {
		header = append(header, clean(fmt.Sprintf("%v", v)))
	}

	if len(header) == 0 {
		return fmt.Errorf("missing/invalid header row")
	}

	index := map[string]int{}
	for i, h := range header {
		k := normalise(h)
		if _, ok := index[k]; ok && k != "" {
			return fmt.Errorf("duplicate column name '%s'", h)
		}

		index[k] = i
	}

	// ... records
	records := [][]string{}
	for _, row := range data.Values[1:] {
		record := make([]string, len(header))
		blank := true

		for i := range header {
			if i < len(row) && row[i] != nil {
				record[i] = clean(fmt.Sprintf("%v", row[i]))
			}

			if record[i] != "" {
				blank = false
			}
		}

		if !blank {
			records = append(records, record)
		}
	}

	// ... write to file
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	if err := w.WriteAll(records); err != nil {
		return err
	}

	return w.Error()
}

// tsvToSheet converts a TSV file to a pair of value ranges for the header row and the data
// rows in the worksheet range.
func tsvToSheet(f io.Reader, r string) (*sheets.ValueRange, *sheets.ValueRange, error) {
	a, err := parseRange(r)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(f)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("TSV file is empty")
	}

	// header
	h := make([]any, len(records[0]))
	for i, v := range records[0] {
		h[i] = v
	}

	header := sheets.ValueRange{
		Range:  fmt.Sprintf("%s!%s%v:%s%v", a.sheet, a.left, a.top, a.right, a.top),
		Values: [][]any{h},
	}

	// data
	rows := make([][]any, 0)
	for _, record := range records[1:] {
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}

		rows = append(rows, row)
	}

	data := sheets.ValueRange{
		Range:  fmt.Sprintf("%s!%s%v:%s", a.sheet, a.left, a.top+1, a.right),
		Values: rows,
	}

	return &header, &data, nil
}
