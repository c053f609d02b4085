package collections

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// Entry is a single collection row from a tracker worksheet.
type Entry struct {
	ID          string
	Status      string
	LastChecked string
	Row         int // 1-based row within the worksheet range
}

// Tracker is the set of collections listed in a tracker worksheet, in worksheet order.
type Tracker struct {
	Header  []string
	Entries []Entry
	index   map[string]int
}

// MakeTracker builds a Tracker from the values of a tracker worksheet range. The first row
// is the header and must include a 'Collection ID' column. 'Status' and 'Last Checked' are
// optional. Column names are matched ignoring case and spaces.
func MakeTracker(data *sheets.ValueRange) (*Tracker, error) {
	if data == nil || len(data.Values) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	// .. build index
	index := map[string]int{}
	header := []string{}
	for i, v := range data.Values[0] {
		h := clean(fmt.Sprintf("%v", v))
		k := normalise(h)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%s'", h)
		}

		index[k] = i
		header = append(header, h)
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	if _, ok := index["collectionid"]; !ok {
		return nil, fmt.Errorf("missing 'collection ID' column")
	}

	// ... records
	tracker := Tracker{
		Header:  header,
		Entries: []Entry{},
		index:   map[string]int{},
	}

	for i, row := range data.Values[1:] {
		id := cell(row, index["collectionid"])
		if id == "" {
			continue
		}

		entry := Entry{
			ID:  id,
			Row: i + 2,
		}

		if ix, ok := index["status"]; ok {
			entry.Status = cell(row, ix)
		}

		if ix, ok := index["lastchecked"]; ok {
			entry.LastChecked = cell(row, ix)
		}

		if _, ok := tracker.index[id]; !ok {
			tracker.index[id] = len(tracker.Entries)
		}

		tracker.Entries = append(tracker.Entries, entry)
	}

	return &tracker, nil
}

// Lookup returns the first tracker entry for the collection ID.
func (t *Tracker) Lookup(id string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}

	if ix, ok := t.index[strings.TrimSpace(id)]; ok {
		return t.Entries[ix], true
	}

	return Entry{}, false
}

func cell(row []any, ix int) string {
	if ix < 0 || ix >= len(row) || row[ix] == nil {
		return ""
	}

	return clean(fmt.Sprintf("%v", row[ix]))
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
