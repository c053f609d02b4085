package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/warctools/warc-tracker-sheets/collections"
)

// Checker runs the tracker check for a single collection.
type Checker interface {
	Check(ctx context.Context, id string) (Result, error)
}

// Result is the outcome of a tracker check for a single collection.
type Result struct {
	ID      string
	Status  string
	Message string
	Err     error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// printChecker is the checker used when no tracker worksheet is configured. It just reports
// the collection being processed.
type printChecker struct {
	out io.Writer
}

func (c printChecker) Check(ctx context.Context, id string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{ID: id}, err
	}

	fmt.Fprintf(c.out, "Processing collection: %s\n", id)

	return Result{ID: id, Status: "-", Message: "processed"}, nil
}

// trackerChecker checks each collection against the entries in a tracker worksheet.
type trackerChecker struct {
	tracker *collections.Tracker
}

func (c trackerChecker) Check(ctx context.Context, id string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{ID: id}, err
	}

	entry, ok := c.tracker.Lookup(id)
	if !ok {
		return Result{ID: id}, fmt.Errorf("collection %s is not listed in the tracker", id)
	}

	status := entry.Status
	if status == "" {
		status = "-"
	}

	debugf("collection %v  row:%v  status:%v  last-checked:%v", entry.ID, entry.Row, entry.Status, entry.LastChecked)

	return Result{
		ID:      id,
		Status:  status,
		Message: fmt.Sprintf("tracked (row %d)", entry.Row),
	}, nil
}
