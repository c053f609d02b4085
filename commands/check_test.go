package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/api/sheets/v4"

	"github.com/warctools/warc-tracker-sheets/collections"
	"github.com/warctools/warc-tracker-sheets/config"
)

var errUnreachable = errors.New("tracker unreachable")

type stubChecker struct {
	checked []string
	fail    map[string]bool
}

func (s *stubChecker) Check(ctx context.Context, id string) (Result, error) {
	s.checked = append(s.checked, id)

	if s.fail[id] {
		return Result{}, errUnreachable
	}

	return Result{ID: id, Status: "ok", Message: "checked"}, nil
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	conf := config.Default(t.TempDir())
	options := Options{
		Workdir: conf.Workdir,
		Config:  &conf,
	}

	var stdout, stderr bytes.Buffer
	options.Stdout = &stdout

	code := Run(context.Background(), args, &options, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestCheckSingleCollection(t *testing.T) {
	code, stdout, stderr := run(t, "check", "--collection-id", " ARCHIVEIT-1001 ")
	if code != ExitOK {
		t.Fatalf("Incorrect exit code - expected %v, got %v (%s)", ExitOK, code, stderr)
	}

	if !strings.Contains(stdout, "Processing single collection: ARCHIVEIT-1001\n") {
		t.Errorf("Missing 'single collection' message in output:\n%s", stdout)
	}

	if !strings.Contains(stdout, "Processing collection: ARCHIVEIT-1001\n") {
		t.Errorf("Missing 'processing collection' message in output:\n%s", stdout)
	}
}

func TestCheckSingleCollectionWithSpaces(t *testing.T) {
	code, stdout, stderr := run(t, "check", "--collection-id", "my collection")
	if code != ExitOK {
		t.Fatalf("Incorrect exit code - expected %v, got %v (%s)", ExitOK, code, stderr)
	}

	if !strings.Contains(stdout, "Processing collection: my collection\n") {
		t.Errorf("Missing 'processing collection' message in output:\n%s", stdout)
	}
}

func TestCheckMultipleCollections(t *testing.T) {
	code, stdout, stderr := run(t, "check", "--collection-ids", " c1 , c2 ,,c3 ")
	if code != ExitOK {
		t.Fatalf("Incorrect exit code - expected %v, got %v (%s)", ExitOK, code, stderr)
	}

	if !strings.Contains(stdout, "Processing multiple collections: c1, c2, c3\n") {
		t.Errorf("Missing 'multiple collections' message in output:\n%s", stdout)
	}

	expected := "Processing collection: c1\nProcessing collection: c2\nProcessing collection: c3\n"
	if !strings.Contains(stdout, expected) {
		t.Errorf("Collections not processed in order:\n%s", stdout)
	}
}

func TestCheckWithUnderscoreFlags(t *testing.T) {
	code, stdout, stderr := run(t, "check", "--collection_ids", "c1,c2")
	if code != ExitOK {
		t.Fatalf("Incorrect exit code - expected %v, got %v (%s)", ExitOK, code, stderr)
	}

	if !strings.Contains(stdout, "Processing multiple collections: c1, c2\n") {
		t.Errorf("Missing 'multiple collections' message in output:\n%s", stdout)
	}
}

func TestCheckWithInvalidArguments(t *testing.T) {
	tests := []struct {
		args     []string
		expected string
	}{
		{
			[]string{"check", "--collection-ids", "c1,c2 c3"},
			`invalid argument "c1,c2 c3" for "--collection-ids" flag: mixed separators not allowed`,
		},
		{
			[]string{"check", "--collection-ids", "   "},
			`invalid argument "   " for "--collection-ids" flag: no identifiers provided`,
		},
		{
			[]string{"check", "--collection-ids", ",,"},
			`invalid argument ",," for "--collection-ids" flag: no valid identifiers after processing`,
		},
		{
			[]string{"check", "--collection-id", ""},
			`invalid argument for "--collection-id" flag: no identifiers provided`,
		},
		{
			[]string{"check", "--collection-id", "c1", "--collection-ids", "c2,c3"},
			"--collection-ids is not allowed with --collection-id",
		},
		{
			[]string{"check"},
			"one of --collection-id or --collection-ids is required",
		},
		{
			[]string{"check", "--collection-idz", "c1"},
			"unknown flag: --collection-idz",
		},
		{
			[]string{"check", "--collection-ids", "c1", "c2"},
			`unknown command "c2" for "warc-tracker-sheets check"`,
		},
		{
			[]string{"chek", "--collection-id", "c1"},
			`unknown command "chek" for "warc-tracker-sheets"`,
		},
	}

	for _, test := range tests {
		code, stdout, stderr := run(t, test.args...)
		if code != ExitUsage {
			t.Errorf("%v: incorrect exit code - expected %v, got %v", test.args, ExitUsage, code)
		}

		if !strings.Contains(stderr, test.expected) {
			t.Errorf("%v: incorrect error\n   expected: %s\n   got:      %s", test.args, test.expected, stderr)
		}

		if strings.Contains(stdout, "Processing collection") {
			t.Errorf("%v: unexpected collection processing on invalid arguments:\n%s", test.args, stdout)
		}
	}
}

func TestCheckLogsToStderr(t *testing.T) {
	code, stdout, stderr := run(t, "--debug", "check", "--collection-id", "c1")
	if code != ExitOK {
		t.Fatalf("Incorrect exit code - expected %v, got %v (%s)", ExitOK, code, stderr)
	}

	if !strings.Contains(stderr, `"level":"debug"`) || !strings.Contains(stderr, "collection selection:single") {
		t.Errorf("Expected debug log entries on stderr, got:\n%s", stderr)
	}

	if !strings.Contains(stderr, "c1  processed") {
		t.Errorf("Expected check log entry on stderr, got:\n%s", stderr)
	}

	if strings.Contains(stdout, `"level"`) {
		t.Errorf("Unexpected log entries in command output:\n%s", stdout)
	}
}

func TestCheckContinuesAfterFailure(t *testing.T) {
	checker := stubChecker{
		fail: map[string]bool{"c2": true},
	}

	results, err := check(context.Background(), &checker, []string{"c1", "c2", "c3"})
	if err == nil {
		t.Fatalf("Expected error for failed check")
	}

	if !errors.Is(err, errUnreachable) {
		t.Errorf("Expected joined error to wrap %v, got %v", errUnreachable, err)
	}

	if !strings.Contains(err.Error(), "c2: tracker unreachable") {
		t.Errorf("Expected error to identify failed collection, got %v", err)
	}

	if !reflect.DeepEqual(checker.checked, []string{"c1", "c2", "c3"}) {
		t.Errorf("Incorrect check order - got %v", checker.checked)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %v", len(results))
	}

	if !results[0].OK() || results[1].OK() || !results[2].OK() {
		t.Errorf("Incorrect results: %+v", results)
	}

	if results[1].ID != "c2" {
		t.Errorf("Incorrect failed result ID - expected c2, got %q", results[1].ID)
	}
}

func TestCheckWithCancelledContext(t *testing.T) {
	checker := stubChecker{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := check(ctx, &checker, []string{"c1", "c2"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected %v, got %v", context.Canceled, err)
	}

	if len(results) != 0 || len(checker.checked) != 0 {
		t.Errorf("Unexpected checks after cancellation: %v", checker.checked)
	}
}

func TestTrackerChecker(t *testing.T) {
	tracker, err := collections.MakeTracker(&sheets.ValueRange{
		Values: [][]any{
			{"Collection ID", "Status"},
			{"c1", "crawling"},
			{"c2", ""},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error creating tracker (%v)", err)
	}

	checker := trackerChecker{tracker: tracker}

	results, err := check(context.Background(), checker, []string{"c1", "c2", "c9"})
	if err == nil {
		t.Fatalf("Expected error for untracked collection")
	}

	expected := []string{"crawling", "-", ""}
	for i, r := range results {
		if r.Status != expected[i] {
			t.Errorf("Incorrect status for %v - expected %q, got %q", r.ID, expected[i], r.Status)
		}
	}

	if results[2].OK() {
		t.Errorf("Expected untracked collection c9 to fail")
	}
}

func TestRenderResults(t *testing.T) {
	results := []Result{
		{ID: "c1", Status: "crawling", Message: "tracked (row 2)"},
		{ID: "c2", Err: fmt.Errorf("collection c2 is not listed in the tracker")},
	}

	table := renderResults(results)

	for _, s := range []string{"c1", "crawling", "tracked (row 2)", "c2", "FAILED (collection c2 is not listed in the tracker)"} {
		if !strings.Contains(table, s) {
			t.Errorf("Missing %q in results table:\n%s", s, table)
		}
	}
}
