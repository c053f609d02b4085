package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"google.golang.org/api/sheets/v4"

	"github.com/warctools/warc-tracker-sheets/collections"
)

const (
	flagCollectionID  = "collection-id"
	flagCollectionIDs = "collection-ids"
)

type Check struct {
	command

	collectionID     string
	collectionIDs    string
	collectionIDSet  bool
	collectionIDsSet bool

	area         string
	logRange     string
	logRetention int
	nolog        bool
	dryrun       bool
}

func newCheckCommand(options *Options) *cobra.Command {
	c := Check{
		logRetention: -1,
	}

	cmd := &cobra.Command{
		Use:   "check (--collection-id <id> | --collection-ids <ids>)",
		Short: "Runs the WARC tracker check for one or more collections",
		Long: `Runs the WARC tracker check for a single collection or for a comma separated list of collections.

If a tracker spreadsheet is configured (--url or the configuration file) each collection is looked up in the
tracker worksheet and the results are appended to the log worksheet.`,
		Example: `  warc-tracker-sheets check --collection-id ARCHIVEIT-1001
  warc-tracker-sheets check --collection-ids "ARCHIVEIT-1001, ARCHIVEIT-1002"
  warc-tracker-sheets --debug check --url "` + EXAMPLE_URL + `" --range "Tracker!A1:C" --collection-ids ARCHIVEIT-1001,ARCHIVEIT-1002`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.collectionIDSet = cmd.Flags().Changed(flagCollectionID)
			c.collectionIDsSet = cmd.Flags().Changed(flagCollectionIDs)

			return c.Execute(cmd.Context(), options)
		},
	}

	c.command.flags(cmd)

	flags := cmd.Flags()

	flags.StringVar(&c.collectionID, flagCollectionID, "", "Single collection ID to process")
	flags.StringVar(&c.collectionIDs, flagCollectionIDs, "", "Comma separated list of collection IDs to process")
	flags.StringVar(&c.area, "range", "", "Tracker worksheet range e.g. 'Tracker!A1:C'")
	flags.StringVar(&c.logRange, "log-range", "", "Spreadsheet range for the check log e.g. 'Log!A1:F'")
	flags.IntVar(&c.logRetention, "log-retention", c.logRetention, "Log sheet records older than 'log-retention' days are automatically pruned")
	flags.BoolVar(&c.nolog, "no-log", false, "Disables writing the check results to the log worksheet")
	flags.BoolVar(&c.dryrun, "dryrun", false, "Checks the collections without updating the spreadsheet")

	return cmd
}

func (c *Check) Execute(ctx context.Context, options *Options) error {
	selection, ids, err := c.identifiers()
	if err != nil {
		return err
	}

	c.defaults(options)

	debugf("collection selection:%v  identifiers:%q", selection.Kind, ids)

	out := options.stdout()

	if selection.Kind == collections.KindSingle {
		fmt.Fprintf(out, "Processing single collection: %s\n", ids[0])
	} else {
		fmt.Fprintf(out, "Processing multiple collections: %s\n", strings.Join(ids, ", "))
	}

	var checker Checker = printChecker{out: out}
	var google *sheets.Service
	var spreadsheet string

	if c.url != "" {
		if err := c.validate(); err != nil {
			return err
		}

		if google, spreadsheet, err = c.connect(ctx, options); err != nil {
			return err
		}

		debugf("Spreadsheet - ID:%s  range:%s  log:%s", spreadsheet, c.area, c.logRange)

		response, err := getValues(ctx, google, spreadsheet, c.area)
		if err != nil {
			return err
		}

		tracker, err := collections.MakeTracker(response)
		if err != nil {
			return fmt.Errorf("error reading tracker worksheet %v (%w)", c.area, err)
		}

		infof("Retrieved %v collections from tracker worksheet", len(tracker.Entries))

		checker = trackerChecker{tracker: tracker}
	}

	results, err := check(ctx, checker, ids)

	fmt.Fprintln(out, renderResults(results))

	if google != nil && !c.nolog && !c.dryrun {
		runID := uuid.NewString()

		if logerr := updateLogSheet(ctx, google, spreadsheet, c.logRange, results, runID); logerr != nil {
			return errors.Join(err, logerr)
		}

		if err := pruneLogSheet(ctx, google, spreadsheet, c.logRange, c.logRetention); err != nil {
			warnf("%v", err)
		}
	}

	return err
}

// identifiers resolves the --collection-id and --collection-ids options to the list of
// collection IDs to check.
func (c *Check) identifiers() (collections.Selection, []string, error) {
	selection, err := collections.Select(c.collectionID, c.collectionIDs, c.collectionIDSet, c.collectionIDsSet)
	if errors.Is(err, collections.ErrConflictingSelection) {
		return selection, nil, &UsageError{Err: fmt.Errorf("%w: --%s is not allowed with --%s", err, flagCollectionIDs, flagCollectionID)}
	} else if err != nil {
		return selection, nil, &UsageError{Err: fmt.Errorf("%w: one of --%s or --%s is required", err, flagCollectionID, flagCollectionIDs)}
	}

	ids, err := selection.Identifiers()
	if err != nil {
		flag := flagCollectionIDs
		if selection.Kind == collections.KindSingle {
			flag = flagCollectionID
		}

		return selection, nil, &UsageError{Flag: flag, Value: selection.Value, Err: err}
	}

	return selection, ids, nil
}

func (c *Check) defaults(options *Options) {
	c.command.defaults(options)

	if conf := options.Config; conf != nil {
		if strings.TrimSpace(c.area) == "" {
			c.area = conf.Tracker.Range
		}

		if strings.TrimSpace(c.logRange) == "" {
			c.logRange = conf.Tracker.LogRange
		}

		if c.logRetention < 0 {
			c.logRetention = conf.Tracker.LogRetention
		}
	}
}

func (c *Check) validate() error {
	if err := c.command.validate(); err != nil {
		return err
	}

	if _, err := parseRange(c.area); err != nil {
		return &UsageError{Flag: "range", Value: c.area, Err: err}
	}

	if !c.nolog {
		if _, err := parseRange(c.logRange); err != nil {
			return &UsageError{Flag: "log-range", Value: c.logRange, Err: err}
		}
	}

	return nil
}

// check invokes the checker for each collection in order. A failed check does not stop the
// remaining checks - the failures are returned as a single joined error.
func check(ctx context.Context, checker Checker, ids []string) ([]Result, error) {
	results := []Result{}
	errs := []error{}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := checker.Check(ctx, id)
		if err != nil {
			errorf("%v  %v", id, err)

			result.ID = id
			result.Err = err
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		} else {
			infof("%v  %v", id, result.Message)
		}

		results = append(results, result)
	}

	return results, errors.Join(errs...)
}

func renderResults(results []Result) string {
	rows := [][]string{}
	for _, r := range results {
		if r.OK() {
			rows = append(rows, []string{r.ID, r.Status, r.Message})
		} else {
			rows = append(rows, []string{r.ID, r.Status, fmt.Sprintf("FAILED (%v)", r.Err)})
		}
	}

	return renderTable([]string{"Collection ID", "Status", "Result"}, rows)
}
