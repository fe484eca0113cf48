package listview

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// defaultBulkConcurrency bounds the fan-out so a 50-row select-all does not
// open 50 sockets at once.
const defaultBulkConcurrency = 5

// BulkFunc performs the operation for a single id, e.g. one DELETE call.
type BulkFunc func(ctx context.Context, id string) error

// BulkOutcome tallies a bulk operation. Partial failure is the expected
// shape: callers report counts and refresh the list regardless, so whatever
// did succeed shows up.
type BulkOutcome struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// RunBulk fans ids out as independent concurrent requests and waits for all
// of them to settle. One id failing never cancels the rest.
func RunBulk(ctx context.Context, ids []string, fn BulkFunc) BulkOutcome {
	var (
		mu      sync.Mutex
		outcome BulkOutcome
	)

	g := &errgroup.Group{}
	g.SetLimit(defaultBulkConcurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			err := fn(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				outcome.Failed++
				outcome.Errors = append(outcome.Errors, fmt.Errorf("%s: %w", id, err))
			} else {
				outcome.Succeeded++
			}
			return nil
		})
	}

	g.Wait()
	return outcome
}

// SuccessMessage renders the toast line for the succeeded portion, e.g.
// "Successfully deleted 2 opportunity(ies)". Empty when nothing succeeded.
func (o BulkOutcome) SuccessMessage(pastVerb, noun string) string {
	if o.Succeeded == 0 {
		return ""
	}
	return fmt.Sprintf("Successfully %s %d %s(ies)", pastVerb, o.Succeeded, noun)
}

// FailureMessage renders the toast line for the failed portion, e.g.
// "Failed to delete 1 opportunity(ies)". Empty when nothing failed.
func (o BulkOutcome) FailureMessage(verb, noun string) string {
	if o.Failed == 0 {
		return ""
	}
	return fmt.Sprintf("Failed to %s %d %s(ies)", verb, o.Failed, noun)
}
