package listview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBulkAllSucceed(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}

	outcome := RunBulk(context.Background(), []string{"a", "b", "c"}, func(_ context.Context, id string) error {
		mu.Lock()
		seen[id] = true
		mu.Unlock()
		return nil
	})

	assert.Equal(t, 3, outcome.Succeeded)
	assert.Equal(t, 0, outcome.Failed)
	assert.Empty(t, outcome.Errors)
	assert.Len(t, seen, 3)
}

func TestRunBulkPartialFailure(t *testing.T) {
	boom := errors.New("500 Internal Server Error")

	outcome := RunBulk(context.Background(), []string{"a", "b", "c"}, func(_ context.Context, id string) error {
		if id == "b" {
			return boom
		}
		return nil
	})

	assert.Equal(t, 2, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Errors, 1)
	assert.ErrorIs(t, outcome.Errors[0], boom)
	assert.Contains(t, outcome.Errors[0].Error(), "b")
}

func TestRunBulkOneFailureDoesNotCancelRest(t *testing.T) {
	var calls atomic.Int32
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	outcome := RunBulk(context.Background(), ids, func(_ context.Context, id string) error {
		calls.Add(1)
		if id == "a" {
			return errors.New("denied")
		}
		return nil
	})

	assert.Equal(t, int32(len(ids)), calls.Load())
	assert.Equal(t, len(ids)-1, outcome.Succeeded)
	assert.Equal(t, 1, outcome.Failed)
}

func TestRunBulkBoundsConcurrency(t *testing.T) {
	var current, peak atomic.Int32
	gate := make(chan struct{})

	done := make(chan BulkOutcome)
	go func() {
		done <- RunBulk(context.Background(), make([]string, 20), func(_ context.Context, _ string) error {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-gate
			current.Add(-1)
			return nil
		})
	}()

	close(gate)
	outcome := <-done

	assert.Equal(t, 20, outcome.Succeeded)
	assert.LessOrEqual(t, peak.Load(), int32(defaultBulkConcurrency))
}

func TestRunBulkEmptyIDs(t *testing.T) {
	outcome := RunBulk(context.Background(), nil, func(_ context.Context, _ string) error {
		t.Fatal("should not be called")
		return nil
	})

	assert.Equal(t, BulkOutcome{}, outcome)
}

func TestBulkMessages(t *testing.T) {
	outcome := BulkOutcome{Succeeded: 2, Failed: 1}

	assert.Equal(t, "Successfully deleted 2 opportunity(ies)", outcome.SuccessMessage("deleted", "opportunity"))
	assert.Equal(t, "Failed to delete 1 opportunity(ies)", outcome.FailureMessage("delete", "opportunity"))

	clean := BulkOutcome{Succeeded: 3}
	assert.Equal(t, "Successfully deleted 3 lead(ies)", clean.SuccessMessage("deleted", "lead"))
	assert.Empty(t, clean.FailureMessage("delete", "lead"))

	allFailed := BulkOutcome{Failed: 2}
	assert.Empty(t, allFailed.SuccessMessage("deleted", "lead"))
	assert.Equal(t, "Failed to delete 2 lead(ies)", allFailed.FailureMessage("delete", "lead"))
}
