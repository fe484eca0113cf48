package listview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFetcher counts calls and remembers the queries it saw.
type recordingFetcher struct {
	mu      sync.Mutex
	queries []ListQuery
	results chan ListResult
}

func newRecordingFetcher() *recordingFetcher {
	return &recordingFetcher{results: make(chan ListResult, 16)}
}

func (f *recordingFetcher) FetchPage(_ context.Context, q ListQuery) (ListResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()

	result := EmptyResult(q)
	result.Items = []json.RawMessage{json.RawMessage(fmt.Sprintf(`{"q":%q}`, q.SearchTerm))}
	f.results <- result
	return result, nil
}

func (f *recordingFetcher) calls() []ListQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ListQuery, len(f.queries))
	copy(out, f.queries)
	return out
}

func waitForResults(t *testing.T, ch <-chan ListResult, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for result %d of %d", i+1, n)
		}
	}
}

func TestStartFetchesExactlyOnce(t *testing.T) {
	fetcher := newRecordingFetcher()
	c := NewController(ControllerConfig{Fetcher: fetcher, Debounce: 10 * time.Millisecond})
	defer c.Close()

	c.Start()
	c.Start() // second Start is a no-op

	waitForResults(t, fetcher.results, 1)
	time.Sleep(50 * time.Millisecond)

	calls := fetcher.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Page)
}

func TestMutationsBeforeStartDoNotFetch(t *testing.T) {
	fetcher := newRecordingFetcher()
	c := NewController(ControllerConfig{Fetcher: fetcher, Debounce: 5 * time.Millisecond})
	defer c.Close()

	c.SetSearchTerm("acme")
	c.SetFilter("status", "NEW")
	c.SetPage(3)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, fetcher.calls())

	c.Start()
	waitForResults(t, fetcher.results, 1)

	// The single mount fetch carries the pre-mount state.
	calls := fetcher.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "acme", calls[0].SearchTerm)
	assert.Equal(t, "NEW", calls[0].Filters["status"])
	assert.Equal(t, 3, calls[0].Page)
}

func TestSearchBurstCollapsesToOneFetch(t *testing.T) {
	fetcher := newRecordingFetcher()
	c := NewController(ControllerConfig{Fetcher: fetcher, Debounce: 60 * time.Millisecond})
	defer c.Close()

	c.Start()
	waitForResults(t, fetcher.results, 1)

	for _, term := range []string{"a", "ac", "acm", "acme"} {
		c.SetSearchTerm(term)
		time.Sleep(5 * time.Millisecond)
	}

	waitForResults(t, fetcher.results, 1)
	time.Sleep(150 * time.Millisecond)

	calls := fetcher.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "acme", calls[1].SearchTerm)
	assert.Equal(t, 1, calls[1].Page)
}

func TestFilterChangeFetchesImmediately(t *testing.T) {
	fetcher := newRecordingFetcher()
	c := NewController(ControllerConfig{Fetcher: fetcher, Debounce: time.Hour})
	defer c.Close()

	c.Start()
	waitForResults(t, fetcher.results, 1)

	c.SetFilter("status", "QUALIFIED")
	waitForResults(t, fetcher.results, 1)

	calls := fetcher.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "QUALIFIED", calls[1].Filters["status"])
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	first := make(chan struct{})
	var mu sync.Mutex
	var delivered []string

	fetcher := FetcherFunc(func(_ context.Context, q ListQuery) (ListResult, error) {
		if q.SearchTerm == "" {
			// The mount fetch stalls until the page-2 response has landed.
			<-first
		}
		result := EmptyResult(q)
		result.Items = []json.RawMessage{json.RawMessage(fmt.Sprintf(`%q`, q.SearchTerm))}
		return result, nil
	})

	c := NewController(ControllerConfig{
		Fetcher:  fetcher,
		Debounce: 5 * time.Millisecond,
		OnResult: func(r ListResult) {
			mu.Lock()
			delivered = append(delivered, string(r.Items[0]))
			mu.Unlock()
		},
	})

	c.Start()
	time.Sleep(20 * time.Millisecond)
	c.SetSearchTerm("fresh")
	time.Sleep(100 * time.Millisecond)
	close(first)
	c.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, delivered, 1)
	assert.Equal(t, `"fresh"`, delivered[0])

	// The accepted response stays in place even though the slow one
	// finished last.
	got := c.Result()
	require.Len(t, got.Items, 1)
	assert.Equal(t, `"fresh"`, string(got.Items[0]))
}

func TestFetchErrorDegradesToEmptyResult(t *testing.T) {
	boom := errors.New("connection refused")
	fetcher := FetcherFunc(func(_ context.Context, q ListQuery) (ListResult, error) {
		return ListResult{}, boom
	})

	errs := make(chan error, 1)
	results := make(chan ListResult, 1)
	c := NewController(ControllerConfig{
		Fetcher:  fetcher,
		OnError:  func(err error) { errs <- err },
		OnResult: func(r ListResult) { results <- r },
	})
	defer c.Close()

	c.Start()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error callback")
	}

	select {
	case r := <-results:
		require.NotNil(t, r.Items)
		assert.Empty(t, r.Items)
		assert.Equal(t, 1, r.Pagination.TotalPages)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for degraded result")
	}

	assert.False(t, c.Loading())
}

func TestCloseStopsPendingDebounce(t *testing.T) {
	fetcher := newRecordingFetcher()
	c := NewController(ControllerConfig{Fetcher: fetcher, Debounce: 50 * time.Millisecond})

	c.Start()
	waitForResults(t, fetcher.results, 1)

	c.SetSearchTerm("never sent")
	c.Close()
	time.Sleep(150 * time.Millisecond)

	assert.Len(t, fetcher.calls(), 1)
}

func TestInitialQuerySeedsFromURL(t *testing.T) {
	fetcher := newRecordingFetcher()
	seed := NewListQuery(25)
	seed.SetFilter("status", "CONVERTED_TO_OPPORTUNITY")

	c := NewController(ControllerConfig{Fetcher: fetcher, Initial: &seed})
	defer c.Close()

	c.Start()
	waitForResults(t, fetcher.results, 1)

	calls := fetcher.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "CONVERTED_TO_OPPORTUNITY", calls[0].Filters["status"])
	assert.Equal(t, 25, calls[0].PageSize)
}
