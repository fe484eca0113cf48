package listview

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultDebounce is how long free-text search input must go quiet before a
// fetch is issued. Filter, sort and page changes fetch immediately.
const DefaultDebounce = 500 * time.Millisecond

// Fetcher loads one page of records for a query.
type Fetcher interface {
	FetchPage(ctx context.Context, q ListQuery) (ListResult, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, q ListQuery) (ListResult, error)

func (f FetcherFunc) FetchPage(ctx context.Context, q ListQuery) (ListResult, error) {
	return f(ctx, q)
}

// ControllerConfig configures a list controller.
type ControllerConfig struct {
	Fetcher  Fetcher
	Debounce time.Duration // 0 means DefaultDebounce
	Initial  *ListQuery    // optional seed, e.g. QueryFromURLValues
	PageSize int           // used when Initial is nil

	// OnResult receives every accepted page, including the empty-safe
	// result delivered after a failed fetch. Called outside the
	// controller's lock.
	OnResult func(ListResult)
	// OnError observes fetch failures. The controller has already degraded
	// state by the time this runs; it exists for toasts and logging.
	OnError func(error)
}

// Controller drives a list view: it owns the ListQuery, debounces search
// input, issues at most one fetch per logical change, and discards
// responses that lost the race to a newer request. All methods are safe for
// concurrent use.
type Controller struct {
	mu       sync.Mutex
	cfg      ControllerConfig
	query    ListQuery
	timer    *time.Timer
	seq      uint64 // id of the newest issued request
	started  bool
	loading  bool
	last     ListResult
	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

// NewController builds a controller; nothing is fetched until Start.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	query := NewListQuery(cfg.PageSize)
	if cfg.Initial != nil {
		query = cfg.Initial.clone()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		cfg:    cfg,
		query:  query,
		last:   EmptyResult(query),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start issues the initial fetch for the current query. Mutations made
// before Start only adjust state - they never fetch - so the mount performs
// exactly one request for the default query.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.fire()
}

// Close cancels in-flight requests and stops any pending debounce timer.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.cancel()
	c.inflight.Wait()
}

// SetSearchTerm updates the search text. The fetch is debounced so a burst
// of keystrokes issues a single request carrying the final value.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.query.SetSearchTerm(term)
	debounce := c.cfg.Debounce
	c.mu.Unlock()
	c.schedule(debounce)
}

// SetFilter applies a filter change immediately.
func (c *Controller) SetFilter(name, value string) {
	c.mu.Lock()
	c.query.SetFilter(name, value)
	c.mu.Unlock()
	c.schedule(0)
}

// SetSort applies a sort change immediately.
func (c *Controller) SetSort(by string, order SortOrder) {
	c.mu.Lock()
	c.query.SetSort(by, order)
	c.mu.Unlock()
	c.schedule(0)
}

// SetPage navigates immediately.
func (c *Controller) SetPage(n int) {
	c.mu.Lock()
	c.query.SetPage(n)
	c.mu.Unlock()
	c.schedule(0)
}

// Refresh refetches the current query, e.g. after a bulk operation.
func (c *Controller) Refresh() {
	c.schedule(0)
}

// Query returns a copy of the current query state.
func (c *Controller) Query() ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.clone()
}

// Result returns the last accepted page (empty-safe before the first
// response arrives).
func (c *Controller) Result() ListResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Loading reports whether a request is outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// schedule arms (or re-arms) the fetch timer. A zero delay still goes
// through the timer path so an immediate change collapses any pending
// debounced search fetch into itself.
func (c *Controller) schedule(delay time.Duration) {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(delay, c.fire)
	c.mu.Unlock()
}

// fire snapshots the query, tags the request with the next sequence number
// and fetches in the background.
func (c *Controller) fire() {
	c.mu.Lock()
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	query := c.query.clone()
	c.loading = true
	c.inflight.Add(1)
	c.mu.Unlock()

	go c.fetch(seq, query)
}

func (c *Controller) fetch(seq uint64, query ListQuery) {
	defer c.inflight.Done()

	result, err := c.cfg.Fetcher.FetchPage(c.ctx, query)
	if err != nil {
		log.Printf("[listview] ERROR fetch failed page=%d q=%q err=%v", query.Page, query.SearchTerm, err)
		result = EmptyResult(query)
	}

	c.mu.Lock()
	if seq != c.seq {
		// A newer request superseded this one; its response wins.
		log.Printf("[listview] discard stale response seq=%d latest=%d", seq, c.seq)
		c.mu.Unlock()
		return
	}
	c.loading = false
	c.last = result
	onResult := c.cfg.OnResult
	onError := c.cfg.OnError
	c.mu.Unlock()

	if err != nil && onError != nil {
		onError(err)
	}
	if onResult != nil {
		onResult(result)
	}
}
