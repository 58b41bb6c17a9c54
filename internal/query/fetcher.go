package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/domain"
)

// Fetch defaults
const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 400 * time.Millisecond
	DefaultMaxPages    = 200
)

// ErrTransportExhausted matches every TransportExhaustedError
var ErrTransportExhausted = errors.New("transport exhausted")

// TransportExhaustedError is returned when every attempt for a single page
// failed. It carries the last underlying error.
type TransportExhaustedError struct {
	Page     int
	Attempts int
	Err      error
}

func (e *TransportExhaustedError) Error() string {
	return fmt.Sprintf("page %d failed after %d attempts: %v", e.Page, e.Attempts, e.Err)
}

func (e *TransportExhaustedError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrTransportExhausted
func (e *TransportExhaustedError) Is(target error) bool {
	return target == ErrTransportExhausted
}

// Page is one page of raw catalog records
type Page struct {
	Records []RawRecord
	// NextPage is nil on the last page
	NextPage *int
}

// PageFetcher retrieves a single page of the catalog. filter is the
// comma-joined canonical filter, empty for no filter.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int, filter string) (*Page, error)
}

// PageFetcherFunc adapts a function to PageFetcher
type PageFetcherFunc func(ctx context.Context, page int, filter string) (*Page, error)

func (f PageFetcherFunc) FetchPage(ctx context.Context, page int, filter string) (*Page, error) {
	return f(ctx, page, filter)
}

// Attempt describes one page request attempt. Err is nil on success.
type Attempt struct {
	Page   int
	Filter string
	Number int
	Err    error
}

// Fetcher walks the catalog pagination, retrying failed pages and dropping
// duplicate records. A Fetcher holds no per-query state and may be reused.
type Fetcher struct {
	source      PageFetcher
	logger      hclog.Logger
	maxAttempts int
	backoff     time.Duration
	maxPages    int
	onAttempt   func(Attempt)
	sleep       func(ctx context.Context, d time.Duration) error
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithMaxAttempts sets how often a single page is tried
func WithMaxAttempts(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithBackoff sets the linear backoff unit, the wait after attempt n is n*d
func WithBackoff(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d >= 0 {
			f.backoff = d
		}
	}
}

// WithMaxPages sets the page ceiling of all-pages mode
func WithMaxPages(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxPages = n
		}
	}
}

// WithAttemptHook registers a callback invoked after every page attempt
func WithAttemptHook(hook func(Attempt)) FetcherOption {
	return func(f *Fetcher) {
		f.onAttempt = hook
	}
}

func NewFetcher(source PageFetcher, logger hclog.Logger, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		source:      source,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
		backoff:     DefaultBackoff,
		maxPages:    DefaultMaxPages,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the unsorted, deduplicated products of the requested page,
// or of every page when page is domain.PageAll. Either all pages succeed or
// an error is returned and nothing else.
func (f *Fetcher) Fetch(ctx context.Context, page int, filter Filter) (domain.Products, error) {
	wire := filter.String()
	seen := make(map[int]struct{})
	products := domain.Products{}

	collect := func(p *Page) {
		for _, rec := range p.Records {
			id, ok := rec.Identity()
			if !ok {
				f.logger.Trace("Skipping record without integer id", "record", rec)
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			prod, _ := NewProduct(rec)
			seen[id] = struct{}{}
			products = append(products, prod)
		}
	}

	if page != domain.PageAll {
		p, err := f.fetchWithRetry(ctx, page, wire)
		if err != nil {
			return nil, err
		}
		collect(p)
	} else {
		next := 1
		requested := 0
		for {
			p, err := f.fetchWithRetry(ctx, next, wire)
			if err != nil {
				return nil, err
			}
			requested++
			collect(p)

			if p.NextPage == nil {
				break
			}
			if requested >= f.maxPages {
				f.logger.Warn("Page ceiling reached, stopping pagination", "max_pages", f.maxPages, "next_page", *p.NextPage)
				break
			}
			next = *p.NextPage
		}
	}

	if filter.Has(TokenAvailable) {
		products = onlyAvailable(products)
	}

	return products, nil
}

func (f *Fetcher) fetchWithRetry(ctx context.Context, page int, filter string) (*Page, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		f.logger.Debug("Requesting page", "page", page, "filter", filter, "attempt", attempt)

		p, err := f.source.FetchPage(ctx, page, filter)
		if err == nil && p == nil {
			err = errors.New("empty page response")
		}
		f.notify(Attempt{Page: page, Filter: filter, Number: attempt, Err: err})
		if err == nil {
			return p, nil
		}
		lastErr = err

		if attempt == f.maxAttempts {
			break
		}

		wait := f.backoff * time.Duration(attempt)
		f.logger.Warn("Page request failed, retrying", "page", page, "attempt", attempt, "backoff", wait, "error", err)
		if err := f.sleep(ctx, wait); err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}
	}

	f.logger.Error("Page request exhausted retries", "page", page, "attempts", f.maxAttempts, "error", lastErr)
	return nil, &TransportExhaustedError{Page: page, Attempts: f.maxAttempts, Err: lastErr}
}

func (f *Fetcher) notify(a Attempt) {
	if f.onAttempt != nil {
		f.onAttempt(a)
	}
}

func onlyAvailable(products domain.Products) domain.Products {
	kept := products[:0]
	for _, p := range products {
		if p.Available {
			kept = append(kept, p)
		}
	}
	return kept
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
