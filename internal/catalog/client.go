// Package catalog implements the page fetch capability against the REST
// product catalog:
//
//	GET <url>?page=<n>&limit=<size>[&filter=<tokens>]
//
// which answers with
//
//	{"products": [...], "pagination": {"next_page": <n>|null}}
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/productquery/internal/query"
)

// DefaultPageSize is the limit sent with every page request
const DefaultPageSize = 10

// StatusError is returned for non-2xx catalog responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog responded with status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
	log      hclog.Logger
}

// NewClient creates a catalog client for the products endpoint at baseURL
func NewClient(baseURL string, pageSize int, timeout time.Duration, log hclog.Logger) *Client {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Client{
		baseURL:  baseURL,
		pageSize: pageSize,
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

type pageEnvelope struct {
	Products   []any `json:"products"`
	Pagination struct {
		NextPage any `json:"next_page"`
	} `json:"pagination"`
}

// FetchPage implements query.PageFetcher
func (c *Client) FetchPage(ctx context.Context, page int, filter string) (*query.Page, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog url: %w", err)
	}
	params := u.Query()
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(c.pageSize))
	if filter != "" {
		params.Set("filter", filter)
	}
	u.RawQuery = params.Encode()

	c.log.Debug("Sending catalog request", "url", u.Redacted(), "page", page, "limit", c.pageSize, "filter", filter)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting catalog page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var env pageEnvelope
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding catalog page %d: %w", page, err)
	}

	records := make([]query.RawRecord, 0, len(env.Products))
	for _, item := range env.Products {
		obj, ok := item.(map[string]any)
		if !ok {
			c.log.Trace("Skipping non-object product entry", "page", page)
			continue
		}
		records = append(records, query.RawRecord(obj))
	}

	return &query.Page{
		Records:  records,
		NextPage: c.nextPage(page, env.Pagination.NextPage),
	}, nil
}

// nextPage coerces the pagination token. Anything that is not a positive
// integer, or a string holding one, ends the pagination.
func (c *Client) nextPage(page int, token any) *int {
	if token == nil {
		return nil
	}

	var (
		n   int64
		err error
	)
	switch v := token.(type) {
	case json.Number:
		n, err = v.Int64()
	case string:
		n, err = strconv.ParseInt(strings.TrimSpace(v), 10, 0)
	default:
		err = fmt.Errorf("unexpected type %T", token)
	}

	if err != nil || n <= 0 {
		c.log.Warn("Malformed next_page token, stopping pagination", "page", page, "next_page", token)
		return nil
	}

	next := int(n)
	return &next
}
