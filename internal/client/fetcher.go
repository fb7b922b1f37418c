package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"sync"

	"packbill-backoffice/internal/client/notify"
)

// Envelope is one page of a list response with pagination metadata
type Envelope[T any] struct {
	Count       int64 `json:"count"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	PageSize    int   `json:"page_size"`
	Results     []T   `json:"results"`
}

// Pager fetches pages of a list endpoint. Some endpoints return a bare
// array instead of the envelope; the pager normalizes both into the
// same shape. A failed fetch keeps the previous page visible and
// reports through the bus.
type Pager[T any] struct {
	client *Client
	bus    *notify.Bus
	path   string

	mu       sync.Mutex
	page     int
	pageSize int
	filters  url.Values

	results     []T
	count       int64
	totalPages  int
	hasNext     bool
	hasPrevious bool
	lastErr     error
}

// NewPager creates a pager for the list endpoint at path. bus may be
// nil when no notification surface exists.
func NewPager[T any](client *Client, path string, bus *notify.Bus) *Pager[T] {
	return &Pager[T]{
		client:   client,
		bus:      bus,
		path:     path,
		page:     1,
		pageSize: 10,
		filters:  url.Values{},
	}
}

// Fetch loads the current page. On error the previous results are kept.
func (p *Pager[T]) Fetch(ctx context.Context) error {
	p.mu.Lock()
	query := url.Values{}
	for key, values := range p.filters {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("page", strconv.Itoa(p.page))
	query.Set("page_size", strconv.Itoa(p.pageSize))
	pageSize := p.pageSize
	p.mu.Unlock()

	var raw json.RawMessage
	if err := p.client.Get(ctx, p.path, query, &raw); err != nil {
		p.mu.Lock()
		p.lastErr = err
		p.mu.Unlock()
		if p.bus != nil {
			p.bus.Error("Failed to refresh data: " + err.Error())
		}
		return err
	}

	envelope, err := decodePage[T](raw, pageSize)
	if err != nil {
		p.mu.Lock()
		p.lastErr = err
		p.mu.Unlock()
		if p.bus != nil {
			p.bus.Error("Failed to decode response")
		}
		return err
	}

	p.mu.Lock()
	p.results = envelope.Results
	p.count = envelope.Count
	p.totalPages = envelope.TotalPages
	p.hasNext = envelope.HasNext
	p.hasPrevious = envelope.HasPrevious
	p.lastErr = nil
	p.mu.Unlock()

	return nil
}

// decodePage decodes either an envelope or a bare array. A bare array
// is synthesized into a single-page envelope.
func decodePage[T any](raw json.RawMessage, pageSize int) (*Envelope[T], error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var results []T
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, err
		}

		totalPages := len(results) / pageSize
		if len(results)%pageSize > 0 || totalPages == 0 {
			totalPages++
		}

		return &Envelope[T]{
			Count:       int64(len(results)),
			CurrentPage: 1,
			TotalPages:  totalPages,
			HasNext:     false,
			HasPrevious: false,
			PageSize:    pageSize,
			Results:     results,
		}, nil
	}

	var envelope Envelope[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

// SetPage moves to a page and fetches it
func (p *Pager[T]) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	p.mu.Lock()
	p.page = page
	p.mu.Unlock()
	return p.Fetch(ctx)
}

// SetPageSize changes the page size, resets to page 1 and fetches
func (p *Pager[T]) SetPageSize(ctx context.Context, pageSize int) error {
	if pageSize < 1 {
		pageSize = 10
	}
	p.mu.Lock()
	p.pageSize = pageSize
	p.page = 1
	p.mu.Unlock()
	return p.Fetch(ctx)
}

// SetFilter sets a filter parameter and fetches. An empty value clears
// the filter.
func (p *Pager[T]) SetFilter(ctx context.Context, key, value string) error {
	p.mu.Lock()
	if value == "" {
		p.filters.Del(key)
	} else {
		p.filters.Set(key, value)
	}
	p.mu.Unlock()
	return p.Fetch(ctx)
}

// Results returns the current page's results
func (p *Pager[T]) Results() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// Page returns the current page number
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// PageSize returns the current page size
func (p *Pager[T]) PageSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageSize
}

// Count returns the total record count of the last fetch
func (p *Pager[T]) Count() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// TotalPages returns the total page count of the last fetch
func (p *Pager[T]) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages
}

// HasNext reports whether a next page exists
func (p *Pager[T]) HasNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasNext
}

// HasPrevious reports whether a previous page exists
func (p *Pager[T]) HasPrevious() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasPrevious
}

// Err returns the error of the last fetch, nil after a success
func (p *Pager[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
