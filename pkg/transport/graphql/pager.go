package graphql

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/saturnines/shopify-gql/pkg/errors"
)

// ErrPagerDone is returned by Next once the last page has been fetched.
var ErrPagerDone = stderrors.New("no more pages")

// Pager drives cursor paging over a connection's pageInfo, e.g.
// products(first: 50, after: $cursor) { pageInfo { hasNextPage endCursor } }.
type Pager struct {
	// Immutable configuration
	client      *Client
	query       string
	variables   map[string]interface{}
	cursorKey   string
	nextPath    []string
	hasNextPath []string

	// Mutable state (protected by mutex)
	mu      sync.RWMutex
	cursor  string
	hasNext bool
	first   bool
}

// NewPager returns a Pager. Paths are relative to the response's data
// object. No request is made until Next is called.
func NewPager(
	client *Client,
	query string,
	variables map[string]interface{},
	cursorKey string,
	nextPath, hasNextPath []string,
) (*Pager, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if cursorKey == "" {
		return nil, fmt.Errorf("cursorKey cannot be empty")
	}
	if len(nextPath) == 0 {
		return nil, fmt.Errorf("nextPath cannot be empty")
	}
	if len(hasNextPath) == 0 {
		return nil, fmt.Errorf("hasNextPath cannot be empty")
	}

	vars := make(map[string]interface{}, len(variables))
	for k, v := range variables {
		vars[k] = v
	}

	return &Pager{
		client:      client,
		query:       query,
		variables:   vars,
		cursorKey:   cursorKey,
		nextPath:    nextPath,
		hasNextPath: hasNextPath,
		hasNext:     true,
		first:       true,
	}, nil
}

// Next fetches the following page. A page whose Result has Errors set, or
// that claims more pages without a new cursor, is returned together with an
// ErrPagination error and ends paging.
func (p *Pager) Next(ctx context.Context) (*Result, error) {
	p.mu.RLock()
	done := !p.first && !p.hasNext
	cursor := p.cursor
	p.mu.RUnlock()

	if done {
		return nil, ErrPagerDone
	}

	vars := make(map[string]interface{}, len(p.variables)+1)
	for k, v := range p.variables {
		vars[k] = v
	}
	if cursor != "" {
		vars[p.cursorKey] = cursor
	}

	res := p.client.Request(ctx, p.query, vars)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.first = false

	if res.Errors {
		p.hasNext = false
		return res, errors.WrapError(
			fmt.Errorf("page request failed (status %d)", res.Status),
			errors.ErrPagination,
			"fetch page",
		)
	}

	var data map[string]interface{}
	if err := res.Body.Decode(&data); err != nil {
		p.hasNext = false
		return res, errors.WrapError(err, errors.ErrPagination, "read pageInfo")
	}

	// If we can't determine hasNext, assume no more pages
	b, ok := traverse(data, p.hasNextPath...).(bool)
	p.hasNext = ok && b

	next, _ := traverse(data, p.nextPath...).(string)
	if p.hasNext && (next == "" || next == cursor) {
		p.hasNext = false
		return res, errors.WrapError(
			fmt.Errorf("hasNextPage is set but the cursor did not advance"),
			errors.ErrPagination,
			"read pageInfo",
		)
	}
	if next != "" {
		p.cursor = next
	}

	return res, nil
}

// HasMore returns whether more pages are available (thread-safe).
func (p *Pager) HasMore() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.first || p.hasNext
}

// Reset resets pagination to start from the beginning.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.hasNext = true
	p.first = true
	p.cursor = ""
}

// traverse digs into nested maps via a path of keys.
func traverse(m map[string]interface{}, path ...string) interface{} {
	cur := interface{}(m)
	for _, key := range path {
		if mp, ok := cur.(map[string]interface{}); ok {
			cur = mp[key]
		} else {
			return nil
		}
	}
	return cur
}
