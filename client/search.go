package client

import (
	"context"
	"sync"
	"time"
)

const searchDebounce = 300 * time.Millisecond

// Searcher debounces search-as-you-type and guards against the stale-response
// race: every fetch carries a monotonically increasing generation, and a
// response is dropped unless its generation is newer than the last one
// delivered. Timer cancellation alone cannot close that race; the guard can.
type Searcher struct {
	fetch func(ctx context.Context, query string) (*PhotoPage, error)

	mu        sync.Mutex
	timer     *time.Timer
	issued    uint64
	delivered uint64

	Results *PhotoPage

	// OnResults, when set, runs with the mutex held each time a fresh
	// page is accepted.
	OnResults func(page *PhotoPage)

	debounce time.Duration
}

// NewSearcher wraps a fetch function, typically a closure over
// Client.ListUserPhotos.
func NewSearcher(fetch func(ctx context.Context, query string) (*PhotoPage, error)) *Searcher {
	return &Searcher{fetch: fetch, debounce: searchDebounce}
}

// Query schedules a search after the debounce interval, resetting the timer
// on every keystroke. The fetch runs on its own goroutine once the interval
// passes with no further input.
func (s *Searcher) Query(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.Search(ctx, query)
	})
}

// Search fetches immediately, bypassing the debounce but not the generation
// guard. Returns the page when it was accepted, nil when it arrived stale.
func (s *Searcher) Search(ctx context.Context, query string) (*PhotoPage, error) {
	gen := s.begin()

	page, err := s.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	if !s.deliver(gen, page) {
		return nil, nil
	}
	return page, nil
}

func (s *Searcher) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// deliver accepts a page only if no newer request has already delivered.
func (s *Searcher) deliver(gen uint64, page *PhotoPage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.delivered {
		return false
	}
	s.delivered = gen
	s.Results = page
	if s.OnResults != nil {
		s.OnResults(page)
	}
	return true
}

// Stop cancels any pending debounced fetch.
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
