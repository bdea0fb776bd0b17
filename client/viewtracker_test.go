package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// viewCounter records every view POST by interaction kind.
type viewCounter struct {
	mu     sync.Mutex
	byKind map[string]int
}

func newViewServer(t *testing.T) (*httptest.Server, *viewCounter) {
	t.Helper()
	counter := &viewCounter{byKind: map[string]int{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Interaction string `json:"interaction"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		counter.mu.Lock()
		counter.byKind[body.Interaction]++
		total := 0
		for _, n := range counter.byKind {
			total += n
		}
		counter.mu.Unlock()
		json.NewEncoder(w).Encode(ViewResult{ViewsCount: int64(total)})
	}))
	return server, counter
}

func (c *viewCounter) count(kind string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.byKind[kind]
}

func TestHoverViewFiresAfterSustainedSecond(t *testing.T) {
	server, counter := newViewServer(t)
	defer server.Close()

	now := time.Now()
	clock := func() time.Time { return now }

	tracker := NewViewTrackerWithClock(NewWithHTTPClient(server.URL, server.Client()), 1, clock)

	tracker.HoverStart()
	now = now.Add(1200 * time.Millisecond)
	if err := tracker.Poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if got := counter.count("hover"); got != 1 {
		t.Fatalf("hover views = %d, want 1", got)
	}
	if tracker.ViewsCount != 1 {
		t.Fatalf("tracker count = %d, want 1", tracker.ViewsCount)
	}

	// Once per lifetime: further hovering changes nothing.
	tracker.Poll(context.Background())
	tracker.HoverStart()
	now = now.Add(5 * time.Second)
	tracker.Poll(context.Background())
	tracker.HoverEnd(context.Background())
	if got := counter.count("hover"); got != 1 {
		t.Fatalf("hover views after re-hover = %d, want 1", got)
	}
}

func TestShortHoverDoesNotFire(t *testing.T) {
	server, counter := newViewServer(t)
	defer server.Close()

	now := time.Now()
	clock := func() time.Time { return now }
	tracker := NewViewTrackerWithClock(NewWithHTTPClient(server.URL, server.Client()), 1, clock)

	tracker.HoverStart()
	now = now.Add(400 * time.Millisecond)
	if err := tracker.HoverEnd(context.Background()); err != nil {
		t.Fatalf("hover end: %v", err)
	}

	// The abandoned hover must not fire later either.
	now = now.Add(10 * time.Second)
	tracker.Poll(context.Background())

	if got := counter.count("hover"); got != 0 {
		t.Fatalf("hover views = %d, want 0", got)
	}
}

func TestLongHoverStillCountsOnLeave(t *testing.T) {
	server, counter := newViewServer(t)
	defer server.Close()

	now := time.Now()
	clock := func() time.Time { return now }
	tracker := NewViewTrackerWithClock(NewWithHTTPClient(server.URL, server.Client()), 1, clock)

	// No timer tick happened, only the leave event; the sustained hover
	// still counts.
	tracker.HoverStart()
	now = now.Add(1500 * time.Millisecond)
	if err := tracker.HoverEnd(context.Background()); err != nil {
		t.Fatalf("hover end: %v", err)
	}
	if got := counter.count("hover"); got != 1 {
		t.Fatalf("hover views = %d, want 1", got)
	}
}

func TestClickViewIndependentOfHover(t *testing.T) {
	server, counter := newViewServer(t)
	defer server.Close()

	now := time.Now()
	clock := func() time.Time { return now }
	tracker := NewViewTrackerWithClock(NewWithHTTPClient(server.URL, server.Client()), 1, clock)

	// Click before any hover completes.
	tracker.HoverStart()
	now = now.Add(200 * time.Millisecond)
	if err := tracker.Click(context.Background()); err != nil {
		t.Fatalf("click: %v", err)
	}
	tracker.Click(context.Background())

	if got := counter.count("click"); got != 1 {
		t.Fatalf("click views = %d, want 1", got)
	}

	// The hover tracker is unaffected and still fires on its own terms.
	now = now.Add(time.Second)
	tracker.Poll(context.Background())
	if got := counter.count("hover"); got != 1 {
		t.Fatalf("hover views = %d, want 1", got)
	}
}
