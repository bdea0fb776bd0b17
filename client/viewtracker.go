package client

import (
	"context"
	"time"
)

const hoverThreshold = time.Second

// ViewTracker counts one hover view and one click view per component
// lifetime, independently. A hover view needs the pointer to rest for a
// sustained second; a brief pass does not count. The clock is injected so
// the timing rules are testable.
type ViewTracker struct {
	client       *Client
	collectionID uint
	now          func() time.Time

	hoverStartedAt *time.Time
	hoverFired     bool
	clickFired     bool

	// Last authoritative count returned by the service.
	ViewsCount int64
}

func NewViewTracker(c *Client, collectionID uint) *ViewTracker {
	return &ViewTracker{client: c, collectionID: collectionID, now: time.Now}
}

// NewViewTrackerWithClock is NewViewTracker with an injected clock.
func NewViewTrackerWithClock(c *Client, collectionID uint, now func() time.Time) *ViewTracker {
	return &ViewTracker{client: c, collectionID: collectionID, now: now}
}

// HoverStart marks the pointer entering the component.
func (t *ViewTracker) HoverStart() {
	if t.hoverFired {
		return
	}
	at := t.now()
	t.hoverStartedAt = &at
}

// HoverEnd marks the pointer leaving. A hover that already lasted the
// threshold still counts; a shorter one is discarded.
func (t *ViewTracker) HoverEnd(ctx context.Context) error {
	defer func() { t.hoverStartedAt = nil }()
	return t.pollHover(ctx)
}

// Poll fires the hover view once the pointer has rested long enough. The UI
// calls this from its timer tick while the pointer is inside.
func (t *ViewTracker) Poll(ctx context.Context) error {
	return t.pollHover(ctx)
}

func (t *ViewTracker) pollHover(ctx context.Context) error {
	if t.hoverFired || t.hoverStartedAt == nil {
		return nil
	}
	if t.now().Sub(*t.hoverStartedAt) < hoverThreshold {
		return nil
	}

	t.hoverFired = true
	result, err := t.client.TrackView(ctx, t.collectionID, "hover")
	if err != nil {
		return err
	}
	t.ViewsCount = result.ViewsCount
	return nil
}

// Click fires the click view, once per lifetime, regardless of hover state.
func (t *ViewTracker) Click(ctx context.Context) error {
	if t.clickFired {
		return nil
	}
	t.clickFired = true

	result, err := t.client.TrackView(ctx, t.collectionID, "click")
	if err != nil {
		return err
	}
	t.ViewsCount = result.ViewsCount
	return nil
}
