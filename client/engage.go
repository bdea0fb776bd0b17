package client

import (
	"context"
	"sync"
)

// LikeButton mirrors the service's like state for one collection. Rapid
// toggling can complete out of order; whichever response lands last is
// accepted as authoritative, with a sequence number recorded per request so
// the behavior is observable.
type LikeButton struct {
	client       *Client
	collectionID uint

	mu      sync.Mutex
	nextSeq uint64
	lastSeq uint64

	Liked      bool
	LikesCount int64
}

func NewLikeButton(c *Client, collectionID uint) *LikeButton {
	return &LikeButton{client: c, collectionID: collectionID}
}

// Load seeds the button from the service.
func (b *LikeButton) Load(ctx context.Context) error {
	status, err := b.client.GetLikeStatus(ctx, b.collectionID)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.Liked = status.Liked
	b.LikesCount = status.LikesCount
	b.mu.Unlock()
	return nil
}

// Toggle issues one like/unlike round trip and applies whatever came back.
func (b *LikeButton) Toggle(ctx context.Context) error {
	seq := b.begin()
	result, err := b.client.ToggleLike(ctx, b.collectionID)
	if err != nil {
		return err
	}
	b.apply(seq, result)
	return nil
}

func (b *LikeButton) begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextSeq++
	return b.nextSeq
}

// apply installs a response. Last to land wins regardless of issue order;
// lastSeq records which request's answer is currently displayed.
func (b *LikeButton) apply(seq uint64, result *LikeResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastSeq = seq
	b.Liked = result.Liked
	b.LikesCount = result.LikesCount
}

// AppliedSeq reports which request's response is currently displayed.
func (b *LikeButton) AppliedSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastSeq
}

// CommentFeed holds the in-memory comment list for one collection with
// optimistic appends: a new comment is shown immediately and rolled back to
// the pre-mutation snapshot if the service rejects it.
type CommentFeed struct {
	client       *Client
	collectionID uint

	mu       sync.Mutex
	Comments []Comment
	Total    int64
}

func NewCommentFeed(c *Client, collectionID uint) *CommentFeed {
	return &CommentFeed{client: c, collectionID: collectionID}
}

func (f *CommentFeed) Load(ctx context.Context, limit, offset int) error {
	page, err := f.client.GetComments(ctx, f.collectionID, limit, offset)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.Comments = page.Comments
	f.Total = page.Total
	f.mu.Unlock()
	return nil
}

// Add prepends the comment optimistically, then reconciles with the service.
// On failure the snapshot taken before the mutation is restored, so no stale
// optimistic state survives.
func (f *CommentFeed) Add(ctx context.Context, author User, content string) error {
	f.mu.Lock()
	snapshot := make([]Comment, len(f.Comments))
	copy(snapshot, f.Comments)
	snapshotTotal := f.Total

	placeholder := Comment{
		CollectionID: f.collectionID,
		UserID:       author.ID,
		User:         author,
		Content:      content,
	}
	f.Comments = append([]Comment{placeholder}, f.Comments...)
	f.Total++
	f.mu.Unlock()

	result, err := f.client.AddComment(ctx, f.collectionID, content)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.Comments = snapshot
		f.Total = snapshotTotal
		return err
	}

	// Replace the placeholder with the confirmed comment and take the
	// authoritative total.
	f.Comments[0] = result.Comment
	f.Total = result.CommentsCount
	return nil
}

// Snapshot returns a copy of the current list for rendering.
func (f *CommentFeed) Snapshot() ([]Comment, int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Comment, len(f.Comments))
	copy(out, f.Comments)
	return out, f.Total
}
