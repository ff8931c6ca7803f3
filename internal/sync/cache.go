package sync

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// ErrPlaylistChanged reports that a playlist's snapshot id moved while its
// tracks were being fetched, so the refreshed cache cannot be trusted.
var ErrPlaylistChanged = errors.New("sync: playlist changed while refreshing")

// PlaylistCache holds the last known ordered tracks of a playlist, keyed by
// its snapshot id. All access is serialized by the cache's own lock.
type PlaylistCache struct {
	svc        Service
	playlistID string

	mu         sync.Mutex
	tracks     []string
	snapshotID string
}

func NewPlaylistCache(svc Service, playlistID string) *PlaylistCache {
	return &PlaylistCache{svc: svc, playlistID: playlistID}
}

// SyncIfNotFresh refetches the cached tracks when the playlist's snapshot
// id has moved since the last refresh. With verify set, the snapshot id is
// checked once more after the fetch completes; if it moved again the
// refresh fails with ErrPlaylistChanged instead of keeping inconsistent
// data.
func (c *PlaylistCache) SyncIfNotFresh(ctx context.Context, verify bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshotID, err := c.svc.PlaylistSnapshot(ctx, c.playlistID)
	if err != nil {
		return err
	}
	if snapshotID != c.snapshotID {
		tracks, err := c.svc.PlaylistTracks(ctx, c.playlistID, 0)
		if err != nil {
			return err
		}
		c.tracks = tracks
		c.snapshotID = snapshotID
	}

	if verify {
		snapshotID, err := c.svc.PlaylistSnapshot(ctx, c.playlistID)
		if err != nil {
			return err
		}
		if snapshotID != c.snapshotID {
			return ErrPlaylistChanged
		}
	}

	return nil
}

// Tracks returns a copy of the cached tracks.
func (c *PlaylistCache) Tracks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tracks)
}

// LikedSongsCache holds the last known liked songs of the user. The liked
// songs collection exposes no version token, so freshness is judged by
// wall-clock age instead.
type LikedSongsCache struct {
	svc Service
	now func() time.Time

	mu         sync.Mutex
	tracks     []string
	lastSynced time.Time
}

func NewLikedSongsCache(svc Service) *LikedSongsCache {
	return &LikedSongsCache{svc: svc, now: time.Now}
}

// IsFresh reports whether the cache was synced within the threshold.
func (c *LikedSongsCache) IsFresh(threshold time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isFresh(threshold)
}

// Sync unconditionally refetches the liked songs and stamps the sync time.
func (c *LikedSongsCache) Sync(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sync(ctx)
}

// SyncIfNotFresh refetches the liked songs unless they were synced within
// the threshold.
func (c *LikedSongsCache) SyncIfNotFresh(ctx context.Context, threshold time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isFresh(threshold) {
		return nil
	}
	return c.sync(ctx)
}

// Tracks returns a copy of the cached tracks.
func (c *LikedSongsCache) Tracks() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tracks)
}

func (c *LikedSongsCache) isFresh(threshold time.Duration) bool {
	return !c.lastSynced.IsZero() && c.now().Sub(c.lastSynced) < threshold
}

func (c *LikedSongsCache) sync(ctx context.Context) error {
	tracks, err := c.svc.LikedTracks(ctx, 0)
	if err != nil {
		return err
	}
	c.tracks = tracks
	c.lastSynced = c.now()
	return nil
}
