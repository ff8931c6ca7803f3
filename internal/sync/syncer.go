package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Syncer mirrors the user's liked songs into a target playlist with the
// minimal number of mutation calls. A single Syncer is safe for concurrent
// use: passes are strictly serialized by its lock, a second caller blocks
// until the in-flight pass completes.
type Syncer struct {
	svc           Service
	playlistID    string
	playlistCache *PlaylistCache
	likedCache    *LikedSongsCache
	likedFreshFor time.Duration
	mu            sync.Mutex
}

// NewSyncer creates a syncer targeting the given playlist. likedFreshFor
// is how long a cached liked-songs listing may be reused by a full pass;
// zero means every full pass refetches.
func NewSyncer(svc Service, playlistID string, likedFreshFor time.Duration) *Syncer {
	return &Syncer{
		svc:           svc,
		playlistID:    playlistID,
		playlistCache: NewPlaylistCache(svc, playlistID),
		likedCache:    NewLikedSongsCache(svc),
		likedFreshFor: likedFreshFor,
	}
}

// Sync reconciles the target playlist's order with the liked songs. A
// limit of 0 runs a full reconciliation through the caches; a positive
// limit compares only the first limit tracks of each collection, fetched
// directly, to catch recent additions cheaply.
//
// Errors, including ErrPlaylistChanged from the cache consistency check,
// propagate to the caller; nothing is retried here. A pass that fails
// mid-mutation leaves the playlist consistent with the confirmed chunks,
// and the next pass re-diffs from fresh state.
func (s *Syncer) Sync(ctx context.Context, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tStart := time.Now()

	sess, err := s.newSession(ctx, limit)
	if err != nil {
		return err
	}

	mutations := 0
	for _, op := range CorrectedOpcodes(sess.playlistTracks, sess.likedTracks) {
		if op.Tag == OpEqual {
			continue
		}
		if err := sess.apply(ctx, op); err != nil {
			return err
		}
		mutations++
	}
	sess.snapshotID = ""

	if mutations > 0 {
		slog.Info("playlist sync",
			"playlist", s.playlistID,
			"limit", limit,
			"ops", mutations,
			"tracks", len(sess.playlistTracks),
			"took", time.Since(tStart),
		)
	} else {
		slog.Debug("playlist sync: nothing to do", "playlist", s.playlistID, "limit", limit)
	}

	return nil
}

// newSession snapshots the two collections into a fresh working session.
// Full passes go through the caches; bounded passes fetch directly.
func (s *Syncer) newSession(ctx context.Context, limit int) (*session, error) {
	sess := &session{svc: s.svc, playlistID: s.playlistID}

	if limit > 0 {
		liked, err := s.svc.LikedTracks(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("fetch liked songs: %w", err)
		}
		playlist, err := s.svc.PlaylistTracks(ctx, s.playlistID, limit)
		if err != nil {
			return nil, fmt.Errorf("fetch playlist tracks: %w", err)
		}
		sess.likedTracks = liked
		sess.playlistTracks = playlist
		return sess, nil
	}

	if err := s.likedCache.SyncIfNotFresh(ctx, s.likedFreshFor); err != nil {
		return nil, fmt.Errorf("refresh liked songs: %w", err)
	}
	if err := s.playlistCache.SyncIfNotFresh(ctx, true); err != nil {
		return nil, fmt.Errorf("refresh playlist: %w", err)
	}
	sess.likedTracks = s.likedCache.Tracks()
	sess.playlistTracks = s.playlistCache.Tracks()
	return sess, nil
}
