package sync

import (
	"context"

	"github.com/Qwerty-133/spotils/internal/spotify"
)

// Service is the slice of the Spotify Web API the sync engine depends on,
// implemented by *spotify.Client and by fakes in tests.
//
// A limit of 0 on the listing calls fetches the full collection. Snapshot
// ids act as version tokens: equal ids mean the playlist has not changed.
type Service interface {
	PlaylistSnapshot(ctx context.Context, playlistID string) (string, error)
	PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]string, error)
	LikedTracks(ctx context.Context, limit int) ([]string, error)
	AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string, position int) (string, error)
	RemovePlaylistTracks(ctx context.Context, playlistID string, tracks []spotify.TrackOccurrence, snapshotID string) (string, error)
}

var _ Service = (*spotify.Client)(nil)
