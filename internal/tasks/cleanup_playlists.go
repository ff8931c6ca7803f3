package tasks

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Qwerty-133/spotils/internal/spotify"
)

// defaultPlaylistPrefix is the name Spotify gives freshly created,
// never-renamed playlists.
const defaultPlaylistPrefix = "My Playlist #"

// PlaylistsService is the slice of the Spotify Web API the cleanup task
// depends on.
type PlaylistsService interface {
	CurrentUser(ctx context.Context) (*spotify.User, error)
	UserPlaylists(ctx context.Context) ([]spotify.SimplePlaylist, error)
	UnfollowPlaylist(ctx context.Context, playlistID string) error
}

// PlaylistCleaner unfollows the user's own leftover "My Playlist #n"
// playlists: empty, empty description, never renamed. Playlists owned by
// someone else are never touched.
type PlaylistCleaner struct {
	svc PlaylistsService
}

func NewPlaylistCleaner(svc PlaylistsService) *PlaylistCleaner {
	return &PlaylistCleaner{svc: svc}
}

// Run removes every leftover playlist found in one listing pass.
func (c *PlaylistCleaner) Run(ctx context.Context) error {
	user, err := c.svc.CurrentUser(ctx)
	if err != nil {
		return err
	}

	playlists, err := c.svc.UserPlaylists(ctx)
	if err != nil {
		return err
	}

	for _, playlist := range playlists {
		leftover := playlist.Owner.ID == user.ID &&
			strings.HasPrefix(playlist.Name, defaultPlaylistPrefix) &&
			playlist.Tracks.Total == 0 &&
			playlist.Description == ""
		if !leftover {
			continue
		}

		slog.Info("removing empty playlist", "name", playlist.Name, "id", playlist.ID)
		if err := c.svc.UnfollowPlaylist(ctx, playlist.ID); err != nil {
			return err
		}
	}

	return nil
}
