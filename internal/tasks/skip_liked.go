package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/Qwerty-133/spotils/internal/spotify"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	likedCacheSize = 512
	likedCacheTTL  = 15 * time.Minute
)

// PlayerService is the slice of the Spotify Web API the skip-liked task
// depends on.
type PlayerService interface {
	CurrentPlayback(ctx context.Context) (*spotify.PlaybackState, error)
	LikedContains(ctx context.Context, trackIDs []string) ([]bool, error)
	NextTrack(ctx context.Context, deviceID string) error
}

// LikedSkipper skips the currently playing track when the user has already
// liked it. Tracks playing from the liked songs collection itself are left
// alone, otherwise playing that collection would skip everything.
type LikedSkipper struct {
	svc PlayerService

	// known-liked track ids, so polling doesn't re-ask the API about the
	// same track every second-odd run
	liked *expirable.LRU[string, struct{}]
}

func NewLikedSkipper(svc PlayerService) *LikedSkipper {
	return &LikedSkipper{
		svc:   svc,
		liked: expirable.NewLRU[string, struct{}](likedCacheSize, nil, likedCacheTTL),
	}
}

// Run checks the current playback once and skips it if the track is liked.
func (s *LikedSkipper) Run(ctx context.Context) error {
	state, err := s.svc.CurrentPlayback(ctx)
	if err != nil {
		return err
	}

	playingTrack := state != nil &&
		state.Item != nil &&
		state.IsPlaying &&
		state.Context != nil &&
		state.Context.Type != "collection" &&
		state.CurrentlyPlayingType == "track"
	if !playingTrack {
		return nil
	}

	trackID := state.Item.ID
	if _, known := s.liked.Get(trackID); !known {
		liked, err := s.svc.LikedContains(ctx, []string{trackID})
		if err != nil {
			return err
		}
		if len(liked) == 0 || !liked[0] {
			return nil
		}
		s.liked.Add(trackID, struct{}{})
	}

	slog.Info("skipping liked track", "track", state.Item.Name, "id", trackID)
	return s.svc.NextTrack(ctx, state.Device.ID)
}
