package sync

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Qwerty-133/spotils/internal/spotify"
)

// fakeService is an in-memory stand-in for the Spotify API. It keeps a real
// ordered playlist, verifies positional mutations against it, and records
// every call for assertions.
type fakeService struct {
	mu       sync.Mutex
	playlist []string
	liked    []string
	snapshot int

	// invoked (under the lock) before every PlaylistSnapshot reply, used
	// to simulate external edits mid-refresh
	onSnapshot func()

	// artificial latency on mutation calls, to widen interleaving windows
	mutationDelay time.Duration

	calls           []string
	snapshotCalls   int
	playlistFetches []int // limits passed
	likedFetches    []int // limits passed
	addBatches      []int // batch sizes
	removeBatches   []int // batch sizes
	removeSnapshots []string
}

func (f *fakeService) PlaylistSnapshot(ctx context.Context, playlistID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onSnapshot != nil {
		f.onSnapshot()
	}
	f.snapshotCalls++
	f.calls = append(f.calls, "snapshot")
	return fmt.Sprintf("snap-%d", f.snapshot), nil
}

func (f *fakeService) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playlistFetches = append(f.playlistFetches, limit)
	f.calls = append(f.calls, "playlist-tracks")
	return clip(f.playlist, limit), nil
}

func (f *fakeService) LikedTracks(ctx context.Context, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.likedFetches = append(f.likedFetches, limit)
	f.calls = append(f.calls, "liked-tracks")
	return clip(f.liked, limit), nil
}

func (f *fakeService) AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string, position int) (string, error) {
	time.Sleep(f.mutationDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	if position < 0 || position > len(f.playlist) {
		return "", fmt.Errorf("insert position %d out of range (len %d)", position, len(f.playlist))
	}
	f.playlist = slices.Insert(f.playlist, position, trackIDs...)
	f.snapshot++
	f.addBatches = append(f.addBatches, len(trackIDs))
	f.calls = append(f.calls, fmt.Sprintf("add:%d@%d", len(trackIDs), position))
	return fmt.Sprintf("snap-%d", f.snapshot), nil
}

func (f *fakeService) RemovePlaylistTracks(ctx context.Context, playlistID string, tracks []spotify.TrackOccurrence, snapshotID string) (string, error) {
	time.Sleep(f.mutationDelay)
	f.mu.Lock()
	defer f.mu.Unlock()

	positions := make([]int, 0, len(tracks))
	for _, occ := range tracks {
		if occ.Position < 0 || occ.Position >= len(f.playlist) {
			return "", fmt.Errorf("remove position %d out of range (len %d)", occ.Position, len(f.playlist))
		}
		if f.playlist[occ.Position] != occ.ID {
			return "", fmt.Errorf("position %d holds %q, not %q", occ.Position, f.playlist[occ.Position], occ.ID)
		}
		positions = append(positions, occ.Position)
	}

	slices.Sort(positions)
	for i := len(positions) - 1; i >= 0; i-- {
		f.playlist = slices.Delete(f.playlist, positions[i], positions[i]+1)
	}

	f.snapshot++
	f.removeBatches = append(f.removeBatches, len(tracks))
	f.removeSnapshots = append(f.removeSnapshots, snapshotID)
	f.calls = append(f.calls, fmt.Sprintf("remove:%d", len(tracks)))
	return fmt.Sprintf("snap-%d", f.snapshot), nil
}

func clip(tracks []string, limit int) []string {
	if limit > 0 && limit < len(tracks) {
		return slices.Clone(tracks[:limit])
	}
	return slices.Clone(tracks)
}

// makeIDs returns n distinct track ids.
func makeIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return ids
}
