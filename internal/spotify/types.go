package spotify

import (
	"fmt"
	"strings"
	"time"
)

type Album struct {
	Name string `json:"name"`
}

type Artist struct {
	Name string `json:"name"`
}

type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	DurationMS int      `json:"duration_ms"`
	Album      Album    `json:"album"`
	Artists    []Artist `json:"artists"`
}

// ArtistNames returns the track's artists joined with commas.
func (t *Track) ArtistNames() string {
	names := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// FormattedDuration renders the track's duration as M:SS, or H:MM:SS for
// tracks an hour or longer.
func (t *Track) FormattedDuration() string {
	total := (t.DurationMS + 500) / 1000
	mins, secs := total/60, total%60
	hrs, mins := mins/60, mins%60
	if hrs > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hrs, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// TrackItem is one entry of a playlist or saved-tracks listing.
type TrackItem struct {
	Track Track `json:"track"`
}

// TrackPage is one page of an ordered track listing.
type TrackPage struct {
	Items []TrackItem `json:"items"`
	Next  string      `json:"next"`
	Total int         `json:"total"`
}

// PlaylistDetails is the lightweight playlist view used for snapshot checks.
type PlaylistDetails struct {
	SnapshotID string `json:"snapshot_id"`
	Tracks     struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

// TrackOccurrence identifies a single occurrence of a track inside a
// playlist by its current position.
type TrackOccurrence struct {
	ID       string
	Position int
}

type Device struct {
	ID string `json:"id"`
}

type PlaybackContext struct {
	Type string `json:"type"`
}

// PlaybackState describes what the user is currently playing. Item is nil
// when nothing is loaded, Context is nil for contextless playback.
type PlaybackState struct {
	Device               Device           `json:"device"`
	IsPlaying            bool             `json:"is_playing"`
	CurrentlyPlayingType string           `json:"currently_playing_type"`
	Context              *PlaybackContext `json:"context"`
	Item                 *Track           `json:"item"`
}

// PlayedItem is one entry of the recently-played listing.
type PlayedItem struct {
	Track    Track     `json:"track"`
	PlayedAt time.Time `json:"played_at"`
}

type playedPage struct {
	Items []PlayedItem `json:"items"`
}

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SimplePlaylist is one entry of the user's playlists listing.
type SimplePlaylist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       User   `json:"owner"`
	Tracks      struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

type playlistPage struct {
	Items []SimplePlaylist `json:"items"`
	Next  string           `json:"next"`
}

type snapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
}

// trackURI converts a bare track id into the URI form mutation endpoints
// expect.
func trackURI(id string) string {
	return "spotify:track:" + id
}
