package spotify

import (
	"context"
	"net/http"
	"strconv"
)

// CurrentPlayback returns the user's playback state, or nil when no device
// is active.
func (c *Client) CurrentPlayback(ctx context.Context) (*PlaybackState, error) {
	var state PlaybackState
	res, err := c.http.R().
		SetContext(ctx).
		SetSuccessResult(&state).
		Get("/me/player")

	if err := handleAPIError(res, err, "playback state"); err != nil {
		return nil, err
	}
	if res.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return &state, nil
}

// RecentlyPlayed returns up to limit recently played tracks, most recent
// first.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]PlayedItem, error) {
	var page playedPage
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetSuccessResult(&page).
		Get("/me/player/recently-played")

	if err := handleAPIError(res, err, "recently played"); err != nil {
		return nil, err
	}
	return page.Items, nil
}

// NextTrack skips the given device to the next track in its queue.
func (c *Client) NextTrack(ctx context.Context, deviceID string) error {
	r := c.http.R().SetContext(ctx)
	if deviceID != "" {
		r.SetQueryParam("device_id", deviceID)
	}
	res, err := r.Post("/me/player/next")

	return handleAPIError(res, err, "next track")
}

// CurrentUser returns the profile of the authorized user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	res, err := c.http.R().
		SetContext(ctx).
		SetSuccessResult(&user).
		Get("/me")

	if err := handleAPIError(res, err, "current user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserPlaylists returns every playlist in the current user's library.
func (c *Client) UserPlaylists(ctx context.Context) ([]SimplePlaylist, error) {
	var playlists []SimplePlaylist
	next := "/me/playlists?limit=" + strconv.Itoa(playlistsPageSize)

	for next != "" {
		var page playlistPage
		res, err := c.http.R().
			SetContext(ctx).
			SetSuccessResult(&page).
			Get(next)
		if err := handleAPIError(res, err, "user playlists"); err != nil {
			return nil, err
		}
		playlists = append(playlists, page.Items...)
		next = page.Next
	}

	return playlists, nil
}
