package spotify

import (
	"context"
	"strconv"
)

// PlaylistSnapshot returns the playlist's current snapshot id without
// fetching its tracks.
func (c *Client) PlaylistSnapshot(ctx context.Context, playlistID string) (string, error) {
	var details PlaylistDetails
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("fields", "snapshot_id,tracks.total").
		SetSuccessResult(&details).
		Get("/playlists/" + playlistID)

	if err := handleAPIError(res, err, "playlist details"); err != nil {
		return "", err
	}
	return details.SnapshotID, nil
}

// PlaylistTracks returns the playlist's track ids in order. A limit of 0
// fetches the whole playlist.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string, limit int) ([]string, error) {
	pageSize := playlistTracksPageSize
	if limit > 0 {
		pageSize = min(limit, pageSize)
	}

	var page TrackPage
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"additional_types": "track",
			"limit":            strconv.Itoa(pageSize),
		}).
		SetSuccessResult(&page).
		Get("/playlists/" + playlistID + "/tracks")

	if err := handleAPIError(res, err, "playlist tracks"); err != nil {
		return nil, err
	}
	return c.collectTracks(ctx, &page, limit)
}

// AddPlaylistTracks inserts the tracks at the given position and returns the
// playlist's new snapshot id.
func (c *Client) AddPlaylistTracks(ctx context.Context, playlistID string, trackIDs []string, position int) (string, error) {
	uris := make([]string, len(trackIDs))
	for i, id := range trackIDs {
		uris[i] = trackURI(id)
	}

	var snap snapshotResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"uris":     uris,
			"position": position,
		}).
		SetSuccessResult(&snap).
		Post("/playlists/" + playlistID + "/tracks")

	if err := handleAPIError(res, err, "add playlist tracks"); err != nil {
		return "", err
	}
	return snap.SnapshotID, nil
}

// RemovePlaylistTracks removes the given occurrences by position. An empty
// snapshotID performs the removal against the playlist's current state.
func (c *Client) RemovePlaylistTracks(ctx context.Context, playlistID string, tracks []TrackOccurrence, snapshotID string) (string, error) {
	items := make([]map[string]any, len(tracks))
	for i, t := range tracks {
		items[i] = map[string]any{
			"uri":       trackURI(t.ID),
			"positions": []int{t.Position},
		}
	}
	body := map[string]any{"tracks": items}
	if snapshotID != "" {
		body["snapshot_id"] = snapshotID
	}

	var snap snapshotResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetSuccessResult(&snap).
		Delete("/playlists/" + playlistID + "/tracks")

	if err := handleAPIError(res, err, "remove playlist tracks"); err != nil {
		return "", err
	}
	return snap.SnapshotID, nil
}

// UnfollowPlaylist removes the playlist from the current user's library.
func (c *Client) UnfollowPlaylist(ctx context.Context, playlistID string) error {
	res, err := c.http.R().
		SetContext(ctx).
		Delete("/playlists/" + playlistID + "/followers")

	return handleAPIError(res, err, "unfollow playlist")
}

// collectTracks walks a track listing from its first page, following next
// links until the listing (or limit) is exhausted. The listing's total is
// compared across pages; a moving total aborts with ErrTotalChanged.
func (c *Client) collectTracks(ctx context.Context, page *TrackPage, limit int) ([]string, error) {
	total := page.Total
	ids := make([]string, 0, total)

	for {
		for _, item := range page.Items {
			ids = append(ids, item.Track.ID)
			if limit > 0 && len(ids) == limit {
				return ids, nil
			}
		}
		if page.Next == "" {
			return ids, nil
		}

		var next TrackPage
		res, err := c.http.R().
			SetContext(ctx).
			SetSuccessResult(&next).
			Get(page.Next)
		if err := handleAPIError(res, err, "next track page"); err != nil {
			return nil, err
		}
		if next.Total != total {
			return nil, ErrTotalChanged
		}
		page = &next
	}
}
