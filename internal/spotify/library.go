package spotify

import (
	"context"
	"strconv"
	"strings"
)

// LikedTracks returns the user's saved track ids, most recently liked
// first. A limit of 0 fetches the whole library.
func (c *Client) LikedTracks(ctx context.Context, limit int) ([]string, error) {
	pageSize := savedTracksPageSize
	if limit > 0 {
		pageSize = min(limit, pageSize)
	}

	var page TrackPage
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(pageSize)).
		SetSuccessResult(&page).
		Get("/me/tracks")

	if err := handleAPIError(res, err, "saved tracks"); err != nil {
		return nil, err
	}
	return c.collectTracks(ctx, &page, limit)
}

// LikedContains reports, per track id, whether the user has saved it.
func (c *Client) LikedContains(ctx context.Context, trackIDs []string) ([]bool, error) {
	var saved []bool
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("ids", strings.Join(trackIDs, ",")).
		SetSuccessResult(&saved).
		Get("/me/tracks/contains")

	if err := handleAPIError(res, err, "saved tracks contains"); err != nil {
		return nil, err
	}
	return saved, nil
}
