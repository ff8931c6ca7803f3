package spotify

import (
	"time"

	"github.com/Qwerty-133/spotils/internal/version"
	"github.com/imroc/req/v3"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"

	// Page sizes the Web API allows per listing endpoint.
	playlistTracksPageSize = 100
	savedTracksPageSize    = 50
	playlistsPageSize      = 50
)

// Client is a typed client for the slice of the Spotify Web API that
// spotils uses. Methods are grouped by surface: playlists, library, player.
type Client struct {
	http *req.Client
}

// New creates a Client authorized with the given OAuth access token.
func New(token string) *Client {
	client := req.C().
		SetBaseURL(defaultBaseURL).
		SetCommonBearerAuthToken(token).
		SetUserAgent(version.AppName+"/"+version.Version).
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1*time.Second).
		SetCommonErrorResult(&APIError{})

	return &Client{http: client}
}

// Close releases the underlying transport's idle connections.
func (c *Client) Close() {
	c.http.GetTransport().CloseIdleConnections()
}
