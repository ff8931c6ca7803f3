package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/imroc/req/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a local test server, without the retry
// policy of the production constructor.
func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		http: req.C().
			SetBaseURL(srv.URL).
			SetCommonErrorResult(&APIError{}),
	}
}

func trackPageJSON(baseURL string, ids []string, next string, total int) []byte {
	page := map[string]any{"items": []any{}, "total": total}
	items := make([]any, len(ids))
	for i, id := range ids {
		items[i] = map[string]any{"track": map[string]any{"id": id}}
	}
	page["items"] = items
	if next != "" {
		page["next"] = baseURL + next
	}
	body, _ := json.Marshal(page)
	return body
}

func TestPlaylistTracks(t *testing.T) {
	t.Run("follows next links across pages", func(t *testing.T) {
		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/playlists/pl/tracks", r.URL.Path)
			switch r.URL.Query().Get("offset") {
			case "":
				w.Write(trackPageJSON(srv.URL, []string{"a", "b"}, "/playlists/pl/tracks?offset=2", 5))
			case "2":
				w.Write(trackPageJSON(srv.URL, []string{"c", "d"}, "/playlists/pl/tracks?offset=4", 5))
			case "4":
				w.Write(trackPageJSON(srv.URL, []string{"e"}, "", 5))
			default:
				t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
			}
		}))
		defer srv.Close()

		got, err := newTestClient(srv).PlaylistTracks(context.Background(), "pl", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
	})

	t.Run("stops at the limit mid-page", func(t *testing.T) {
		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("offset") != "" {
				t.Error("fetched a page past the limit")
			}
			w.Write(trackPageJSON(srv.URL, []string{"a", "b", "c"}, "/playlists/pl/tracks?offset=3", 6))
		}))
		defer srv.Close()

		got, err := newTestClient(srv).PlaylistTracks(context.Background(), "pl", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	})

	t.Run("requests no more than the limit per page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			w.Write(trackPageJSON("", []string{"a", "b", "c", "d", "e"}, "", 40))
		}))
		defer srv.Close()

		got, err := newTestClient(srv).PlaylistTracks(context.Background(), "pl", 5)
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})

	t.Run("fails when the total moves between pages", func(t *testing.T) {
		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("offset") == "" {
				w.Write(trackPageJSON(srv.URL, []string{"a"}, "/playlists/pl/tracks?offset=1", 2))
				return
			}
			w.Write(trackPageJSON(srv.URL, []string{"b"}, "", 3))
		}))
		defer srv.Close()

		_, err := newTestClient(srv).PlaylistTracks(context.Background(), "pl", 0)
		require.ErrorIs(t, err, ErrTotalChanged)
	})
}

func TestPlaylistSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/playlists/pl", r.URL.Path)
		assert.Equal(t, "snapshot_id,tracks.total", r.URL.Query().Get("fields"))
		fmt.Fprint(w, `{"snapshot_id": "snap-7", "tracks": {"total": 12}}`)
	}))
	defer srv.Close()

	snap, err := newTestClient(srv).PlaylistSnapshot(context.Background(), "pl")
	require.NoError(t, err)
	assert.Equal(t, "snap-7", snap)
}

func TestAddPlaylistTracks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/playlists/pl/tracks", r.URL.Path)

		var body struct {
			URIs     []string `json:"uris"`
			Position int      `json:"position"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"spotify:track:a", "spotify:track:b"}, body.URIs)
		assert.Equal(t, 3, body.Position)

		fmt.Fprint(w, `{"snapshot_id": "snap-8"}`)
	}))
	defer srv.Close()

	snap, err := newTestClient(srv).AddPlaylistTracks(context.Background(), "pl", []string{"a", "b"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "snap-8", snap)
}

func TestRemovePlaylistTracks(t *testing.T) {
	t.Run("sends uri and position pairs", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)

			var body struct {
				Tracks []struct {
					URI       string `json:"uri"`
					Positions []int  `json:"positions"`
				} `json:"tracks"`
				SnapshotID *string `json:"snapshot_id"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Tracks, 2)
			assert.Equal(t, "spotify:track:a", body.Tracks[0].URI)
			assert.Equal(t, []int{4}, body.Tracks[0].Positions)
			assert.Equal(t, "spotify:track:b", body.Tracks[1].URI)
			assert.Equal(t, []int{5}, body.Tracks[1].Positions)
			assert.Nil(t, body.SnapshotID, "empty snapshot id must be omitted")

			fmt.Fprint(w, `{"snapshot_id": "snap-9"}`)
		}))
		defer srv.Close()

		occurrences := []TrackOccurrence{{ID: "a", Position: 4}, {ID: "b", Position: 5}}
		snap, err := newTestClient(srv).RemovePlaylistTracks(context.Background(), "pl", occurrences, "")
		require.NoError(t, err)
		assert.Equal(t, "snap-9", snap)
	})

	t.Run("passes a snapshot id through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "snap-1", body["snapshot_id"])
			fmt.Fprint(w, `{"snapshot_id": "snap-2"}`)
		}))
		defer srv.Close()

		_, err := newTestClient(srv).RemovePlaylistTracks(context.Background(), "pl",
			[]TrackOccurrence{{ID: "a", Position: 0}}, "snap-1")
		require.NoError(t, err)
	})
}

func TestLikedTracks(t *testing.T) {
	t.Run("defaults to the full page size", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/me/tracks", r.URL.Path)
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			w.Write(trackPageJSON("", []string{"a"}, "", 1))
		}))
		defer srv.Close()

		got, err := newTestClient(srv).LikedTracks(context.Background(), 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got)
	})

	t.Run("requests no more than the limit per page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			w.Write(trackPageJSON("", []string{"a", "b", "c"}, "", 30))
		}))
		defer srv.Close()

		got, err := newTestClient(srv).LikedTracks(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})
}

func TestLikedContains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/tracks/contains", r.URL.Path)
		assert.Equal(t, "a,b,c", r.URL.Query().Get("ids"))
		fmt.Fprint(w, `[true, false, true]`)
	}))
	defer srv.Close()

	got, err := newTestClient(srv).LikedContains(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, got)
}

func TestCurrentPlayback(t *testing.T) {
	t.Run("nil when no device is active", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		state, err := newTestClient(srv).CurrentPlayback(context.Background())
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("decodes an active playback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"device": {"id": "dev-1"},
				"is_playing": true,
				"currently_playing_type": "track",
				"context": {"type": "playlist"},
				"item": {"id": "t1", "name": "Song", "duration_ms": 201000}
			}`)
		}))
		defer srv.Close()

		state, err := newTestClient(srv).CurrentPlayback(context.Background())
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.True(t, state.IsPlaying)
		assert.Equal(t, "dev-1", state.Device.ID)
		require.NotNil(t, state.Item)
		assert.Equal(t, "t1", state.Item.ID)
	})
}

func TestUserPlaylists(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/playlists", r.URL.Path)
		page := playlistPage{}
		if r.URL.Query().Get("offset") == "" {
			page.Items = []SimplePlaylist{{ID: "p1"}, {ID: "p2"}}
			page.Next = srv.URL + "/me/playlists?offset=2&limit=" + strconv.Itoa(playlistsPageSize)
		} else {
			page.Items = []SimplePlaylist{{ID: "p3"}}
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"items": page.Items,
			"next":  page.Next,
		}))
	}))
	defer srv.Close()

	got, err := newTestClient(srv).UserPlaylists(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "p3", got[2].ID)
}

func TestAPIErrorHandling(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": {"status": 404, "message": "Invalid playlist Id"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).PlaylistSnapshot(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorContains(t, err, "playlist details")
	assert.ErrorContains(t, err, "404 Invalid playlist Id")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Inner.Status)
}
