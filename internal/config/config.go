package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Qwerty-133/spotils/internal/utils"
	"github.com/spf13/viper"
)

var (
	configDir, _ = os.UserConfigDir()

	// DefaultConfigPath is where the user config file is looked up when no
	// --config flag is given.
	DefaultConfigPath = filepath.Join(configDir, "spotils", "config.json")
)

// Config is the application configuration, populated once at startup and
// passed by reference to whatever needs it.
type Config struct {
	Spotify SpotifyConfig `mapstructure:"spotify"`
	Tasks   TasksConfig   `mapstructure:"tasks"`
	Log     LogConfig     `mapstructure:"log"`
}

type SpotifyConfig struct {
	// LikedSongsPlaylistID is the playlist the liked songs are mirrored
	// into.
	LikedSongsPlaylistID string `mapstructure:"liked_songs_playlist_id"`
}

type TasksConfig struct {
	LikedSongsSync   LikedSongsSyncConfig `mapstructure:"liked_songs_sync"`
	SkipLikedSongs   IntervalTaskConfig   `mapstructure:"skip_liked_songs"`
	CleanupPlaylists IntervalTaskConfig   `mapstructure:"cleanup_playlists"`
}

type LikedSongsSyncConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ShortSyncEnabled  bool   `mapstructure:"short_sync_enabled"`
	ShortSyncInterval string `mapstructure:"short_sync_interval"`
	ShortSyncLimit    int    `mapstructure:"short_sync_limit"`
	FullSyncInterval  string `mapstructure:"full_sync_interval"`
}

// IntervalTaskConfig configures a task that just runs at a fixed interval.
type IntervalTaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Interval string `mapstructure:"interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads the config file at path (or the default locations when path is
// empty), layered over defaults and SPOTILS_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(configDir, "spotils"))
		v.SetConfigName("config")
		v.SetConfigType("json")
	}

	v.SetEnvPrefix("SPOTILS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config read %q: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// every key needs a default registered, or AutomaticEnv won't surface
	// its SPOTILS_* override through Unmarshal
	v.SetDefault("spotify.liked_songs_playlist_id", "")
	v.SetDefault("tasks.liked_songs_sync.enabled", false)
	v.SetDefault("tasks.liked_songs_sync.short_sync_enabled", true)
	v.SetDefault("tasks.liked_songs_sync.short_sync_interval", "5m")
	v.SetDefault("tasks.liked_songs_sync.short_sync_limit", 50)
	v.SetDefault("tasks.liked_songs_sync.full_sync_interval", "1d")
	v.SetDefault("tasks.skip_liked_songs.enabled", false)
	v.SetDefault("tasks.skip_liked_songs.interval", "5s")
	v.SetDefault("tasks.cleanup_playlists.enabled", false)
	v.SetDefault("tasks.cleanup_playlists.interval", "1d")
	v.SetDefault("log.level", "info")
}

// Validate fails fast on configuration that would only blow up once a task
// fires: malformed interval strings, or a missing target playlist.
func (c *Config) Validate() error {
	sync := c.Tasks.LikedSongsSync
	if sync.Enabled {
		if c.Spotify.LikedSongsPlaylistID == "" {
			return errors.New("config: spotify.liked_songs_playlist_id is required when liked songs sync is enabled")
		}
		if err := validateInterval("tasks.liked_songs_sync.full_sync_interval", sync.FullSyncInterval); err != nil {
			return err
		}
		if sync.ShortSyncEnabled {
			if err := validateInterval("tasks.liked_songs_sync.short_sync_interval", sync.ShortSyncInterval); err != nil {
				return err
			}
			if sync.ShortSyncLimit <= 0 {
				return errors.New("config: tasks.liked_songs_sync.short_sync_limit must be positive")
			}
		}
	}

	if c.Tasks.SkipLikedSongs.Enabled {
		if err := validateInterval("tasks.skip_liked_songs.interval", c.Tasks.SkipLikedSongs.Interval); err != nil {
			return err
		}
	}
	if c.Tasks.CleanupPlaylists.Enabled {
		if err := validateInterval("tasks.cleanup_playlists.interval", c.Tasks.CleanupPlaylists.Interval); err != nil {
			return err
		}
	}

	return nil
}

// validateInterval rejects intervals that don't parse or that would make a
// task fire on every scheduler poll.
func validateInterval(key, value string) error {
	d, err := utils.ParseInterval(value)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("config: %s must be positive", key)
	}
	return nil
}
