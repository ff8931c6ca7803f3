package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Qwerty-133/spotils/internal/config"
	"github.com/Qwerty-133/spotils/internal/spotify"
	"github.com/Qwerty-133/spotils/internal/sync"
	"github.com/Qwerty-133/spotils/internal/tasks"
	"github.com/Qwerty-133/spotils/internal/utils"
	"github.com/Qwerty-133/spotils/internal/version"
	"golang.org/x/sync/errgroup"
)

// ErrNoTasksEnabled means the config enables nothing, so there is nothing
// to run.
var ErrNoTasksEnabled = errors.New("app: no tasks enabled")

// App owns the scheduler and the task wiring for one daemon run.
type App struct {
	cfg   *config.Config
	api   *spotify.Client
	sched *sync.Scheduler
}

func New(cfg *config.Config, api *spotify.Client) *App {
	return &App{
		cfg:   cfg,
		api:   api,
		sched: sync.NewScheduler(),
	}
}

// Start schedules every enabled task and blocks until ctx is cancelled and
// all task goroutines have drained.
func (a *App) Start(ctx context.Context) error {
	count, err := a.scheduleTasks()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoTasksEnabled
	}

	slog.Info("spotils start", "version", version.Short(), "tasks", count)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		a.sched.Start(egCtx)
		a.sched.Wait()
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("stopping tasks")
		return nil
	})

	return eg.Wait()
}

// scheduleTasks registers the configured tasks with the scheduler and
// returns how many were enabled. Intervals were validated with the config,
// but parse failures are still surfaced rather than ignored.
func (a *App) scheduleTasks() (int, error) {
	count := 0

	if cfg := a.cfg.Tasks.LikedSongsSync; cfg.Enabled {
		full, err := utils.ParseInterval(cfg.FullSyncInterval)
		if err != nil {
			return 0, fmt.Errorf("full sync interval: %w", err)
		}

		if cfg.ShortSyncEnabled {
			short, err := utils.ParseInterval(cfg.ShortSyncInterval)
			if err != nil {
				return 0, fmt.Errorf("short sync interval: %w", err)
			}
			// cached liked songs may be reused by a full pass for up to one
			// short cycle
			syncer := sync.NewSyncer(a.api, a.cfg.Spotify.LikedSongsPlaylistID, short)
			tick := sync.NewTickSync(syncer, short, full, cfg.ShortSyncLimit)
			a.sched.Schedule("liked-songs-sync", short, tick.Tick)
		} else {
			syncer := sync.NewSyncer(a.api, a.cfg.Spotify.LikedSongsPlaylistID, 0)
			a.sched.Schedule("liked-songs-sync", full, func(ctx context.Context) error {
				return syncer.Sync(ctx, 0)
			})
		}
		count++
	}

	if cfg := a.cfg.Tasks.SkipLikedSongs; cfg.Enabled {
		interval, err := utils.ParseInterval(cfg.Interval)
		if err != nil {
			return 0, fmt.Errorf("skip liked interval: %w", err)
		}
		a.sched.Schedule("skip-liked", interval, tasks.NewLikedSkipper(a.api).Run)
		count++
	}

	if cfg := a.cfg.Tasks.CleanupPlaylists; cfg.Enabled {
		interval, err := utils.ParseInterval(cfg.Interval)
		if err != nil {
			return 0, fmt.Errorf("cleanup interval: %w", err)
		}
		a.sched.Schedule("cleanup-playlists", interval, tasks.NewPlaylistCleaner(a.api).Run)
		count++
	}

	return count, nil
}
