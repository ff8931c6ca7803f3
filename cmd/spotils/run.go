package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/Qwerty-133/spotils/internal/app"
	"github.com/Qwerty-133/spotils/internal/config"
	"github.com/Qwerty-133/spotils/internal/spotify"
	"github.com/Qwerty-133/spotils/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run all the enabled tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := ""
			if cmd.Flag("config").Changed {
				configPath = cmd.Flag("config").Value.String()
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			var level slog.Level
			if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
				return err
			}
			logLevel.Set(level)

			cmd.SilenceUsage = true
			slog.Info("spotils", "version", version.Version, "revision", version.Revision, "build", version.BuildDate)

			client, err := apiClient()
			if err != nil {
				return err
			}
			defer client.Close()

			defer slog.Info("Bye!")
			a := app.New(cfg, client)
			if err := a.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("run", "error", err)
				return err
			}
			return nil
		},
	}
}

// apiClient builds a Spotify client from the access token in the
// environment (possibly loaded from .env).
func apiClient() (*spotify.Client, error) {
	token := os.Getenv("SPOTIFY_ACCESS_TOKEN")
	if token == "" {
		return nil, errors.New("SPOTIFY_ACCESS_TOKEN is not set")
	}
	return spotify.New(token), nil
}
