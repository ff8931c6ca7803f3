package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Qwerty-133/spotils/internal/config"
	"github.com/Qwerty-133/spotils/internal/utils"
	"github.com/Qwerty-133/spotils/internal/version"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logLevel is shared with the run command, which raises or lowers it from
// the config once it is loaded.
var logLevel = new(slog.LevelVar)

var rootCmd = &cobra.Command{
	Use:     "spotils",
	Short:   "A collection of different Spotify utilities",
	Version: version.Detailed(),
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "Config file path")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func main() {
	setupLogging()

	// API credentials may live in a .env next to the binary
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	stdoutHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      logLevel,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})

	logFile := &lumberjack.Logger{
		Filename:   defaultLogPath(),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	}
	fileHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: logLevel,
	})

	slog.SetDefault(slog.New(utils.NewTeeLogHandler(stdoutHandler, fileHandler)))
}

func defaultLogPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve config dir: %v\n", err)
		return "spotils.log"
	}
	return filepath.Join(dir, "spotils", "spotils.log")
}
