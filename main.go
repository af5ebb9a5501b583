package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-web/internal"
	"github.com/rocketscienceinc/tictactoe-web/internal/config"
)

var configPath string

// main - is the entry point of the application. It parses the command line and runs the chosen command.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	rootCmd := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Tic-tac-toe in the browser or in the terminal",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./config.yml when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the game page and its WebSocket endpoint",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := initConfig()
			if err != nil {
				return err
			}

			if err = app.RunApp(initLogger(conf), conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a local game in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			conf, err := initConfig()
			if err != nil {
				return err
			}

			return app.RunTerminal(conf)
		},
	}
}

// initialize config. Without --config the working directory's config.yml is
// used when it exists, otherwise defaults and environment.
func initConfig() (*config.Config, error) {
	if configPath != "" {
		return config.MustLoad(configPath), nil
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	path := filepath.Join(baseDir, "config.yml")
	if _, err = os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Default()
	}

	return config.Load(path)
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
