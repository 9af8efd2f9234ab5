package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/spectate"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagWatchAddr  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in this terminal.

Controls:
  Space       - Start / restart
  ←/→ (a/d)   - Move
  ↑ (w)       - Rotate clockwise
  ↓ (s)       - Soft drop
  Enter       - Hard drop
  P/Esc       - Pause
  Q/Ctrl+C    - Quit

Without --difficulty a menu asks for the mode.

Difficulty options:
  fixed  - Constant fall speed
  easy   - Starts slow, speeds up with score
  normal - Starts at 30% speed-up
  hard   - Starts at 60% speed-up

Examples:
  blockfall play
  blockfall play --difficulty hard
  blockfall play --config ./my-blockfall.yaml
  blockfall play --watch :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with scores")
	playCmd.Flags().StringVar(&flagWatchAddr, "watch", "", "Serve a spectator feed on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		defer store.Close()
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	if flagDifficulty == "" {
		chosen, ok, menuErr := tui.RunModeMenu(store, width, height)
		if menuErr != nil {
			return menuErr
		}
		if !ok {
			return nil
		}
		preset = chosen
	}

	game := blockfall.New(cfg, preset)
	if store != nil {
		if best, hsErr := store.HighScore(game.Mode()); hsErr == nil {
			game.SetHighScore(best)
		}
	}

	opts := tui.Options{
		Store:     store,
		Player:    flagPlayer,
		SessionID: uuid.NewString(),
	}

	if flagWatchAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		// The TUI owns the terminal, so the feed logs nowhere.
		hub := startWatch(ctx, flagWatchAddr, log.New(io.Discard))
		opts.Publisher = hub
		fmt.Printf("Spectators: %s\n", watchURL(flagWatchAddr, opts.SessionID))
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if err := tui.Run(game, rc, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// watchURL returns the WebSocket URL spectators use to follow a session.
// Wildcard or missing hosts are reported as localhost.
func watchURL(addr, sessionID string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, ""
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	if port != "" {
		host = net.JoinHostPort(host, port)
	}
	return "ws://" + host + "/ws/" + sessionID
}

// startWatch runs a spectator hub and its HTTP server until ctx ends.
func startWatch(ctx context.Context, addr string, l *log.Logger) *spectate.Hub {
	hub := spectate.NewHub(l)
	go hub.Run(ctx)
	go func() {
		if err := spectate.NewServer(hub).ListenAndServe(ctx, addr); err != nil {
			l.Error("spectator server stopped", "error", err)
		}
	}()
	return hub
}
