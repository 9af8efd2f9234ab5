// blockfall is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockfall play           - Play a game locally
//	blockfall serve          - Start SSH server for remote play
//	blockfall scores         - Show high scores
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible piece order
//	--db <path>     - Set database path (default: ~/.blockfall/scores.db)
//
// Environment (also read from ./.env):
//
//	BLOCKFALL_DB          - default for --db
//	BLOCKFALL_SSH_ADDR    - default for serve --ssh
//	BLOCKFALL_WATCH_ADDR  - default for --watch
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/storage"
)

const (
	envDB        = "BLOCKFALL_DB"
	envSSHAddr   = "BLOCKFALL_SSH_ADDR"
	envWatchAddr = "BLOCKFALL_WATCH_ADDR"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blockfall",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - falling blocks in your terminal",
	Long: `Blockfall is a falling-block puzzle game for the terminal.

Available commands:
  play     - Play a game locally
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  blockfall play
  blockfall play --difficulty hard --watch :8080
  blockfall serve --ssh :2222
  blockfall scores --plain`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadEnv reads ./.env and fills flags the user did not set explicitly.
func loadEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not read .env", "error", err)
	}
	envDefault(cmd, "db", envDB, &flagDBPath)
	envDefault(cmd, "ssh", envSSHAddr, &flagSSHAddr)
	envDefault(cmd, "watch", envWatchAddr, &flagWatchAddr)
	return nil
}

func envDefault(cmd *cobra.Command, flag, env string, dst *string) {
	if f := cmd.Flags().Lookup(flag); f == nil || f.Changed {
		return
	}
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
