package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ymatsuda/mailseek/internal/config"
)

var (
	cfgFile string
	homeDir string
	verbose bool
	cfg     *config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mailseek",
	Short: "Find email messages by Message-ID across IMAP mailboxes",
	Long: `mailseek locates messages inside an IMAP account by Message-ID, even when
a plain header search fails: it retries with both bracket forms and header
spellings, follows References/In-Reply-To ancestry, and falls back to a
date-window scan around the timestamp some identifiers embed.

All mailbox selections are read-only; mailseek never modifies the account.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set up logging
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(cfgFile, homeDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

// ExecuteContext runs the root command with the given context,
// enabling graceful shutdown when the context is cancelled.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.mailseek/config.toml)")
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "mailseek home directory (default ~/.mailseek, or MAILSEEK_HOME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
