// Package main provides the CLI entrypoint for scramble.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/scramble/internal/config"
	"github.com/verte-zerg/scramble/internal/console"
	"github.com/verte-zerg/scramble/internal/httpserver"
	"github.com/verte-zerg/scramble/internal/model"
	"github.com/verte-zerg/scramble/internal/session"
	"github.com/verte-zerg/scramble/internal/stats"
	"github.com/verte-zerg/scramble/internal/tui"
)

const (
	defaultLang       = "en"
	defaultAddr       = ":8080"
	defaultIdleTTL    = 30 * time.Minute
	defaultPlayLevel  = "warn"
	defaultServeLevel = "info"
)

var (
	gameLang  string
	gameRoots string
	gameDict  string
	gameSeed  int64
	playPlain bool

	serveAddr    string
	serveIdleTTL time.Duration
	logLevel     string

	dictLang  string
	dictRoots bool
)

func main() {
	_ = godotenv.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "scramble",
		Short:         "Word scramble game: spell new words from the letters of a root word",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	addGameFlags(rootCmd)
	rootCmd.Flags().BoolVar(&playPlain, "plain", false, "line mode: read words from stdin instead of the TUI")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDictCmd())

	return rootCmd
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gameLang, "lang", defaultLang, "dictionary language code")
	cmd.Flags().StringVar(&gameRoots, "roots", "", "root word list file (one word per line)")
	cmd.Flags().StringVar(&gameDict, "dict", "", "dictionary file (one word per line)")
	cmd.Flags().Int64Var(&gameSeed, "seed", 0, "random seed for root word selection (0: time based)")
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game (default command)",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
	addGameFlags(cmd)
	cmd.Flags().BoolVar(&playPlain, "plain", false, "line mode: read words from stdin instead of the TUI")
	return cmd
}

func loadGameConfig(cmd *cobra.Command, defaultLevel string) (model.Config, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(cmd, fileCfg, defaultLevel)

	applyStringConfig(cmd, "lang", &gameLang, fileCfg.Game.Lang)
	applyStringConfig(cmd, "roots", &gameRoots, fileCfg.Game.Roots)
	applyStringConfig(cmd, "dict", &gameDict, fileCfg.Game.Dictionary)
	applyInt64Config(cmd, "seed", &gameSeed, fileCfg.Game.Seed)

	cfg := model.Config{
		Lang:           strings.ToLower(strings.TrimSpace(gameLang)),
		RootsPath:      gameRoots,
		DictionaryPath: gameDict,
		Seed:           gameSeed,
		Plain:          playPlain,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, config.FileConfig{}, err
	}
	return cfg, fileCfg, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadGameConfig(cmd, defaultPlayLevel)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	provider, closeFn, err := loadCorpus(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	sess := session.New(provider, cfg.Lang, session.WithPicker(newPicker(cfg.Seed)))

	if cfg.Plain || !term.IsTerminal(int(os.Stdin.Fd())) {
		if err := console.Run(ctx, os.Stdin, cmd.OutOrStdout(), sess); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("game aborted: %w", err)
		}
		return stats.RenderSummary(cmd.OutOrStdout(), sess.Snapshot())
	}

	if err := sess.Start(); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	m := tui.NewModel(sess)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := m.Err(); err != nil {
		return fmt.Errorf("game aborted: %w", err)
	}
	return stats.RenderSummary(cmd.OutOrStdout(), sess.Snapshot())
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games over a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	addGameFlags(cmd)
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().DurationVar(&serveIdleTTL, "idle-ttl", defaultIdleTTL, "drop sessions idle for this long (0: never)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, fileCfg, err := loadGameConfig(cmd, defaultServeLevel)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	if err := applyDurationConfig(cmd, "idle-ttl", &serveIdleTTL, fileCfg.Server.IdleTTL); err != nil {
		return err
	}
	srvCfg := model.ServerConfig{Addr: serveAddr, IdleTTL: serveIdleTTL}
	if srvCfg.IdleTTL < 0 {
		return fmt.Errorf("--idle-ttl must not be negative")
	}

	provider, closeFn, err := loadCorpus(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	reg := session.NewRegistry(provider, cfg.Lang, session.WithPicker(newPicker(cfg.Seed)))
	srv := httpserver.New(reg, httpserver.WithIdleTTL(srvCfg.IdleTTL))
	log.Info().Str("addr", srvCfg.Addr).Str("lang", cfg.Lang).Int("roots", len(provider.RootWords())).
		Dur("idle_ttl", srvCfg.IdleTTL).Msg("starting server")
	if err := srv.Start(cmd.Context(), srvCfg.Addr); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# scramble configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# lang = %q               # Dictionary language code
# roots = "/path/to/roots.txt"       # Root word list, one word per line
# dictionary = "/path/to/words.txt"  # Dictionary, one word per line
# seed = 0                 # Random seed for root word selection (0: time based)

[server]
# addr = %q           # Listen address for "scramble serve"
# idle_ttl = %q           # Drop sessions idle for this long ("0s": never)

[log]
# level = %q            # debug, info, warn, error
`,
		defaultLang,
		defaultAddr,
		defaultIdleTTL.String(),
		defaultPlayLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	return nil
}
