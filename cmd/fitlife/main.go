// Package main provides the CLI entrypoint for fitlife.
package main

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/fitlife/internal/api"
	"github.com/verte-zerg/fitlife/internal/config"
	"github.com/verte-zerg/fitlife/internal/logging"
	"github.com/verte-zerg/fitlife/internal/model"
	"github.com/verte-zerg/fitlife/internal/ui"
)

const (
	defaultBaseURL  = "http://localhost:5000"
	defaultTimeout  = 10 * time.Second
	defaultRefresh  = 30 * time.Second
	defaultLogLevel = "info"
)

var (
	rootBaseURL  string
	rootTimeout  time.Duration
	rootLogLevel string

	dashRefresh time.Duration
	dashOpen    string
	dashLogFile string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fitlife",
		Short:         "Terminal client for the FitLife weight-loss tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootBaseURL, "base-url", defaultBaseURL, "API base URL")
	rootCmd.PersistentFlags().DurationVar(&rootTimeout, "timeout", defaultTimeout, "request timeout")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.Flags().DurationVar(&dashRefresh, "refresh", defaultRefresh, "progress refresh interval")
	rootCmd.Flags().StringVar(&dashOpen, "open", "", "initial tab by path (/progress) or anchor (#history)")
	rootCmd.Flags().StringVar(&dashLogFile, "log-file", config.DefaultLogPath(), "dashboard log file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLogWeightCmd())
	rootCmd.AddCommand(newDeleteWeightCmd())
	rootCmd.AddCommand(newBMICmd())
	rootCmd.AddCommand(newEnergyCmd())
	rootCmd.AddCommand(newIdealWeightCmd())
	rootCmd.AddCommand(newProfileCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := logging.File(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	logger.WithField("base_url", cfg.BaseURL).Info("dashboard started")

	client := newClient(cfg, logger)
	m := ui.NewModel(client, ui.Options{
		RefreshInterval: cfg.RefreshInterval,
		RequestTimeout:  cfg.Timeout,
		Open:            cfg.Open,
		Logger:          logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

// loadSettings merges defaults, the config file, the environment and flags,
// in increasing order of precedence.
func loadSettings(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg, ".env", config.DefaultEnvPath())

	applyStringConfig(cmd, "base-url", &rootBaseURL, fileCfg.API.BaseURL)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &dashLogFile, fileCfg.Log.File)
	if err := applyDurationConfig(cmd, "timeout", &rootTimeout, fileCfg.API.Timeout); err != nil {
		return model.Config{}, err
	}
	if err := applyDurationConfig(cmd, "refresh", &dashRefresh, fileCfg.Refresh.Interval); err != nil {
		return model.Config{}, err
	}

	cfg := model.Config{
		BaseURL:         strings.TrimRight(strings.TrimSpace(rootBaseURL), "/"),
		Timeout:         rootTimeout,
		RefreshInterval: dashRefresh,
		LogFile:         dashLogFile,
		LogLevel:        rootLogLevel,
		Open:            dashOpen,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newClient(cfg model.Config, logger logrus.FieldLogger) *api.Client {
	return api.New(cfg.BaseURL, api.WithTimeout(cfg.Timeout), api.WithLogger(logger))
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
	if err := ensureConfigFile(path); err != nil {
		return err
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

func ensureConfigFile(path string) error {
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
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fitlife configuration
# Uncomment a value to enable it. CLI flags override config values;
# %s in the environment or a .env file overrides api.base-url.

[api]
# base-url = %q   # FitLife server
# timeout = %q             # Per-request timeout

[refresh]
# interval = %q           # Dashboard progress refresh

[log]
# file = %q
# level = %q              # debug, info, warn or error
`,
		config.BaseURLEnv,
		defaultBaseURL,
		defaultTimeout.String(),
		defaultRefresh.String(),
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("--base-url must be an http(s) URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if cfg.RefreshInterval < time.Second {
		return fmt.Errorf("--refresh must be at least 1s")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		_ = err
	}
}
