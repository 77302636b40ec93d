package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"halo_sync/internal/config"
	"halo_sync/internal/halo"
	"halo_sync/internal/markdown"
	"halo_sync/internal/service"
	"halo_sync/internal/vault"
)

var (
	configPath string
	vaultPath  string
	siteName   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "halocli",
	Short: "Sync markdown notes with a Halo site",
	Long: `halocli publishes markdown notes from a local vault to a Halo site
and pulls remote posts back into the vault.

A note remembers which post it belongs to through the reserved "halo"
front matter key; publishing a note without one creates a new post.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if vaultPath != "" {
			cfg.Vault.Path = vaultPath
		}
		logger = setupLogger(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command. Every operation failure surfaces here as a
// single message.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "halo.yaml", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "vault directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&siteName, "site", "s", "", "site name from the config")
}

// selectSite picks the target site: the --site flag, then the configured
// default, then an interactive choice. Dismissing the prompt cancels the
// operation before it starts.
func selectSite() (config.Site, error) {
	if siteName != "" {
		return cfg.SiteByName(siteName)
	}

	site, err := cfg.DefaultSite()
	if err == nil || len(cfg.Sites) == 0 {
		return site, err
	}

	options := make([]huh.Option[string], len(cfg.Sites))
	for i, s := range cfg.Sites {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", s.Name, s.URL), s.Name)
	}

	var chosen string
	if err := huh.NewSelect[string]().
		Title("Choose a site").
		Options(options...).
		Value(&chosen).
		Run(); err != nil {
		return config.Site{}, fmt.Errorf("site selection: %w", err)
	}

	return cfg.SiteByName(chosen)
}

func newService(site config.Site) (*service.SyncService, error) {
	client := halo.NewClient(halo.Config{
		BaseURL:  site.URL,
		Token:    site.Token,
		Username: site.Username,
		Password: site.Password,
	}, &http.Client{Timeout: cfg.Sync.Timeout}, logger)

	v, err := vault.New(cfg.Vault.Path)
	if err != nil {
		return nil, err
	}

	return service.NewSyncService(
		site,
		client,
		v,
		markdown.Render,
		slug.Make,
		logger,
		cfg.Sync,
	), nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
