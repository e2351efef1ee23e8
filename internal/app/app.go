package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/five82/thwip/internal/binding"
	"github.com/five82/thwip/internal/catalog"
	"github.com/five82/thwip/internal/config"
	"github.com/five82/thwip/internal/logging"
	"github.com/five82/thwip/internal/prefs"
	"github.com/five82/thwip/internal/router"
	"github.com/five82/thwip/internal/ui"
	"github.com/five82/thwip/internal/web"
)

// Options configure a thwip run. Empty fields fall back to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/thwip/prefs.toml
	StartPath  string
	APIBase    string
	ListenAddr string
}

// RunBrowser boots the terminal browser until the user quits or ctx is
// cancelled.
func RunBrowser(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closer.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	start := resolveStart(opts.StartPath, userPrefs.LastPath, cfg.StartPath)

	rt, err := newRouter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("browser starting", "api_base", cfg.APIBase, "start", start)

	return ui.Run(ui.Options{
		Context:   ctx,
		Router:    rt,
		StartPath: start,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Logger:    logger,
	})
}

// RunServer serves the HTML surface until ctx is cancelled.
func RunServer(ctx context.Context, opts Options, stderr io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := logging.New(stderr, cfg.LogLevel)

	rt, err := newRouter(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return web.New(rt, logger).ListenAndServe(ctx, cfg.ListenAddr)
}

func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(opts.ListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	return cfg, nil
}

func newRouter(ctx context.Context, cfg config.Config, logger *slog.Logger) (*router.Router, error) {
	client, err := catalog.NewClient(cfg.APIBase,
		catalog.WithTimeout(cfg.RequestTimeout),
		catalog.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}
	return router.New(client, binding.WithContext(ctx), binding.WithLogger(logger)), nil
}

// resolveStart picks the first non-empty of the explicit flag, the path
// remembered from the last session, and the configured start path.
func resolveStart(flagPath, lastPath, configured string) string {
	for _, p := range []string{flagPath, lastPath, configured} {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return router.LandingPath
}
