// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/dossier/internal/api"
	"github.com/starford/dossier/internal/catalog"
	"github.com/starford/dossier/internal/content"
	"github.com/starford/dossier/internal/index"
	"github.com/starford/dossier/internal/markdown"
	"github.com/starford/dossier/internal/mcpserver"
	"github.com/starford/dossier/internal/navigator"
	"github.com/starford/dossier/internal/route"
	"github.com/starford/dossier/internal/site"
	"github.com/starford/dossier/internal/sse"
	"github.com/starford/dossier/internal/storage"
	"github.com/starford/dossier/internal/web"
)

const reloadThrottle = 2 * time.Second

// core holds the components shared by the HTTP server and the MCP server.
type core struct {
	store     *storage.FS
	svc       *site.Service
	db        *index.DB
	refresher *index.Refresher
}

func (c *core) Close() error {
	return c.db.Close()
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup loads the catalog, opens storage and the search index and runs the
// initial index sync. cb receives index change events.
func setup(cfg *Config, logger *slog.Logger, cb index.EventCallback) (*core, error) {
	loadCatalog := func() (*catalog.Catalog, error) {
		return catalog.LoadDir(cfg.Content.DataDir)
	}
	c, err := loadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, d := range c.Duplicates() {
		logger.Warn("Duplicate catalog id, first declaration wins", slog.String("entry", d))
	}
	logger.Info("Catalog loaded", slog.Any("counts", c.Summary()))

	if err := os.MkdirAll(cfg.Content.Root, 0o755); err != nil {
		return nil, fmt.Errorf("create content dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Content.Root)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	var fetcher content.Fetcher
	switch cfg.Loader.Mode {
	case LoaderModeHTTP:
		fetcher = content.NewHTTPFetcher(cfg.Loader.BaseURL, cfg.Loader.Timeout)
	default:
		fetcher = content.NewFSFetcher(store)
	}
	loader := content.NewLoader(fetcher, cfg.Loader.ContentBases(), logger)

	catalogs := catalog.NewStore(c)
	svc := site.NewService(catalogs, loader)

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	// The index always reads the local tree, also when pages load over HTTP.
	if _, err := index.Sync(db, c, store, loader.Bases(), logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	return &core{
		store:     store,
		svc:       svc,
		db:        db,
		refresher: index.NewRefresher(db, catalogs, store, loader.Bases(), loadCatalog, logger, cb),
	}, nil
}

// newRouter mounts health checks, the JSON API, raw content and the HTML
// views on one chi router.
func newRouter(cfg *Config, c *core, broker *sse.Broker, logger *slog.Logger) (http.Handler, error) {
	pages, err := web.NewHandler(c.svc, markdown.New(markdown.DefaultAssetPrefix), logger)
	if err != nil {
		return nil, fmt.Errorf("init views: %w", err)
	}

	var events http.Handler
	if broker != nil {
		events = broker
	}
	apiRouter := api.NewRouter(
		api.NewHandler(c.svc, c.db, c.refresher),
		cfg.Auth.AuthEnabled(), cfg.Auth.Token,
		events,
	)
	raw := api.NewRawHandler(c.store, cfg.Content.AssetsDir)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		n, err := c.db.Count()
		if err != nil {
			logger.Error("readiness check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"status":"ok","documents":%d}`, n)
	})

	r.Mount("/api", apiRouter)
	r.Get("/raw/*", raw.ServeMarkdown)
	r.Get("/assets/{filename}", raw.ServeAsset)

	r.Handle("/", pages)
	r.Handle("/*", pages)

	return r, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(app.stdout, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_root", cfg.Content.Root),
		slog.String("data_dir", cfg.Content.DataDir),
		slog.String("loader_mode", cfg.Loader.Mode),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Bool("watch", cfg.Watch.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	broker := sse.NewBroker(reloadThrottle)
	defer broker.Close()

	c, err := setup(cfg, logger, broker.PublishChange)
	if err != nil {
		return err
	}
	defer c.Close()

	handler, err := newRouter(cfg, c, broker, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: handler,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Watch.Enabled {
		g.Go(func() error {
			if err := index.Watch(gCtx, c.refresher, cfg.Content.Root, cfg.Content.DataDir, logger); err != nil {
				logger.Error("watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools over stdio. Logs go to stderr since stdout
// carries the protocol.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := newLogger(app.stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)

	c, err := setup(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	nav := navigator.New(ctx, c.svc, navigator.WithLogger(logger))
	srv := mcpserver.New(c.svc, c.db, nav)

	g, gCtx := errgroup.WithContext(ctx)
	if cfg.Watch.Enabled {
		g.Go(func() error {
			if err := index.Watch(gCtx, c.refresher, cfg.Content.Root, cfg.Content.DataDir, logger); err != nil {
				logger.Error("watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		logger.Info("MCP server starting on stdio")
		return srv.ServeStdio()
	})

	err = g.Wait()
	nav.Wait()
	return err
}

// PrintResolved writes the page for path as JSON to the configured stdout.
// Only the catalog is loaded.
func PrintResolved(path string, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	c, err := catalog.LoadDir(app.config.Content.DataDir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	enc := json.NewEncoder(app.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(site.Lookup(c, route.Resolve(path)))
}
