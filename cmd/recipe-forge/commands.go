package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lepinkainen/recipe-forge/configs"
	"github.com/lepinkainen/recipe-forge/internal/config"
	"github.com/lepinkainen/recipe-forge/internal/daily"
	"github.com/lepinkainen/recipe-forge/internal/dailycache"
	"github.com/lepinkainen/recipe-forge/internal/recipe"
	"github.com/lepinkainen/recipe-forge/internal/stubserver"
	"github.com/lepinkainen/recipe-forge/internal/upload"
	"github.com/lepinkainen/recipe-forge/pkg/api"
	"github.com/lepinkainen/recipe-forge/pkg/database"
	httputil "github.com/lepinkainen/recipe-forge/pkg/http"
	"github.com/lepinkainen/recipe-forge/pkg/preview"
	"github.com/lepinkainen/recipe-forge/pkg/render"
)

// errRequestFailed makes the process exit non-zero after a failure was printed
var errRequestFailed = errors.New("request failed")

// app bundles what every command needs
type app struct {
	cfg      *config.Config
	client   *api.Client
	renderer *render.Renderer
	format   render.Format
	out      io.Writer
}

func newApp(out io.Writer, styled bool) (*app, error) {
	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	format, err := render.ParseFormat(CLI.Format)
	if err != nil {
		return nil, err
	}

	endpoints, err := api.NewEndpoints(cfg.Backend.BaseURL)
	if err != nil {
		return nil, err
	}

	httpConfig := httputil.DefaultConfig()
	httpConfig.ConnectTimeout = cfg.Backend.Timeout
	httpConfig.ReadTimeout = cfg.Backend.Timeout
	httpConfig.WriteTimeout = cfg.Backend.Timeout
	httpConfig.UserAgent = cfg.Backend.UserAgent

	renderer, err := render.NewRenderer(render.Options{Styled: styled})
	if err != nil {
		return nil, err
	}

	slog.Debug("Backend configured", "base_url", cfg.Backend.BaseURL, "timeout", cfg.Backend.Timeout)
	return &app{
		cfg:      cfg,
		client:   api.NewClient(httputil.NewClient(httpConfig), endpoints),
		renderer: renderer,
		format:   format,
		out:      out,
	}, nil
}

// openStore opens the cache database. The caller closes the returned database.
func (a *app) openStore() (*database.Database, *dailycache.Store, error) {
	path, err := a.cfg.CachePath()
	if err != nil {
		return nil, nil, err
	}

	dbConfig := database.DefaultConfig()
	dbConfig.Path = path
	db, err := database.NewDatabase(dbConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}

	store, err := dailycache.New(db, dailycache.WithInterval(a.cfg.Cache.RefetchInterval))
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, store, nil
}

func (a *app) print(d recipe.Display) error {
	if err := a.renderer.Write(a.out, d, a.format); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	if d.Kind == recipe.KindFailed {
		return errRequestFailed
	}
	return nil
}

func (a *app) uploads() *upload.Service {
	return upload.NewService(a.client, upload.Options{Raw: CLI.Raw})
}

func (a *app) photo(path, caption string, legacy bool) error {
	if legacy {
		if caption != "" {
			slog.Warn("Caption is ignored by the legacy endpoint")
		}
		return a.print(a.uploads().PhotoLegacy(context.Background(), path))
	}
	return a.print(a.uploads().Photo(context.Background(), path, caption))
}

func (a *app) voice(path string) error {
	return a.print(a.uploads().Voice(context.Background(), path))
}

func (a *app) ask(words []string) error {
	return a.print(a.uploads().Ask(context.Background(), strings.Join(words, " ")))
}

// runUpload builds the app and runs one upload command
func runUpload(out io.Writer, fn func(*app) error) error {
	a, err := newApp(out, false)
	if err != nil {
		return err
	}
	return fn(a)
}

func runDaily(out io.Writer, force bool) error {
	a, err := newApp(out, false)
	if err != nil {
		return err
	}

	db, store, err := a.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	refresher := daily.NewRefresher(a.client, store, daily.Options{Force: force})
	refresher.Open()
	display, changed := refresher.Refresh(context.Background())
	slog.Debug("Daily recipe", "changed", changed, "kind", display.Kind)

	if CLI.Raw {
		if text, ok, _ := store.Load(); ok {
			display = recipe.Text(text)
		}
	}
	return a.print(display)
}

func runView() error {
	a, err := newApp(os.Stdout, true)
	if err != nil {
		return err
	}

	db, store, err := a.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := daily.NewRefresher(a.client, store, daily.Options{})
	return preview.Run(ctx, refresher, a.renderer)
}

func runCacheStatus(out io.Writer) error {
	a, err := newApp(out, false)
	if err != nil {
		return err
	}

	db, store, err := a.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	status, err := store.Status()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Cache file:       %s\n", db.Path())
	fmt.Fprintf(a.out, "Refetch interval: %s\n", store.Interval())
	if !status.Present {
		fmt.Fprintln(a.out, "Daily recipe:     not cached")
		return nil
	}

	fmt.Fprintf(a.out, "Daily recipe:     %d bytes\n", len(status.Entry.Text))
	fmt.Fprintf(a.out, "Fetched at:       %s\n", status.Entry.FetchedAt.Local().Format(time.RFC3339))
	due := "no"
	if status.Due {
		due = "yes"
	}
	fmt.Fprintf(a.out, "Next fetch at:    %s (due: %s)\n", status.NextDueAt.Local().Format(time.RFC3339), due)

	if stats, err := store.GetStats(); err == nil {
		fmt.Fprintf(a.out, "Cached entries:   %v\n", stats["total_entries"])
	}
	if info, err := database.GetDatabaseInfo(db); err == nil {
		fmt.Fprintf(a.out, "SQLite version:   %v\n", info["sqlite_version"])
	}
	return nil
}

func runConfigInit(path string, force bool) error {
	if path == "" {
		path = configs.ExampleConfigName
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := configs.ExampleConfig()
	if err != nil {
		return fmt.Errorf("failed to read embedded config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runServeStub(addr string, failStatus int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Stub backend on http://%s (Ctrl+C to stop)\n", addr)
	return stubserver.ListenAndServe(ctx, addr, stubserver.Options{FailStatus: failStatus})
}
