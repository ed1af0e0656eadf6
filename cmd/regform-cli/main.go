package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/pkg/metrics"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/store"
	"github.com/goliatone/go-regform/pkg/submission"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "regform: %v\n", err)
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// run executes one CLI invocation. driver overrides the terminal prompt
// driver when non-nil.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver tui.PromptDriver) error {
	cfg, err := config.Parse("regform", args, stderr)
	if err != nil {
		return err
	}
	logger, err := cfg.Log.Logger(stderr)
	if err != nil {
		return err
	}

	m := metrics.New()
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				logger.Warn("metrics textfile not written", "path", cfg.Metrics.Textfile, "error", err)
			}
		}()
	}

	s, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}()

	ctrl, err := submission.New(ctx, s, submission.WithLogger(logger), submission.WithMetrics(m))
	if err != nil {
		return err
	}

	terminal, err := tui.New(
		tui.WithPromptDriver(driverOrDefault(driver, stdout)),
		tui.WithOutputFormat(tui.OutputFormatPrettyText),
	)
	if err != nil {
		return err
	}
	htmlRenderer, err := html.New()
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(terminal, htmlRenderer)
	if err != nil {
		return err
	}
	orch, err := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithViewOptions(render.WithSecretsHidden()),
	)
	if err != nil {
		return err
	}

	logger.Debug("session started", "session", ctrl.SessionID(), "store", cfg.Store.Backend, "renderer", cfg.Renderer)

	if cfg.Renderer == html.Name {
		out, err := orch.Render(ctx, "", ctrl.Snapshot())
		if err != nil {
			return err
		}
		return writeOutput(cfg.Output, out, stdout)
	}

	if err := terminal.Run(ctx, orch.Form(), ctrl); err != nil {
		return err
	}
	history, err := ctrl.History(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%d submission(s) on record\n", len(history))
	return err
}

func driverOrDefault(driver tui.PromptDriver, stdout io.Writer) tui.PromptDriver {
	if driver != nil {
		return driver
	}
	return tui.NewSurveyDriver(stdout)
}

// openStore builds the configured backend. The returned close func is never
// nil.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemoryStore(nil), noop, nil
	case config.BackendFile:
		s, err := store.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.BackendSQLite:
		s, err := store.OpenSQLite(ctx, cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		s, err := store.NewRedisStore(client, cfg.Redis.Prefix)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return s, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: store backend %q", config.ErrInvalid, cfg.Backend)
	}
}

func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		_, err := stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	_, err := fmt.Fprintf(stdout, "Form written to %s\n", path)
	return err
}
