package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"segprep/internal/config"
	"segprep/internal/datasource"
	"segprep/internal/frame"
	"segprep/internal/metrics"
	"segprep/internal/metrics/datadog"
	"segprep/internal/metrics/prompush"
	"segprep/internal/parser"
	"segprep/internal/pipeline"
	"segprep/internal/storage"

	_ "segprep/internal/storage/all"
)

// load reads and validates the config, then installs the metrics backend.
// Validation warnings are logged; errors abort.
func (a *app) load() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)
	issues := config.ValidatePipeline(cfg)
	for _, iss := range issues {
		if iss.Severity == config.SeverityError {
			a.log.Error("config issue", zap.String("path", iss.Path), zap.String("message", iss.Message))
		} else {
			a.log.Warn("config issue", zap.String("path", iss.Path), zap.String("message", iss.Message))
		}
	}
	if config.HasErrors(issues) {
		return fmt.Errorf("config %s is invalid", a.cfgPath)
	}
	a.cfg = cfg
	return a.setupMetrics()
}

func (a *app) setupMetrics() error {
	m := a.cfg.Metrics
	switch m.Backend {
	case "", "none":
		metrics.SetBackend(metrics.Nop())
		a.log.Debug("metrics disabled")
		return nil
	case "prometheus":
		b, err := prompush.NewBackend(a.cfg.Job, m.PushgatewayURL)
		if err != nil {
			return err
		}
		metrics.SetBackend(b)
	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       m.DatadogAddr,
			Namespace:  "segprep.",
			GlobalTags: []string{"job:" + a.cfg.Job},
		})
		if err != nil {
			return err
		}
		metrics.SetBackend(b)
	default:
		return fmt.Errorf("unknown metrics backend %q", m.Backend)
	}
	a.log.Info("metrics enabled", zap.String("backend", m.Backend))
	return nil
}

// dataset opens the source and parses it.
func (a *app) dataset(ctx context.Context) (*frame.Dataset, error) {
	src, err := datasource.New(a.cfg.Source)
	if err != nil {
		return nil, err
	}
	p, err := parser.New(a.cfg.Parser)
	if err != nil {
		return nil, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	ds, err := p.Parse(rc)
	if err != nil {
		return nil, err
	}
	a.log.Info("extract loaded", zap.String("source", a.cfg.Source.Kind), zap.Int("rows", ds.Len()), zap.Int("columns", ds.Width()))
	return ds, nil
}

// pipeline builds a pipeline over ds from the config.
func (a *app) pipeline(ds *frame.Dataset) (*pipeline.Pipeline, error) {
	opt := pipeline.DefaultOptions()
	if a.cfg.Job != "" {
		opt.Job = a.cfg.Job
	}
	d, err := a.cfg.Schema.Descriptor()
	if err != nil {
		return nil, err
	}
	opt.Schema = d
	if a.cfg.Classify.HighCardinality > 0 {
		opt.HighCardinality = a.cfg.Classify.HighCardinality
	}
	opt.Reduce = a.cfg.Reduce.Stage()
	if opt.Impute, err = a.cfg.Impute.Stage(); err != nil {
		return nil, err
	}
	opt.Logger = a.log
	return pipeline.New(ds, opt)
}

// export writes ds to every configured sink concurrently. ds is read-only
// from here on.
func (a *app) export(ctx context.Context, ds *frame.Dataset) error {
	if len(a.cfg.Sinks) == 0 {
		a.log.Warn("no sinks configured; cleaned dataset discarded")
		return nil
	}
	comma := a.cfg.Parser.Options.Rune("comma", ',')
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range a.cfg.Sinks {
		i, s := i, s
		g.Go(func() error {
			log := a.log.With(zap.Int("sink", i), zap.String("kind", s.Kind))
			repo, err := storage.New(ctx, storage.Config{
				Kind:   s.Kind,
				DSN:    s.DB.DSN,
				Table:  s.DB.Table,
				Path:   s.Path,
				Comma:  comma,
				Logger: log,
			})
			if err != nil {
				return fmt.Errorf("sink %d (%s): %w", i, s.Kind, err)
			}
			defer func() {
				if err := repo.Close(); err != nil {
					log.Warn("sink close failed", zap.Error(err))
				}
			}()
			if s.DB.AutoCreateTable {
				if err := storage.EnsureTable(ctx, s.Kind, repo, s.DB.Table, ds); err != nil {
					return fmt.Errorf("sink %d (%s): %w", i, s.Kind, err)
				}
			}
			if _, err := storage.Export(ctx, log, a.cfg.Job, repo, ds, a.cfg.Runtime.BatchSize); err != nil {
				return fmt.Errorf("sink %d (%s): %w", i, s.Kind, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func sinkNames(sinks []config.Sink) string {
	names := make([]string, len(sinks))
	for i, s := range sinks {
		names[i] = s.Kind
	}
	return strings.Join(names, ",")
}
