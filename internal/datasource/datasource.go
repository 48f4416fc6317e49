// Package datasource opens the raw extract a pipeline run reads from.
package datasource

import (
	"context"
	"fmt"
	"io"
	"time"

	"segprep/internal/config"
	"segprep/internal/datasource/file"
	"segprep/internal/datasource/httpds"
)

// Source yields the bytes of one extract.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// New returns the Source described by cfg.
func New(cfg config.Source) (Source, error) {
	switch cfg.Kind {
	case "file":
		return file.NewLocal(cfg.File.Path), nil
	case "http":
		var timeout time.Duration
		if cfg.HTTP.Timeout != "" {
			d, err := time.ParseDuration(cfg.HTTP.Timeout)
			if err != nil {
				return nil, fmt.Errorf("datasource: http timeout: %w", err)
			}
			timeout = d
		}
		c := httpds.NewClient(httpds.Config{Timeout: timeout, MaxRetries: cfg.HTTP.MaxRetries})
		return httpds.NewSource(c, cfg.HTTP.URL), nil
	default:
		return nil, fmt.Errorf("datasource: unknown kind %q", cfg.Kind)
	}
}
