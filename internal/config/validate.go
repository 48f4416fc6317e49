package config

import (
	"fmt"
	"strings"
	"time"

	"segprep/internal/schema"
	"segprep/internal/transformer/builtin"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue is a single lint finding. Path is a dotted path into the config,
// e.g. "sinks[1].db.table".
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static checks over p without mutating it.
// Callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels logs and metrics",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateStages(p)...)
	issues = append(issues, validateSinks(p.Sinks)...)
	issues = append(issues, validateRuntime(p.Runtime)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue
	switch strings.TrimSpace(s.Kind) {
	case "":
		issues = append(issues, Issue{SeverityError, "source.kind", "source.kind must not be empty"})
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{SeverityError, "source.file.path", "file source requires a non-empty path"})
		}
	case "http":
		if !strings.HasPrefix(s.HTTP.URL, "http://") && !strings.HasPrefix(s.HTTP.URL, "https://") {
			issues = append(issues, Issue{SeverityError, "source.http.url", "http source requires an http(s) URL"})
		}
		if s.HTTP.MaxRetries < 0 {
			issues = append(issues, Issue{SeverityError, "source.http.max_retries", "max_retries must not be negative"})
		}
		if s.HTTP.Timeout != "" {
			if _, err := time.ParseDuration(s.HTTP.Timeout); err != nil {
				issues = append(issues, Issue{SeverityError, "source.http.timeout", fmt.Sprintf("invalid duration: %v", err)})
			}
		}
	default:
		issues = append(issues, Issue{SeverityError, "source.kind", fmt.Sprintf("unknown source kind %q", s.Kind)})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue
	switch strings.TrimSpace(p.Kind) {
	case "":
		issues = append(issues, Issue{SeverityError, "parser.kind", "parser.kind must not be empty"})
	case "csv":
		if c := p.Options.String("comma", ","); len([]rune(c)) != 1 {
			issues = append(issues, Issue{SeverityError, "parser.options.comma", fmt.Sprintf("comma must be a single character, got %q", c)})
		}
		if !p.Options.Bool("has_header", true) {
			issues = append(issues, Issue{SeverityError, "parser.options.has_header", "extracts are addressed by column name; a header row is required"})
		}
	default:
		issues = append(issues, Issue{SeverityError, "parser.kind", fmt.Sprintf("unknown parser kind %q", p.Kind)})
	}
	return issues
}

func validateStages(p Pipeline) []Issue {
	var issues []Issue

	if d, err := p.Schema.Descriptor(); err != nil {
		issues = append(issues, Issue{SeverityError, "schema.mode", err.Error()})
	} else if d.Mode == schema.Lenient {
		issues = append(issues, Issue{SeverityWarning, "schema.mode", "lenient mode skips absent columns instead of failing"})
	}

	if p.Classify.HighCardinality < 0 {
		issues = append(issues, Issue{SeverityError, "classify.high_cardinality", "high_cardinality must not be negative"})
	}

	r := p.Reduce
	if r.ColumnRatio < 0 || r.ColumnRatio > 1 {
		issues = append(issues, Issue{SeverityError, "reduce.column_ratio", fmt.Sprintf("column_ratio=%v must be within [0, 1]", r.ColumnRatio)})
	}
	if r.RowMinObserved < 0 {
		issues = append(issues, Issue{SeverityError, "reduce.row_min_observed", "row_min_observed must not be negative"})
	}
	if stage := r.Stage(); stage.Columns && r.Rows != nil && *r.Rows {
		issues = append(issues, Issue{SeverityWarning, "reduce.rows", "rows is ignored while columns is enabled"})
	}

	if _, err := builtin.ParseStrategy(p.Impute.Numeric, true); err != nil {
		issues = append(issues, Issue{SeverityError, "impute.numeric", err.Error()})
	}
	if _, err := builtin.ParseStrategy(p.Impute.Categorical, false); err != nil {
		issues = append(issues, Issue{SeverityError, "impute.categorical", err.Error()})
	}

	if p.Report.TopN < 0 {
		issues = append(issues, Issue{SeverityError, "report.top_n", "top_n must not be negative"})
	}
	return issues
}

var sinkKinds = map[string]bool{
	"csv":      false,
	"sqlite":   true,
	"postgres": true,
	"mssql":    true,
	"mysql":    true,
}

func validateSinks(sinks []Sink) []Issue {
	var issues []Issue
	if len(sinks) == 0 {
		return append(issues, Issue{SeverityWarning, "sinks", "no sinks configured; the cleaned dataset is discarded"})
	}
	for i, s := range sinks {
		base := fmt.Sprintf("sinks[%d]", i)
		isDB, known := sinkKinds[s.Kind]
		if !known {
			issues = append(issues, Issue{SeverityError, base + ".kind", fmt.Sprintf("unknown sink kind %q", s.Kind)})
			continue
		}
		if !isDB {
			if strings.TrimSpace(s.Path) == "" {
				issues = append(issues, Issue{SeverityError, base + ".path", "csv sink requires a path"})
			}
			continue
		}
		if strings.TrimSpace(s.DB.DSN) == "" {
			issues = append(issues, Issue{SeverityError, base + ".db.dsn", "dsn must not be empty"})
		}
		if strings.TrimSpace(s.DB.Table) == "" {
			issues = append(issues, Issue{SeverityError, base + ".db.table", "table must not be empty"})
		}
	}
	return issues
}

func validateRuntime(r RuntimeConfig) []Issue {
	if r.BatchSize < 0 {
		return []Issue{{SeverityError, "runtime.batch_size", "batch_size must not be negative"}}
	}
	return nil
}

func validateMetrics(m MetricsConfig) []Issue {
	switch m.Backend {
	case "", "none":
		return nil
	case "prometheus":
		if m.PushgatewayURL == "" {
			return []Issue{{SeverityError, "metrics.pushgateway_url", "prometheus backend requires pushgateway_url or " + EnvPushgatewayURL}}
		}
	case "datadog":
		if m.DatadogAddr == "" {
			return []Issue{{SeverityError, "metrics.datadog_addr", "datadog backend requires datadog_addr or " + EnvDatadogAddr}}
		}
	default:
		return []Issue{{SeverityError, "metrics.backend", fmt.Sprintf("unknown metrics backend %q", m.Backend)}}
	}
	return nil
}
