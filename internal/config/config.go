// Package config defines the run configuration for segprep: where the
// extract comes from, how it is parsed, how each cleaning stage is tuned and
// where the cleaned dataset goes. Files are JSON or YAML; both decode into
// the same Pipeline value.
//
// Example (trimmed):
//
//	{
//	  "job":    "general-population",
//	  "source": { "kind": "file", "file": { "path": "data/azdias.csv" } },
//	  "parser": { "kind": "csv", "options": { "comma": ";" } },
//	  "schema": { "mode": "strict" },
//	  "impute": { "numeric": "mean", "categorical": "mode" },
//	  "sinks":  [ { "kind": "sqlite", "db": { "dsn": "out.db", "table": "azdias_clean" } } ]
//	}
package config

import (
	"encoding/json"

	"segprep/internal/schema"
	"segprep/internal/transformer/builtin"
)

// Pipeline is the top-level object decoded from a run file.
type Pipeline struct {
	// Job labels logs and metrics for this run.
	Job string `json:"job" yaml:"job"`

	Source   Source         `json:"source" yaml:"source"`
	Parser   Parser         `json:"parser" yaml:"parser"`
	Schema   SchemaConfig   `json:"schema" yaml:"schema"`
	Classify ClassifyConfig `json:"classify" yaml:"classify"`
	Reduce   ReduceConfig   `json:"reduce" yaml:"reduce"`
	Impute   ImputeConfig   `json:"impute" yaml:"impute"`
	Report   ReportConfig   `json:"report" yaml:"report"`
	Sinks    []Sink         `json:"sinks" yaml:"sinks"`
	Runtime  RuntimeConfig  `json:"runtime" yaml:"runtime"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
}

// Source identifies where the extract comes from.
type Source struct {
	// Kind selects the source: "file" or "http".
	Kind string     `json:"kind" yaml:"kind"`
	File SourceFile `json:"file" yaml:"file"`
	HTTP SourceHTTP `json:"http" yaml:"http"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	Path string `json:"path" yaml:"path"`
}

// SourceHTTP holds configuration for the "http" source kind.
type SourceHTTP struct {
	URL        string `json:"url" yaml:"url"`
	MaxRetries int    `json:"max_retries" yaml:"max_retries"`
	// Timeout is a Go duration string, e.g. "30s".
	Timeout string `json:"timeout" yaml:"timeout"`
}

// Parser selects how the raw bytes become a dataset.
type Parser struct {
	// Kind selects the parser. Current value: "csv".
	Kind string `json:"kind" yaml:"kind"`

	// Options is interpreted by the parser. For csv: comma (string),
	// has_header (bool), detect_types (bool), nan_values ([]string).
	Options Options `json:"options" yaml:"options"`
}

// SchemaConfig overrides parts of the default column descriptor. Empty
// fields keep the defaults.
type SchemaConfig struct {
	Mode        string   `json:"mode" yaml:"mode"`
	Label       *string  `json:"label" yaml:"label"`
	MixedType   []string `json:"mixed_type" yaml:"mixed_type"`
	MixedTokens []string `json:"mixed_tokens" yaml:"mixed_tokens"`
	Exempt      []string `json:"exempt" yaml:"exempt"`
}

// Descriptor applies the overrides to schema.Default.
func (s SchemaConfig) Descriptor() (schema.Descriptor, error) {
	d := schema.Default()
	mode, err := schema.ParseMode(s.Mode)
	if err != nil {
		return d, err
	}
	d.Mode = mode
	if s.Label != nil {
		d.Label = *s.Label
	}
	if len(s.MixedType) > 0 {
		d.MixedType = s.MixedType
	}
	if len(s.MixedTokens) > 0 {
		d.MixedTokens = s.MixedTokens
	}
	if len(s.Exempt) > 0 {
		d.Exempt = s.Exempt
	}
	return d, nil
}

// ClassifyConfig tunes the column classifier.
type ClassifyConfig struct {
	HighCardinality int `json:"high_cardinality" yaml:"high_cardinality"`
}

// ReduceConfig tunes the completeness reducer. Nil flags default to true.
type ReduceConfig struct {
	Columns        *bool   `json:"columns" yaml:"columns"`
	Rows           *bool   `json:"rows" yaml:"rows"`
	ColumnRatio    float64 `json:"column_ratio" yaml:"column_ratio"`
	RowMinObserved int     `json:"row_min_observed" yaml:"row_min_observed"`
}

// Stage returns the configured reducer.
func (r ReduceConfig) Stage() builtin.Reduce {
	out := builtin.NewReduce(nil)
	if r.Columns != nil {
		out.Columns = *r.Columns
	}
	if r.Rows != nil {
		out.Rows = *r.Rows
	}
	if r.ColumnRatio > 0 {
		out.ColumnRatio = r.ColumnRatio
	}
	if r.RowMinObserved > 0 {
		out.RowMinObserved = r.RowMinObserved
	}
	return out
}

// ImputeConfig selects the imputation strategies.
type ImputeConfig struct {
	Numeric         string  `json:"numeric" yaml:"numeric"`
	NumericFill     float64 `json:"numeric_fill" yaml:"numeric_fill"`
	Categorical     string  `json:"categorical" yaml:"categorical"`
	CategoricalFill string  `json:"categorical_fill" yaml:"categorical_fill"`
}

// Stage returns the configured imputer.
func (c ImputeConfig) Stage() (builtin.Impute, error) {
	num, err := builtin.ParseStrategy(c.Numeric, true)
	if err != nil {
		return builtin.Impute{}, err
	}
	cat, err := builtin.ParseStrategy(c.Categorical, false)
	if err != nil {
		return builtin.Impute{}, err
	}
	return builtin.Impute{
		Numeric:         num,
		NumericFill:     c.NumericFill,
		Categorical:     cat,
		CategoricalFill: c.CategoricalFill,
	}, nil
}

// ReportConfig controls the missing-value chart.
type ReportConfig struct {
	TopN  int `json:"top_n" yaml:"top_n"`
	Width int `json:"width" yaml:"width"`
}

// Sink is one destination for the cleaned dataset.
type Sink struct {
	// Kind selects the backend: csv, sqlite, postgres, mssql, mysql.
	Kind string   `json:"kind" yaml:"kind"`
	DB   DBConfig `json:"db" yaml:"db"`
	// Path is the output file for the csv sink.
	Path string `json:"path" yaml:"path"`
}

// DBConfig configures a database sink.
type DBConfig struct {
	DSN string `json:"dsn" yaml:"dsn"`
	// Table may be schema-qualified, e.g. "public.azdias_clean".
	Table string `json:"table" yaml:"table"`
	// AutoCreateTable creates the table from the dataset's column kinds.
	AutoCreateTable bool `json:"auto_create_table" yaml:"auto_create_table"`
}

// RuntimeConfig controls export batching.
type RuntimeConfig struct {
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}

// MetricsConfig selects a metrics backend: "", "none", "prometheus" or
// "datadog".
type MetricsConfig struct {
	Backend        string `json:"backend" yaml:"backend"`
	PushgatewayURL string `json:"pushgateway_url" yaml:"pushgateway_url"`
	DatadogAddr    string `json:"datadog_addr" yaml:"datadog_addr"`
}

// Options is a small helper to fetch typed values from free-form maps. It
// performs minimal coercion and returns the default when a key is absent or
// of an unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers arrive as float64,
// YAML integers as int.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringSlice returns a []string for key when the value is an array of
// strings. Non-string elements are skipped; nil when absent.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// UnmarshalJSON decodes a missing or null options object to an empty map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
