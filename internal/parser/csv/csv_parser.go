// Package csv loads delimited extracts into a frame.Dataset and writes
// datasets back out. Reading goes through gota's CSV loader for type
// detection: integer and float columns become numeric, everything else is an
// object column. Cells matching the NaN vocabulary are missing.
package csv

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/text/unicode/norm"

	"segprep/internal/config"
	"segprep/internal/frame"
)

// DefaultNaNValues are the cell values read as missing.
var DefaultNaNValues = []string{"", "NA", "NaN", "<nil>"}

// Options configures Read. Zero values select the defaults.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune
	// DetectTypes enables numeric detection. When false every column is an
	// object column.
	DetectTypes bool
	// NaNValues replaces DefaultNaNValues when non-nil.
	NaNValues []string
}

// OptionsFrom reads parser options from a config options bag.
func OptionsFrom(o config.Options) Options {
	opt := Options{
		Comma:       o.Rune("comma", ','),
		DetectTypes: o.Bool("detect_types", true),
	}
	if nv := o.StringSlice("nan_values"); nv != nil {
		opt.NaNValues = nv
	}
	return opt
}

// Parser reads CSV input with fixed Options.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse implements parser.Parser.
func (p *Parser) Parse(r io.Reader) (*frame.Dataset, error) { return Read(r, p.opt) }

// utf8BOM is skipped at the start of the input if present.
const utf8BOM = "\uFEFF"

// Read loads r into a dataset. The first row must be a header; header names
// are trimmed, stripped of a leading BOM and NFC-normalized.
func Read(r io.Reader, opt Options) (*frame.Dataset, error) {
	comma := opt.Comma
	if comma == 0 {
		comma = ','
	}
	nan := opt.NaNValues
	if nan == nil {
		nan = DefaultNaNValues
	}

	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, []byte(utf8BOM)) {
		_, _ = br.Discard(len(utf8BOM))
	}

	df := dataframe.ReadCSV(br,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(opt.DetectTypes),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nan),
		dataframe.WithDelimiter(comma),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("csv: load: %w", df.Err)
	}

	names := normalizeHeaders(df.Names())
	cols := make([]*frame.Column, 0, len(names))
	for i, raw := range df.Names() {
		cols = append(cols, toColumn(names[i], df.Col(raw)))
	}
	ds, err := frame.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return ds, nil
}

func toColumn(name string, s series.Series) *frame.Column {
	switch s.Type() {
	case series.Int, series.Float:
		return frame.NewNumeric(name, s.Float())
	default:
		vals := s.Records()
		missing := s.IsNaN()
		for i, m := range missing {
			if m {
				vals[i] = ""
			}
		}
		return frame.NewObject(name, vals, missing)
	}
}

// normalizeHeaders trims and NFC-normalizes header names.
func normalizeHeaders(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		c = strings.TrimSpace(c)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		out[i] = norm.NFC.String(c)
	}
	return out
}
