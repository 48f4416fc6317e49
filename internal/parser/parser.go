// Package parser selects the parser that turns a source stream into a
// dataset.
package parser

import (
	"fmt"
	"io"

	"segprep/internal/config"
	"segprep/internal/frame"
	"segprep/internal/parser/csv"
)

// Parser turns raw bytes into a dataset.
type Parser interface {
	Parse(r io.Reader) (*frame.Dataset, error)
}

// New returns the parser configured by p.
func New(p config.Parser) (Parser, error) {
	switch p.Kind {
	case "csv", "":
		return csv.NewParser(csv.OptionsFrom(p.Options)), nil
	default:
		return nil, fmt.Errorf("parser: unknown kind %q", p.Kind)
	}
}
