package csv

import (
	"encoding/csv"
	"fmt"
	"io"

	"segprep/internal/frame"
)

// Write renders ds as delimited text with a header row. Missing cells are
// written as empty fields; numeric cells use the shortest exact decimal form.
func Write(w io.Writer, ds *frame.Dataset, comma rune) error {
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}
	if err := cw.Write(ds.Names()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	cols := ds.Columns()
	rec := make([]string, len(cols))
	for i := 0; i < ds.Len(); i++ {
		for j, c := range cols {
			rec[j] = c.Str(i)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
