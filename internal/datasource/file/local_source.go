// Package file opens extracts from the local disk.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens one file path.
type Local struct{ path string }

// NewLocal returns a Local bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the configured path.
func (l *Local) Path() string { return l.path }

// Open returns the file for reading. A canceled ctx short-circuits before the
// filesystem is touched. Errors keep os.ErrNotExist and friends reachable
// through errors.Is.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open extract %s: %w", l.path, err)
	}
	return f, nil
}
