package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Source serves one URL as an extract.
type Source struct {
	c   *Client
	url string
}

// NewSource binds url to c.
func NewSource(c *Client, url string) *Source { return &Source{c: c, url: url} }

// Open fetches the extract. Any non-2xx final status is an error.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.c.Get(ctx, s.url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("httpds: GET %s: %s", s.url, http.StatusText(resp.StatusCode))
	}
	return resp.Body, nil
}
