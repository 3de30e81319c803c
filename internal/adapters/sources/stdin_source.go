package sources

import (
	"context"
	"io"
)

// StdinSource implements ports.URLSource for standard input
//
// The reader is injected instead of hard-coding os.Stdin so tests can feed
// it from a buffer.
type StdinSource struct {
	r io.Reader
}

// NewStdinSource creates a source reading from r, usually os.Stdin
func NewStdinSource(r io.Reader) *StdinSource {
	return &StdinSource{r: r}
}

// Name identifies the source in logs and error messages
func (s *StdinSource) Name() string {
	return "stdin"
}

// URLs reads every URL candidate from the reader
func (s *StdinSource) URLs(ctx context.Context) ([]string, error) {
	return scanLines(ctx, s.r)
}
