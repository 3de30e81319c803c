package sources

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileSource implements ports.URLSource for newline-delimited files
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from the given file path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name identifies the file in logs and error messages
func (s *FileSource) Name() string {
	return s.path
}

// URLs reads every URL candidate in the file
func (s *FileSource) URLs(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	return scanLines(ctx, f)
}

// scanLines collects URL candidates from r, one per line. Blank lines and
// '#' comment lines are skipped, surrounding whitespace is trimmed.
func scanLines(ctx context.Context, r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	// Padded fraud URLs can exceed the scanner's default 64KB token limit
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	urls := make([]string, 0)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URLs: %w", err)
	}

	return urls, nil
}
