package ports

import "context"

// URLSource defines the contract for reading URL candidates from an input
type URLSource interface {
	// Name identifies the source in logs and error messages
	Name() string

	// URLs reads all URL candidates the source holds, one per input line.
	// Implementations skip blank lines and '#' comment lines.
	URLs(ctx context.Context) ([]string, error)
}
