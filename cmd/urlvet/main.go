package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vetsec/url-security/internal/cli"
)

// version is stamped at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx := context.Background()

	if err := cli.NewRoot(version).ExecuteContext(ctx); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message() != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message())
			}
			os.Exit(exitErr.Code())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
