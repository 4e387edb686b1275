package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trebuchet-org/proxy-deployer/internal/cli"
	"github.com/trebuchet-org/proxy-deployer/internal/cli/render"
	"github.com/trebuchet-org/proxy-deployer/internal/domain"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAborted):
		fmt.Fprintln(os.Stderr, render.FormatWarning("Aborted"))
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
