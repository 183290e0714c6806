// Package main is the entry point for the gene enrichment dashboard.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"enrichment-dash/cmd/enrichdash/commands"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer, opts ...commands.Option) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli := commands.New(stdout, stderr, opts...)
	cli.SetArgs(args)
	if err := cli.Execute(ctx); err != nil {
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return 1
	}
	return 0
}
