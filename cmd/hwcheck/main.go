package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"hwcheck/internal/faults"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := newRootCommand()
	err := cmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(os.Stdout, os.Stderr, err))
}

// exitCode surfaces a command error and returns the process status. A missing
// input is a waiting state rather than a failure; anything else is one line on
// stderr.
func exitCode(stdout, stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 1
	}
	if faults.SeverityOf(err) == faults.SeverityWaiting {
		fmt.Fprintln(stdout, err)
		return 0
	}
	fmt.Fprintln(stderr, err)
	return 1
}
