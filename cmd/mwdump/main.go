package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runWithArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

// runWithArgs executes the command line and returns the process exit code:
// 0 on success, 1 on failure, 2 on usage errors.
func runWithArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	cmd := a.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	failed, err := cmd.ExecuteContextC(ctx)
	err = errors.Join(err, a.close())
	if err == nil {
		return 0
	}

	if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
		return 1
	}
	var usage *usageError
	if errors.As(err, &usage) {
		if failed == nil {
			failed = cmd
		}
		if writeErr := writeln(stderr, failed.UsageString()); writeErr != nil {
			return 1
		}
		return 2
	}
	return 1
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
