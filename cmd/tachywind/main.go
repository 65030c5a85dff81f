// Package main provides the tachywind CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/yacobolo/tachywind"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports a command failure. Unmapped classes are listed one per line.
func printError(w io.Writer, err error) {
	var unmapped *tachywind.UnmappedClassesError
	if !errors.As(err, &unmapped) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Error: replace refused, %d used %s no mapping:\n",
		len(unmapped.Classes), pluralize(len(unmapped.Classes), "class has", "classes have"))
	for _, name := range unmapped.Classes {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w, "Map them with `tachywind map <class> <replacement>` or `tachywind restore`.")
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
