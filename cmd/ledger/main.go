package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/redmonkez12/ledger-api/internal/client/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.PrintError(err.Error()))
		stop()
		os.Exit(1)
	}
}
