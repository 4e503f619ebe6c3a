package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/odpf/dotnet-fetch/cmd"
)

const errRequestFail = "unable to complete request successfully"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := cmd.New()
	if err := command.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, errRequestFail)
		os.Exit(1)
	}
}
