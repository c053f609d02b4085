package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/warctools/warc-tracker-sheets/commands"
)

func main() {
	options := commands.Options{
		Debug:   false,
		Workdir: commands.DEFAULT_WORKDIR,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	code := commands.Run(ctx, os.Args[1:], &options, os.Stderr)

	cancel()
	os.Exit(code)
}
