package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"survey-transform-service/internal/adapters/history"
	"survey-transform-service/internal/cli"
	"survey-transform-service/internal/config"
)

// main is the CLI composition root: it resolves parameters, opens the
// optional run history and hands off to cli.Execute.
func main() {
	config.LoadEnv()
	log.SetOutput(os.Stderr)

	defaults, err := config.Defaults()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitConfigError)
	}

	inv, err := cli.ParseInvocation(os.Args[1:], defaults)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}

	store, err := history.Open(config.Get(config.KeyHistoryDriver, ""), config.Get(config.KeyHistoryDSN, ""))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitConfigError)
	}

	execErr := cli.Execute(context.Background(), inv, store, os.Stdout)
	if err := store.Close(); err != nil {
		log.Printf("close history: %v", err)
	}
	if execErr != nil {
		fmt.Fprintln(os.Stderr, execErr)
	}
	os.Exit(cli.ExitCode(execErr))
}
