package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"

	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/cli"
	"github.com/ndewijer/Housing-Price-Forecast-Backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	dbPath := flag.String("db", cfg.Database.Path, "Path to the SQLite database file")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	env := cli.NewEnv("")
	cli.Register(commander, env)

	flag.Parse()
	env.DBPath = *dbPath

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()

	if err := env.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
	os.Exit(int(status))
}
