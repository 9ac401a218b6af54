package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/studyplan/internal/cli"
	"github.com/alexanderramin/studyplan/internal/planclient"
	"github.com/alexanderramin/studyplan/internal/server"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/alexanderramin/studyplan/internal/session"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	clientCfg := planclient.LoadConfig()

	var (
		callObserver    planclient.Observer     = planclient.NoopObserver{}
		useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	)
	if clientCfg.LogCalls {
		callObserver = planclient.NewLogObserver(os.Stderr)
		useCaseObserver = service.NewLogUseCaseObserver(os.Stderr)
	}

	// Downloads from the planner land here; generate --export takes a flag.
	exportDir := os.Getenv("STUDYPLAN_EXPORT_DIR")
	if exportDir == "" {
		exportDir = "."
	}

	app := &cli.App{
		Client:       planclient.New(clientCfg, callObserver),
		Session:      session.New(),
		Observer:     useCaseObserver,
		ServerConfig: server.LoadConfig(),
		ExportDir:    exportDir,
	}

	// Detect interactive terminal for the planner entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
