package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/carewise/internal/cli"
	"github.com/alexanderramin/carewise/internal/config"
	"github.com/alexanderramin/carewise/internal/db"
	"github.com/alexanderramin/carewise/internal/intelligence"
	"github.com/alexanderramin/carewise/internal/llm"
	"github.com/alexanderramin/carewise/internal/repository"
	"github.com/alexanderramin/carewise/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	recordRepo := repository.NewJSONRecordRepo(cfg.DataDir)
	adviceRepo := repository.NewSQLiteAdviceRepo(database)

	var useCaseObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	var llmObserver llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		useCaseObserver = service.NewSlogUseCaseObserver(nil)
		llmObserver = llm.NewLogObserver(nil)
	}

	// Wire services
	history := service.NewHistoryService(adviceRepo, time.Now, useCaseObserver)
	records := service.NewRecordService(recordRepo, time.Now, useCaseObserver)

	client, err := llm.NewClient(cfg.LLM, llmObserver)
	if err != nil {
		return err
	}

	app := &cli.App{
		Advice:   intelligence.NewAdviceService(client, time.Now, history),
		Records:  records,
		History:  history,
		LLM:      cfg.LLM,
		Client:   client,
		HTTPAddr: cfg.HTTPAddr,
		Clock:    time.Now,
	}
	defer app.Close()

	// Detect interactive terminal for the TUI-by-default entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
