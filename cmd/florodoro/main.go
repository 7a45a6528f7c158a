package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/florodoro/internal/cli"
	"github.com/alexanderramin/florodoro/internal/config"
	"github.com/alexanderramin/florodoro/internal/db"
	"github.com/alexanderramin/florodoro/internal/repository"
	"github.com/alexanderramin/florodoro/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settingsPath, err := config.Path()
	if err != nil {
		return err
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}

	dbPath, err := settings.DBPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// The timer owns the terminal, so logs go to a file.
	var logOut io.Writer = os.Stderr
	if logPath, err := config.LogPath(); err == nil {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			defer f.Close()
			logOut = f
		}
	}
	logger := service.NewLogger(logOut, settings.Debug)

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	plantRepo := repository.NewSQLitePlantRepo(database)
	breakRepo := repository.NewSQLiteBreakRepo(database)
	dayRepo := repository.NewSQLiteDailyTotalRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	// Pending archive writes are flushed before the database closes.
	archive := service.NewArchiveService(plantRepo, uow, service.ArchiveOptions{
		Logger:   logger,
		Observer: observer,
	})
	defer archive.Close()

	app := &cli.App{
		Archive:      archive,
		Stats:        service.NewStatsService(plantRepo, breakRepo, dayRepo),
		Import:       service.NewImportService(uow, observer),
		Settings:     settings,
		SettingsPath: settingsPath,
		Bell:         os.Stdout,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
