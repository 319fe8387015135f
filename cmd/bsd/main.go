// Package main is the entry point for the bike sharing dashboard. It loads
// configuration and the dataset, then runs the terminal UI, the HTTP API or
// a one-off import into the SQLite cache.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/db"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/httpapi"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/breakdown"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/hourly"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/version"
)

const importTimeout = 5 * time.Minute

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "-v", "--version":
			fmt.Println(version.Info())
			os.Exit(0)
		case "-h", "--help", "help":
			printUsage()
			os.Exit(0)
		}
	}

	var err error
	switch {
	case len(args) == 0 || args[0] == "tui":
		err = runTUI()
	case args[0] == "serve":
		err = runServe()
	case args[0] == "import":
		err = runImport(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", args[0])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs the global logger writing to out.
func setupLogging(cfg *config.Config, out io.Writer, noColor bool) error {
	return logger.Setup(logger.Options{
		Output:  out,
		Level:   cfg.LogLevel,
		Version: version.GetVersion(),
		Dev:     cfg.IsDev(),
		NoColor: noColor,
	})
}

// runTUI runs the terminal dashboard. Logs go to LOG_FILE so they do not
// corrupt the screen.
func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if err := setupLogging(cfg, logFile, true); err != nil {
		return err
	}

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		breakdown.New(state),
		hourly.New(state, svcManager),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// runServe runs the JSON HTTP API until SIGINT or SIGTERM.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := setupLogging(cfg, os.Stderr, false); err != nil {
		return err
	}

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svcManager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handler := httpapi.NewRouter(httpapi.NewHandler(svcManager, cfg.YearBase))
	return httpapi.Run(ctx, httpapi.NewServer(cfg, handler))
}

// runImport loads a CSV file into the SQLite cache at DATABASE_PATH.
// With --verify the SQL daily totals are checked against the in-memory
// aggregation.
func runImport(args []string) error {
	var csvPath string
	verify := false
	for _, a := range args {
		switch a {
		case "--verify":
			verify = true
		default:
			if csvPath != "" {
				return fmt.Errorf("import takes one CSV path, got %q and %q", csvPath, a)
			}
			csvPath = a
		}
	}
	if csvPath == "" {
		return fmt.Errorf("usage: bsd import <csv> [--verify]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := setupLogging(cfg, os.Stderr, false); err != nil {
		return err
	}

	ds, err := dataset.Load(csvPath)
	if err != nil {
		return err
	}

	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	if err := database.ReplaceRecords(ctx, ds.Source(), ds.Records()); err != nil {
		return err
	}
	logger.Info("import complete", "source", ds.Source(), "rows", ds.Len(), "database", database.Path())
	fmt.Printf("Imported %d rows from %s into %s\n", ds.Len(), ds.Source(), database.Path())

	if !verify {
		return nil
	}

	days, err := database.VerifyImport(ctx, ds.Records())
	if err != nil {
		return err
	}
	fmt.Printf("Verified %d rows and %d daily totals\n", ds.Len(), days)
	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Bike Sharing Dashboard - rental analytics in the terminal and over HTTP

Usage:
  bsd [command] [flags]

Commands:
  tui                     Run the terminal dashboard (default)
  serve                   Serve the JSON API on HTTP_ADDR
  import <csv> [--verify] Load a CSV into the SQLite cache at DATABASE_PATH

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Overview, Breakdown, Hourly, Info)
  Tab/Shift+Tab   Navigate between tabs
  t               Cycle date range presets
  f               Enter a custom date range
  r               Reload the dataset
  ?               Toggle help
  Esc             Close help or dismiss notifications
  q, Ctrl+C       Quit

Environment Variables:
  DATASET_PATH    CSV file or SQLite cache to load (default: df_cleaned.csv)
  DATABASE_PATH   SQLite cache used by import
  HTTP_ADDR       Listen address for serve (default: :8080)
  APP_ENV         dev or prod (default: dev)
  LOG_LEVEL       debug, info, warn or error (default: info)
  LOG_FILE        Log file for the terminal UI
  YEAR_BASE       Calendar year of year code 0 (default: 2011)
  READ_TIMEOUT    HTTP read timeout (default: 10s)
  WATCH_DATASET   Reload when the dataset file changes (default: false)
  NOTIFY          Desktop notification on reload (default: false)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/bikeshare-dashboard/.env
  - ~/.bikeshare/.env`)
}
