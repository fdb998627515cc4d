package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tannerv/schedsim/internal/config"
	"github.com/tannerv/schedsim/internal/events"
	"github.com/tannerv/schedsim/internal/persistence"
	"github.com/tannerv/schedsim/internal/runner"
	"github.com/tannerv/schedsim/internal/tui"
)

func main() {
	// Signal-aware context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		inputPath = flag.String("input", "", "edge instruction file for a one-shot run")
		workers   = flag.Int("workers", 0, "override the default worker count")
		baseCost  = flag.Int("base", -1, "override the default base cost")
		dbPath    = flag.String("db", "", "override the run-history database path")
		useTUI    = flag.Bool("tui", false, "open the interactive simulation viewer")
		history   = flag.Bool("history", false, "print stored run history and exit")
	)
	flag.Parse()

	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if *workers > 0 {
		cfg.Defaults.Workers = *workers
	}
	if *baseCost >= 0 {
		cfg.Defaults.BaseCost = *baseCost
	}

	var store persistence.Store
	if cfg.DatabasePath != "" {
		s, err := persistence.NewSQLiteStore(ctx, cfg.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening run history database: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	if *history {
		printHistory(ctx, store)
		return
	}

	// A one-shot -input run replaces the configured scenarios.
	if *inputPath != "" {
		name := filepath.Base(*inputPath)
		cfg.Scenarios = map[string]config.ScenarioConfig{name: {Input: *inputPath}}
	}
	if len(cfg.Scenarios) == 0 {
		fmt.Fprintln(os.Stderr, "No scenarios configured; pass -input or add scenarios to config")
		os.Exit(1)
	}

	bus := events.NewEventBus()
	defer bus.Close()

	run := runner.New(cfg, store, bus)

	if !*useTUI {
		runOnce(ctx, run)
		return
	}

	runTUI(ctx, stop, run, bus, cfg)
}

// runOnce simulates all scenarios and prints one line per result.
func runOnce(ctx context.Context, run *runner.Runner) {
	results, err := run.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := false
	for _, res := range results {
		if res.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", res.Scenario, res.Err)
			continue
		}
		fmt.Printf("%s: order %s, makespan %d (%d tasks, %d workers, base cost %d)\n",
			res.Scenario, res.Order, res.Elapsed, res.TaskCount, res.Workers, res.BaseCost)
	}
	if failed {
		os.Exit(1)
	}
}

// runTUI drives the runner in the background while the viewer consumes
// events from the bus.
func runTUI(ctx context.Context, stop context.CancelFunc, run *runner.Runner, bus *events.EventBus, cfg *config.SchedsimConfig) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
		os.Exit(1)
	}
	globalPath := filepath.Join(homeDir, ".schedsim", "config.json")
	projectPath := filepath.Join(".schedsim", "config.json")

	model := tui.New(bus, cfg, globalPath, projectPath)
	p := tea.NewProgram(model, tea.WithAltScreen())

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	go func() {
		if _, err := run.Run(ctx); err != nil {
			log.Printf("runner error: %v", err)
		}
	}()

	select {
	case err := <-errChan:
		// Normal TUI exit (user pressed 'q')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		// Signal received: restore default handling so a second Ctrl+C
		// force-exits, then shut the TUI down with a deadline.
		stop()
		p.Quit()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		select {
		case err := <-errChan:
			if err != nil {
				log.Printf("TUI exit error: %v", err)
			}
		case <-shutdownCtx.Done():
			log.Println("Shutdown timeout exceeded, forcing exit")
		}
	}
}

// printHistory lists stored runs, newest first.
func printHistory(ctx context.Context, store persistence.Store) {
	if store == nil {
		fmt.Fprintln(os.Stderr, "Run history is disabled (no database path configured)")
		os.Exit(1)
	}

	runs, err := store.ListRuns(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No stored runs")
		return
	}
	for _, r := range runs {
		fmt.Printf("%s  %s: order %s, makespan %d (%d tasks, %d workers, base cost %d)\n",
			r.CreatedAt.Format(time.RFC3339), r.Scenario, r.Order, r.Elapsed,
			r.TaskCount, r.Workers, r.BaseCost)
	}
}
