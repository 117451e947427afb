package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/memkit/cmd/memtop/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first
	args := os.Args[1:]
	debugMode := false

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	for _, arg := range filteredArgs {
		switch arg {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("memtop %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built: %s\n", date)
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n", arg)
			printUsage()
			os.Exit(1)
		}
	}

	logger.Info("starting memtop", "debug", debugMode)

	m := NewModel()

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Stop the background workload. Close is idempotent, so this is
	// safe even when the quit handler already ran it.
	if model, ok := finalModel.(Model); ok {
		model.Close()
	}

	logger.Info("memtop exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: memtop [options]\n")
	fmt.Fprintf(os.Stderr, "Try 'memtop --help' for more information.\n")
}

func printHelp() {
	fmt.Println("memtop - Live dashboard for allocation failure capture")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  memtop [options]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Runs a synthetic allocation workload against a byte budget and")
	fmt.Println("  displays the shim counters live: allocation traffic, captured")
	fmt.Println("  failures, emergency slot hits, and budget usage.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    p/space     Pause or resume the workload")
	fmt.Println("    +/-         Add or remove a worker")
	fmt.Println("    r           Reset the rate history")
	fmt.Println("    ?           Show key help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.memtop/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT:")
	fmt.Println("  MEMTOP_BUDGET   Allocation budget in bytes (default 33554432)")
	fmt.Println("  MEMTOP_WORKERS  Initial worker count (default 4)")
	fmt.Println("  MEMTOP_MAX      Largest block a worker requests (default 262144)")
	fmt.Println()
	fmt.Println("For scripted stress runs, use the 'memstress' command instead.")
}
