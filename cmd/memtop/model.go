package main

import (
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/memkit/cmd/memtop/logger"
	"github.com/joshuapare/memkit/mem"
)

// Sampling cadence and history window for the rate sparkline.
const (
	tickInterval = 250 * time.Millisecond
	historyLen   = 120
)

// Workload defaults. Override via environment: MEMTOP_BUDGET (bytes),
// MEMTOP_WORKERS (count), MEMTOP_MAX (bytes).
const (
	defaultBudget  = 32 << 20
	defaultWorkers = 4
	defaultMax     = 256 << 10
)

// tickMsg carries the sample timestamp.
type tickMsg time.Time

// Model is the main application model
type Model struct {
	keys KeyMap

	width  int
	height int

	budget  int64
	limited *mem.Limited
	load    *workload

	stats     mem.Stats
	sampledAt time.Time
	rates     []float64 // alloc calls per second, newest last

	paused   bool
	showHelp bool
}

// NewModel creates a new TUI model and starts the background workload.
func NewModel() Model {
	budget := envInt64("MEMTOP_BUDGET", defaultBudget)
	workers := int(envInt64("MEMTOP_WORKERS", defaultWorkers))
	max := int(envInt64("MEMTOP_MAX", defaultMax))

	limited := mem.NewLimited(mem.Sys{}, budget)
	mem.SetDefault(limited)

	logger.Info("starting workload", "budget", budget, "workers", workers, "max", max)

	return Model{
		keys:    DefaultKeyMap(),
		budget:  budget,
		limited: limited,
		load:    newWorkload(max, workers),
		stats:   mem.ReadStats(),
	}
}

// envInt64 reads a positive integer from the environment, falling back
// to def when unset or malformed.
func envInt64(name string, def int64) int64 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		logger.Warn("ignoring bad env value", "name", name, "value", v)
		return def
	}
	return n
}

// Init starts the sampling loop
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Close stops the background workload. Called when the TUI exits.
func (m Model) Close() {
	m.load.stop()
}
