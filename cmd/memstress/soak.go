package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joshuapare/memkit/buf"
	"github.com/joshuapare/memkit/mem"
	"github.com/spf13/cobra"
)

var (
	soakWorkers int
	soakOps     int
	soakBudget  int64
	soakMax     int
	soakSeed    int64
)

func init() {
	cmd := newSoakCmd()
	cmd.Flags().IntVar(&soakWorkers, "workers", 8, "Number of concurrent workers")
	cmd.Flags().IntVar(&soakOps, "ops", 10000, "Total operations across all workers")
	cmd.Flags().Int64Var(&soakBudget, "budget", 16<<20, "Shared allocation budget in bytes")
	cmd.Flags().IntVar(&soakMax, "max", 1<<20, "Largest block size a worker may request")
	cmd.Flags().Int64Var(&soakSeed, "seed", 1, "Random seed for request sizes")
	rootCmd.AddCommand(cmd)
}

func newSoakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "soak",
		Short: "Storm the capture machinery with concurrent workers",
		Long: `The soak command runs concurrent workers against one shared allocation
budget. Each operation grabs a random batch of blocks or builds a buffer
inside a capture boundary; under contention some operations hit the
budget wall, and those failures must come back as recoverable errors.

After the storm the command cross-checks the books: every captured
failure is counted, and the budget must be fully restored — a shortfall
means a leak.

Example:
  memstress soak
  memstress soak --workers 16 --budget 4194304
  memstress soak --ops 100000 --max 65536 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSoak()
		},
	}
	return cmd
}

type SoakReport struct {
	Workers     int
	Ops         int
	Budget      int64
	MaxBlock    int
	Elapsed     string
	OpsPerSec   float64
	OK          int
	Captured    int
	Errors      int
	AllocCalls  int64
	ReserveHits int64
	Recovered   int64
	Remaining   int64
}

type soakResult struct {
	ok       int
	captured int
	errs     int
}

const blockAlign = 8

// batchOp holds several blocks live at once so workers actually contend
// for the budget. Blocks already obtained are freed even when a later
// request in the batch fails.
func batchOp(r *rand.Rand, max int) error {
	batch := 1 + r.IntN(4)
	return mem.TryCatch(func() error {
		blocks := make([][]byte, 0, batch)
		defer func() {
			for _, b := range blocks {
				_ = mem.Free(b, mem.Layout{Size: len(b), Align: blockAlign})
			}
		}()
		for i := 0; i < batch; i++ {
			size := 1 + r.IntN(max)
			b := mem.MustAlloc(mem.Layout{Size: size, Align: blockAlign})
			blocks = append(blocks, b)
			for off := 0; off < len(b); off += 4096 {
				b[off] = byte(off)
			}
		}
		return nil
	})
}

// bufferOp grows a buffer to a random target through the raising append
// path, the way library callers build payloads.
func bufferOp(r *rand.Rand, max int) error {
	target := 1 + r.IntN(max)
	return mem.TryCatch(func() error {
		var b buf.Buffer
		defer b.Free()
		b.Grow(target)
		for b.Len() < target {
			b.AppendString("soak payload soak payload soak payload\n")
		}
		return nil
	})
}

func runSoak() error {
	if soakWorkers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", soakWorkers)
	}
	if soakOps <= 0 {
		return fmt.Errorf("ops must be positive, got %d", soakOps)
	}
	if soakBudget <= 0 {
		return fmt.Errorf("budget must be positive, got %d", soakBudget)
	}
	if soakMax <= 0 {
		return fmt.Errorf("max must be positive, got %d", soakMax)
	}

	limited := mem.NewLimited(mem.Sys{}, soakBudget)
	prev := mem.SetDefault(limited)
	defer mem.SetDefault(prev)

	printVerbose("soaking: %d workers, %d ops, budget %s\n",
		soakWorkers, soakOps, humanize.IBytes(uint64(soakBudget)))

	before := mem.ReadStats()
	start := time.Now()

	results := make(chan soakResult, soakWorkers)
	var wg sync.WaitGroup
	perWorker := soakOps / soakWorkers
	for id := 0; id < soakWorkers; id++ {
		ops := perWorker
		if id == 0 {
			ops += soakOps % soakWorkers
		}
		wg.Add(1)
		go func(id, ops int) {
			defer wg.Done()
			r := rand.New(rand.NewPCG(uint64(soakSeed), uint64(id)))
			var res soakResult
			for i := 0; i < ops; i++ {
				var err error
				if i%2 == 0 {
					err = batchOp(r, soakMax)
				} else {
					err = bufferOp(r, soakMax)
				}
				switch {
				case err == nil:
					res.ok++
				case errors.As(err, new(mem.AllocError)):
					res.captured++
				default:
					res.errs++
				}
			}
			results <- res
		}(id, ops)
	}
	wg.Wait()
	close(results)

	elapsed := time.Since(start)
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	after := mem.ReadStats()

	report := SoakReport{
		Workers:     soakWorkers,
		Ops:         soakOps,
		Budget:      soakBudget,
		MaxBlock:    soakMax,
		Elapsed:     elapsed.Round(time.Millisecond).String(),
		OpsPerSec:   float64(soakOps) / elapsed.Seconds(),
		AllocCalls:  after.AllocCalls - before.AllocCalls,
		ReserveHits: after.ReserveHits - before.ReserveHits,
		Recovered:   after.Recovered - before.Recovered,
		Remaining:   limited.Remaining(),
	}
	for res := range results {
		report.OK += res.ok
		report.Captured += res.captured
		report.Errors += res.errs
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nSoak Results\n")
	printInfo("  Workers: %d\n", report.Workers)
	printInfo("  Operations: %s in %s (%.0f ops/sec)\n",
		humanize.Comma(int64(report.Ops)), report.Elapsed, report.OpsPerSec)
	printInfo("  Budget: %s\n", humanize.IBytes(uint64(report.Budget)))
	printInfo("  Succeeded: %s\n", humanize.Comma(int64(report.OK)))
	printInfo("  Captured failures: %s\n", humanize.Comma(int64(report.Captured)))
	printInfo("  Alloc calls: %s (%s served from emergency slots)\n",
		humanize.Comma(report.AllocCalls), humanize.Comma(report.ReserveHits))
	printInfo("  Recovered at boundaries: %s\n", humanize.Comma(report.Recovered))

	if report.Errors > 0 {
		printError("%d operations failed with non-allocation errors\n", report.Errors)
	}
	if report.Remaining != soakBudget {
		printError("budget leak: %s bytes unaccounted\n",
			humanize.Comma(soakBudget-report.Remaining))
		return fmt.Errorf("budget leak detected")
	}
	printInfo("  Budget restored: %s remaining\n", humanize.IBytes(uint64(report.Remaining)))
	return nil
}
