package main

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/joshuapare/memkit/mem"
	"github.com/spf13/cobra"
)

var (
	probeBudget int64
	probeAlign  int
)

func init() {
	cmd := newProbeCmd()
	cmd.Flags().Int64Var(&probeBudget, "budget", 64<<20, "Allocation budget in bytes")
	cmd.Flags().IntVar(&probeAlign, "align", 1, "Required block alignment (power of two)")
	rootCmd.AddCommand(cmd)
}

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Find the largest satisfiable allocation under a budget",
		Long: `The probe command binary-searches for the largest single allocation the
configured budget can satisfy. Every attempt runs inside a capture
boundary, so failed requests surface as recoverable errors rather than
crashes, and the budget is intact when the search finishes.

While a boundary is active the capture machinery keeps mem.ReserveBytes()
bytes of the budget primed for failure reporting, so the largest block
lands slightly below the budget itself.

Example:
  memstress probe
  memstress probe --budget 1048576
  memstress probe --budget 1048576 --align 64 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe()
		},
	}
	return cmd
}

type ProbeReport struct {
	Budget    int64
	Align     int
	Largest   int
	Attempts  int
	Captured  int
	Remaining int64
}

func runProbe() error {
	if probeBudget <= 0 {
		return fmt.Errorf("budget must be positive, got %d", probeBudget)
	}
	if probeAlign <= 0 || probeAlign&(probeAlign-1) != 0 {
		return fmt.Errorf("align must be a power of two, got %d", probeAlign)
	}

	limited := mem.NewLimited(mem.Sys{}, probeBudget)
	prev := mem.SetDefault(limited)
	defer mem.SetDefault(prev)

	report := ProbeReport{Budget: probeBudget, Align: probeAlign}

	attempt := func(size int) bool {
		report.Attempts++
		l := mem.Layout{Size: size, Align: probeAlign}
		err := mem.TryCatch(func() error {
			b := mem.MustAlloc(l)
			return mem.Free(b, l)
		})
		if err == nil {
			printVerbose("probe %s: ok\n", humanize.IBytes(uint64(size)))
			return true
		}
		report.Captured++
		printVerbose("probe %s: %v\n", humanize.IBytes(uint64(size)), err)
		return false
	}

	// Double until the first failure brackets the answer, then bisect.
	lo, hi := 0, 1
	for attempt(hi) {
		lo = hi
		if hi > math.MaxInt/2 {
			break
		}
		hi *= 2
	}
	for lo+1 < hi {
		mid := lo + (hi-lo)/2
		if attempt(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	report.Largest = lo
	report.Remaining = limited.Remaining()

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nProbe Results\n")
	printInfo("  Budget: %s (%s bytes)\n",
		humanize.IBytes(uint64(report.Budget)), humanize.Comma(report.Budget))
	printInfo("  Align: %d\n", report.Align)
	printInfo("  Largest block: %s (%s bytes)\n",
		humanize.IBytes(uint64(report.Largest)), humanize.Comma(int64(report.Largest)))
	printInfo("  Attempts: %d (%d captured failures)\n", report.Attempts, report.Captured)
	printInfo("  Budget remaining: %s bytes\n", humanize.Comma(report.Remaining))
	return nil
}
