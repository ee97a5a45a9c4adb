// swapcell-bench drives concurrent read and write load against a single
// cell and reports throughput plus the number of updates lost to the
// last-writer-wins contract. It measures the primitive; it does not try to
// hide its semantics.
//
// Run:
//
//	go run ./cmd/swapcell-bench --readers=8 --writers=4 --duration=10s
package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/swapcell-dev/swapcell"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

type benchConfig struct {
	Readers      int
	Writers      int
	Duration     time.Duration
	PayloadBytes int
}

type benchCounters struct {
	reads      atomic.Uint64
	commits    atomic.Uint64
	torn       atomic.Uint64
	writeNanos atomic.Uint64
}

// payload is what the cell stores: a consistency check pair plus ballast
// sized by --payload-bytes, so clone cost is part of the measurement.
type payload struct {
	applied int
	check   int
	ballast []byte
}

func (p payload) Clone() payload {
	ballast := make([]byte, len(p.ballast))
	copy(ballast, p.ballast)
	return payload{applied: p.applied, check: p.check, ballast: ballast}
}

func main() {
	cfg := benchConfig{}

	rootCmd := &cobra.Command{
		Use:   "swapcell-bench",
		Short: "Contention benchmark for swapcell",
		Long: `swapcell-bench runs concurrent readers and writers against one cell.

Readers spin on Access and verify that every snapshot is internally
consistent. Writers clone, edit, and commit. Because commits are
unconditional, overlapping writers lose updates; the report includes how
many, as a direct demonstration of the primitive's consistency model.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cfg)
		},
	}

	rootCmd.Flags().IntVar(&cfg.Readers, "readers", runtime.NumCPU(), "concurrent reader goroutines")
	rootCmd.Flags().IntVar(&cfg.Writers, "writers", 4, "concurrent writer goroutines")
	rootCmd.Flags().DurationVar(&cfg.Duration, "duration", 10*time.Second, "how long to run")
	rootCmd.Flags().IntVar(&cfg.PayloadBytes, "payload-bytes", 1024, "ballast bytes cloned per mutation")

	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runBench(cfg benchConfig) error {
	if cfg.Readers < 0 || cfg.Writers < 1 {
		return fmt.Errorf("need at least one writer and a non-negative reader count")
	}

	cell := swapcell.New(payload{ballast: make([]byte, cfg.PayloadBytes)})
	counters := &benchCounters{}
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < cfg.Readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				p := cell.Access()
				if p.applied != p.check {
					counters.torn.Add(1)
				}
				counters.reads.Add(1)
			}
		}()
	}

	for i := 0; i < cfg.Writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				start := time.Now()
				cell.Update(func(p *payload) {
					p.applied++
					p.check++
				})
				counters.writeNanos.Add(uint64(time.Since(start)))
				counters.commits.Add(1)
			}
		}()
	}

	fmt.Printf("running: readers=%d writers=%d duration=%s payload=%dB\n",
		cfg.Readers, cfg.Writers, cfg.Duration, cfg.PayloadBytes)
	time.Sleep(cfg.Duration)
	close(stop)
	wg.Wait()

	final := cell.Access()
	report(cfg, counters, final)

	if counters.torn.Load() > 0 {
		return fmt.Errorf("%d torn snapshots observed", counters.torn.Load())
	}
	return nil
}

func report(cfg benchConfig, c *benchCounters, final *payload) {
	secs := cfg.Duration.Seconds()
	reads := c.reads.Load()
	commits := c.commits.Load()
	lost := commits - uint64(final.applied)

	fmt.Println()
	fmt.Printf("reads:          %d (%.0f/s)\n", reads, float64(reads)/secs)
	fmt.Printf("commits:        %d (%.0f/s)\n", commits, float64(commits)/secs)
	fmt.Printf("applied:        %d\n", final.applied)
	fmt.Printf("lost updates:   %d (%.2f%% of commits)\n", lost, pct(lost, commits))
	fmt.Printf("torn snapshots: %d\n", c.torn.Load())
	if commits > 0 {
		fmt.Printf("avg write:      %s\n", time.Duration(c.writeNanos.Load()/commits))
	}
}

func pct(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
