package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/btree-query-bench/btreemap/index"
	"github.com/btree-query-bench/btreemap/index/btreeidx"
	"github.com/btree-query-bench/btreemap/index/hashmap"
	"github.com/btree-query-bench/btreemap/index/lsm"
	"github.com/btree-query-bench/btreemap/index/sortedlist"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	app := cli.App{
		Name:  "btreemap-bench",
		Usage: "insert/lookup throughput of the pre-emptive-splitting B-tree map vs reference structures",
	}
	app.Commands = []*cli.Command{
		cmdBench,
		cmdPlot,
	}
	return app.Run(args)
}

var cmdBench = &cli.Command{
	Name:  "bench",
	Usage: "run the workload suite and write a results CSV",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "n",
			Usage:   "number of keys per workload",
			Value:   1000000,
			EnvVars: []string{"BTREEMAP_BENCH_N"},
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "workload generation seed",
			Value:   1,
			EnvVars: []string{"BTREEMAP_BENCH_SEED"},
		},
		&cli.IntSliceFlag{
			Name:  "degrees",
			Usage: "leaf capacities to sweep for the B-tree map",
			Value: cli.NewIntSlice(8, 32, 128),
		},
		&cli.StringSliceFlag{
			Name:  "structures",
			Usage: "structures to run (btree, sortedlist, hashmap, lsm)",
			Value: cli.NewStringSlice("btree", "hashmap", "lsm"),
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "results CSV path",
			Value: "results.csv",
		},
	},
	Action: runBench,
}

func runBench(cctx *cli.Context) error {
	n := cctx.Int("n")
	seed := cctx.Int64("seed")
	slog.Info("generating workload", "n", n, "seed", seed)
	work := NewWorkload(n, seed)

	f, err := os.Create(cctx.String("out"))
	if err != nil {
		return err
	}
	defer f.Close()
	rw, err := NewResultWriter(f)
	if err != nil {
		return err
	}

	var checksum uint64
	haveChecksum := false
	checked := func(name string, sum uint64) {
		if !haveChecksum {
			checksum, haveChecksum = sum, true
			return
		}
		if sum != checksum {
			slog.Error("checksum mismatch between structures", "structure", name,
				"got", sum, "want", checksum)
		}
	}

	for _, structure := range cctx.StringSlice("structures") {
		switch structure {
		case "btree":
			for _, d := range cctx.IntSlice("degrees") {
				sum, err := runSuite(rw, work, "B-Tree", strconv.Itoa(d), btreeidx.New(d))
				if err != nil {
					return err
				}
				checked(structure, sum)
			}
		case "sortedlist":
			sum, err := runSuite(rw, work, "SortedList", "-", sortedlist.New())
			if err != nil {
				return err
			}
			checked(structure, sum)
		case "hashmap":
			sum, err := runSuite(rw, work, "HashMap", "-", hashmap.New())
			if err != nil {
				return err
			}
			checked(structure, sum)
		case "lsm":
			dir, err := os.MkdirTemp("", "btreemap-bench-pebble")
			if err != nil {
				return err
			}
			defer os.RemoveAll(dir)
			idx, err := lsm.Open(filepath.Join(dir, "db"))
			if err != nil {
				return err
			}
			sum, err := runSuite(rw, work, "Pebble", "-", idx)
			if cerr := idx.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			checked(structure, sum)
		default:
			return fmt.Errorf("unknown structure %q", structure)
		}
	}

	if err := rw.Flush(); err != nil {
		return err
	}
	slog.Info("benchmark complete", "out", cctx.String("out"))
	return nil
}

// runSuite loads the workload into idx, times each phase and records one
// CSV row per phase. It returns the found-lookup checksum so the caller can
// verify every structure observed the same data.
func runSuite(rw *ResultWriter, work *Workload, name, conf string, idx index.Index) (uint64, error) {
	slog.Info("running suite", "structure", name, "config", conf)
	n := int64(work.iters)

	record := func(phase string, elapsed time.Duration, ops int64, stats MemoryStats) error {
		if ops == 0 {
			ops = 1
		}
		return rw.Record(BenchResult{
			Structure: name,
			Config:    conf,
			Phase:     phase,
			LatencyNs: elapsed.Nanoseconds() / ops,
			MemMB:     stats.AllocMB,
			Objects:   stats.HeapObjects,
		})
	}

	start := time.Now()
	if err := work.Insert(idx); err != nil {
		return 0, fmt.Errorf("%s insert: %w", name, err)
	}
	// Sample memory right after the load, before any further churn.
	if err := record("insert", time.Since(start), n, ReadMem()); err != nil {
		return 0, err
	}

	start = time.Now()
	sum, err := work.LookupFound(idx)
	if err != nil {
		return 0, fmt.Errorf("%s lookup: %w", name, err)
	}
	if err := record("lookup_hit", time.Since(start), n, MemoryStats{}); err != nil {
		return 0, err
	}

	start = time.Now()
	hits := work.LookupRand(idx)
	if err := record("lookup_miss", time.Since(start), n, MemoryStats{}); err != nil {
		return 0, err
	}

	start = time.Now()
	scanned, err := work.Scan(idx)
	if err != nil {
		return 0, fmt.Errorf("%s scan: %w", name, err)
	}
	if err := record("scan", time.Since(start), int64(scanned), MemoryStats{}); err != nil {
		return 0, err
	}

	// Mixed workloads run last: they overwrite values and would skew the
	// checksum phases above.
	start = time.Now()
	if err := work.ExecuteMix(idx, OLTP, work.iters/2, 2); err != nil {
		return 0, fmt.Errorf("%s oltp mix: %w", name, err)
	}
	if err := record("mix_oltp", time.Since(start), n/2, MemoryStats{}); err != nil {
		return 0, err
	}

	start = time.Now()
	if err := work.ExecuteMix(idx, OLAP, work.iters/2, 3); err != nil {
		return 0, fmt.Errorf("%s olap mix: %w", name, err)
	}
	if err := record("mix_olap", time.Since(start), n/2, MemoryStats{}); err != nil {
		return 0, err
	}

	slog.Info("suite finished", "structure", name, "config", conf,
		"checksum", sum, "probe_hits", hits, "scanned", scanned)
	return sum, nil
}

var cmdPlot = &cli.Command{
	Name:  "plot",
	Usage: "render a results CSV as a grouped latency bar chart",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "in",
			Usage: "results CSV path",
			Value: "results.csv",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "output PNG path",
			Value: "results.png",
		},
	},
	Action: func(cctx *cli.Context) error {
		f, err := os.Open(cctx.String("in"))
		if err != nil {
			return err
		}
		defer f.Close()
		results, err := ReadResults(f)
		if err != nil {
			return err
		}
		if err := RenderChart(results, cctx.String("out")); err != nil {
			return err
		}
		slog.Info("chart written", "out", cctx.String("out"))
		return nil
	},
}
