package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"text/tabwriter"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/monitoring"
	"github.com/sarchlab/cachesim/sweep"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the same trace through many cache configurations.",
	Long: `sweep simulates every combination of the listed parameters over ` +
		`the trace, in parallel, and prints one row per configuration. ` +
		`Invalid combinations are skipped.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	f := sweepCmd.Flags()
	f.IntSlice("sets", []int{64, 256}, "Numbers of sets.")
	f.IntSlice("ways", []int{1, 4}, "Numbers of blocks per set.")
	f.IntSlice("block-sizes", []int{16}, "Block sizes in bytes.")
	f.StringSlice("write-allocate", []string{"write-allocate"},
		"write-allocate and/or no-write-allocate.")
	f.StringSlice("write-policies", []string{"write-back"},
		"write-through and/or write-back.")
	f.StringSlice("eviction", []string{"lru"}, "lru and/or fifo.")
	f.Int("parallel", 0,
		"Number of workers. Defaults to $CSIM_PARALLEL or the number of CPUs.")
	f.String("trace", "",
		"Read the trace from this file instead of the standard input.")
	f.String("record", "",
		"Record the results into NAME.sqlite3. Defaults to $CSIM_RECORD.")
	f.Bool("monitor", false, "Serve the progress of the sweep over HTTP.")
	f.Int("monitor-port", 0,
		"Port of the monitoring server. Defaults to $CSIM_MONITOR_PORT.")
	f.Bool("open-browser", false, "Open the monitoring page in a browser.")
}

func parseSpace(cmd *cobra.Command) (sweep.Space, error) {
	var (
		s   sweep.Space
		err error
	)

	f := cmd.Flags()
	s.NumSets, _ = f.GetIntSlice("sets")
	s.NumBlocksPerSet, _ = f.GetIntSlice("ways")
	s.BlockSizes, _ = f.GetIntSlice("block-sizes")

	tokens, _ := f.GetStringSlice("write-allocate")
	if s.WriteAllocate, err = parseTokens(tokens, parseWriteAllocate); err != nil {
		return sweep.Space{}, err
	}

	tokens, _ = f.GetStringSlice("write-policies")
	if s.WriteThrough, err = parseTokens(tokens, parseWriteThrough); err != nil {
		return sweep.Space{}, err
	}

	tokens, _ = f.GetStringSlice("eviction")
	if s.EvictionPolicies, err = parseTokens(
		tokens, cache.ParseEvictionPolicy); err != nil {
		return sweep.Space{}, err
	}

	return s, nil
}

func parseTokens[T any](tokens []string, parse func(string) (T, error)) ([]T, error) {
	values := make([]T, 0, len(tokens))

	for _, t := range tokens {
		v, err := parse(t)
		if err != nil {
			return nil, err
		}

		values = append(values, v)
	}

	return values, nil
}

func runSweep(cmd *cobra.Command, _ []string) error {
	space, err := parseSpace(cmd)
	if err != nil {
		return err
	}

	configs, skipped := space.Configs()
	if skipped > 0 {
		logger.Printf("skipped %d invalid configurations", skipped)
	}

	if len(configs) == 0 {
		return fmt.Errorf("none of the %d configurations is valid", space.Size())
	}

	in, closeTrace, err := openTrace(cmd)
	if err != nil {
		return err
	}
	defer closeTrace()

	accesses, err := trace.ReadAll(in)
	if err != nil {
		return err
	}

	builder, cleanup, err := sweepBuilder(cmd, len(configs))
	if err != nil {
		return err
	}
	defer cleanup()

	runner := builder.Build()
	logger.Printf("running %d configurations with %d workers",
		len(configs), runner.Parallel())

	results, err := runner.Run(cmd.Context(), configs, accesses)
	if err != nil {
		return err
	}

	return writeSweepReport(cmd.OutOrStdout(), results)
}

func sweepBuilder(
	cmd *cobra.Command,
	numConfigs int,
) (sweep.Builder, func(), error) {
	var cleanups []func()

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	parallel, err := intSetting(cmd, "parallel", envParallel)
	if err != nil {
		return sweep.Builder{}, nil, err
	}

	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	builder := sweep.MakeBuilder().WithParallel(parallel)

	if record := stringSetting(cmd, "record", envRecord); record != "" {
		recorder, err := datarecording.OpenDataRecorder(record)
		if err != nil {
			return sweep.Builder{}, nil, err
		}

		exec := datarecording.NewExecRecorder(recorder)
		exec.Start()
		exec.AddProperty("Configurations", strconv.Itoa(numConfigs))

		builder = builder.WithDataRecorder(recorder)
		cleanups = append(cleanups, func() {
			exec.End()

			if err := recorder.Close(); err != nil {
				logger.Printf("closing recording: %v", err)
			}
		})
	}

	if monitor, _ := cmd.Flags().GetBool("monitor"); monitor {
		port, err := intSetting(cmd, "monitor-port", envMonitorPort)
		if err != nil {
			cleanup()
			return sweep.Builder{}, nil, err
		}

		openBrowser, _ := cmd.Flags().GetBool("open-browser")

		m := monitoring.NewMonitor().
			WithPortNumber(port).
			WithBrowser(openBrowser)
		m.StartServer()

		bar := m.CreateProgressBar("Sweep", uint64(numConfigs))
		builder = builder.
			WithProgressBar(bar).
			WithResultHandler(func(r sweep.Result) { m.RegisterRun(r.Name, r) })
		cleanups = append(cleanups, func() { m.CompleteProgressBar(bar) })
	}

	return builder, cleanup, nil
}

func writeSweepReport(w io.Writer, results []sweep.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Run\tConfiguration\tLoad hits\tLoad misses\t"+
		"Store hits\tStore misses\tTotal cycles\tHit rate")

	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%.4f\n",
			r.Name,
			r.Config,
			r.Stats.LoadHits,
			r.Stats.LoadMisses,
			r.Stats.StoreHits,
			r.Stats.StoreMisses,
			r.Stats.TotalCycles,
			r.Stats.HitRate(),
		)
	}

	return tw.Flush()
}
