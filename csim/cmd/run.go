package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/mem/trace"
	"github.com/sarchlab/cachesim/sweep"
	"github.com/spf13/cobra"
)

type runOptions struct {
	config      cache.Config
	record      string
	logAccesses bool
	accessLog   io.Writer
}

func runSingle(cmd *cobra.Command, args []string) error {
	config, err := parseConfig(args)
	if err != nil {
		return err
	}

	logAccesses, _ := cmd.Flags().GetBool("log-accesses")

	opts := runOptions{
		config:      config,
		record:      stringSetting(cmd, "record", envRecord),
		logAccesses: logAccesses,
		accessLog:   cmd.ErrOrStderr(),
	}

	in, closeTrace, err := openTrace(cmd)
	if err != nil {
		return err
	}
	defer closeTrace()

	return simulate(opts, in, cmd.OutOrStdout())
}

// openTrace returns the trace file given by the trace flag, or the standard
// input of the command.
func openTrace(cmd *cobra.Command) (io.Reader, func(), error) {
	path, _ := cmd.Flags().GetString("trace")
	if path == "" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening trace: %w", err)
	}

	return f, func() { f.Close() }, nil
}

// simulate runs one configuration over the trace and writes the report. The
// configuration and the whole trace are checked before anything is printed
// or recorded.
func simulate(opts runOptions, in io.Reader, out io.Writer) error {
	sim, err := cache.MakeBuilder().WithConfig(opts.config).Build("Cache")
	if err != nil {
		return err
	}

	accesses, err := trace.ReadAll(in)
	if err != nil {
		return err
	}

	logger.Printf("simulating %s over %d accesses", opts.config, len(accesses))

	if opts.logAccesses {
		sim.AcceptHook(trace.NewTracer(log.New(opts.accessLog, "", 0)))
	}

	var (
		recorder datarecording.DataRecorder
		exec     *datarecording.ExecRecorder
	)

	if opts.record != "" {
		recorder, err = datarecording.OpenDataRecorder(opts.record)
		if err != nil {
			return err
		}

		exec = datarecording.NewExecRecorder(recorder)
		exec.Start()
		exec.AddProperty("Configuration", opts.config.String())

		recorder.CreateTable(sweep.RunTableName, sweep.RunEntry{})
		sim.AcceptHook(trace.NewDBTracer(recorder))
	}

	stats := sim.Run(accesses)

	if recorder != nil {
		recorder.InsertData(sweep.RunTableName,
			sweep.NewRunEntry(sim.Name(), opts.config, stats))
		exec.End()

		if err := recorder.Close(); err != nil {
			return fmt.Errorf("closing recording: %w", err)
		}
	}

	return writeReport(out, stats)
}
