// Package cmd provides the command-line interface of csim.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var logger = log.New(io.Discard, "csim: ", 0)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "csim numSets numBlocksPerSet blockSize " +
		"write-allocate|no-write-allocate write-through|write-back [lru|fifo]",
	Short: "csim simulates a set-associative cache over a memory trace.",
	Long: `csim reads a memory trace from the standard input, one access per ` +
		`line in the form of "l 0x1f" or "s 0x1f", and reports the hits, ` +
		`misses, and the estimated cycles of the given cache. The eviction ` +
		`policy is required unless the cache is direct-mapped.`,
	Args:              cobra.RangeArgs(5, 6),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runSingle,
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env",
		"Load default settings from this file if it exists.")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"Print diagnostic messages to stderr.")

	rootCmd.Flags().String("trace", "",
		"Read the trace from this file instead of the standard input.")
	rootCmd.Flags().String("record", "",
		"Record the run into NAME.sqlite3. Defaults to $CSIM_RECORD.")
	rootCmd.Flags().Bool("log-accesses", false,
		"Log every access and eviction to stderr.")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		atexit.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		logger.SetOutput(cmd.ErrOrStderr())
	}

	envFile, _ := cmd.Flags().GetString("env-file")

	return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
}
