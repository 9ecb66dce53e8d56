package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables that provide defaults for flags.
const (
	envParallel    = "CSIM_PARALLEL"
	envMonitorPort = "CSIM_MONITOR_PORT"
	envRecord      = "CSIM_RECORD"
)

// loadEnvFile loads the variables of a .env file without overriding the ones
// already set. A missing file is only an error if it is asked for explicitly.
func loadEnvFile(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil {
		logger.Printf("loaded environment from %s", path)
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}

	return fmt.Errorf("loading %s: %w", path, err)
}

// stringSetting returns the flag value if it is set on the command line, or
// the environment variable otherwise.
func stringSetting(cmd *cobra.Command, flag, env string) string {
	value, _ := cmd.Flags().GetString(flag)
	if cmd.Flags().Changed(flag) {
		return value
	}

	if v, found := os.LookupEnv(env); found {
		return v
	}

	return value
}

// intSetting is the integer version of stringSetting.
func intSetting(cmd *cobra.Command, flag, env string) (int, error) {
	value, _ := cmd.Flags().GetInt(flag)
	if cmd.Flags().Changed(flag) {
		return value, nil
	}

	v, found := os.LookupEnv(env)
	if !found || v == "" {
		return value, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", env, v)
	}

	return n, nil
}
