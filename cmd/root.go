package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/simfactory/config"
	"github.com/kilianp07/simfactory/infra/logger"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "simfactory",
	Short:         "Build simulation components from input files and loadable modules",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.Configure(logger.Options{
			Level:  c.Logging.Level,
			Format: c.Logging.Format,
			Out:    cmd.ErrOrStderr(),
		}); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
