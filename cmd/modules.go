package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/simfactory/app/plugins"
	coremetrics "github.com/kilianp07/simfactory/core/metrics"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the linked-in modules and metric sink types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, m := range plugins.Modules() {
			if _, err := fmt.Fprintf(out, "%s: %s\n", m, strings.Join(plugins.Symbols(m), ", ")); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(out, "metric sinks: %s\n", strings.Join(coremetrics.SinkTypes(), ", "))
		return err
	},
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}
