package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/simfactory/app"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/infra/logger"
	"github.com/kilianp07/simfactory/pkg/export"
)

var (
	reportAusgab bool
	buildFormat  string
)

var buildCmd = &cobra.Command{
	Use:   "build <input>",
	Short: "Create the geometry, source and ausgab objects of an input file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&reportAusgab, "report", false, "print the report of every ausgab object")
	buildCmd.Flags().StringVar(&buildFormat, "format", "text", "output format: text, json or csv")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	item, err := input.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.New("main").Errorf("app close: %v", err)
		}
	}()
	s, err := a.Build(item)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch buildFormat {
	case "json":
		return export.WriteJSON(out, a.Records())
	case "csv":
		return export.WriteCSV(out, a.Records())
	case "text", "":
	default:
		return fmt.Errorf("unknown format %s", buildFormat)
	}
	if err := s.Write(out); err != nil {
		return err
	}
	if reportAusgab {
		for _, o := range a.Ausgab.Objects() {
			if err := o.Report(out); err != nil {
				return err
			}
		}
	}
	return nil
}
