package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/simfactory/app"
	"github.com/kilianp07/simfactory/core/dso"
	"github.com/kilianp07/simfactory/core/factory"
)

var (
	resolvePath   string
	resolveLoader string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <library> <symbol>",
	Short: "Load a module once and resolve one of its symbols",
	Args:  cobra.ExactArgs(2),
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolvePath, "path", "", "module directory (defaults to factory.dso_path)")
	resolveCmd.Flags().StringVar(&resolveLoader, "loader", "", "loader: chain, goplugin, native or static")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	kind := resolveLoader
	if kind == "" {
		kind = cfg.Factory.Loader
	}
	loader, err := app.NewLoader(kind)
	if err != nil {
		return err
	}
	path := resolvePath
	if path == "" {
		path = cfg.Factory.DSOPath
	}
	dir, err := factory.SearchPath(path, cfg.Factory.SearchLocation())
	if err != nil {
		return err
	}
	sym, err := dso.ResolveOnce(loader, args[0], args[1], dir)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", dso.FileName(args[0], dir), args[1], describe(sym))
	return err
}

func describe(sym any) string {
	switch v := sym.(type) {
	case dso.Address:
		return "native address " + v.String()
	case *factory.Registration:
		return fmt.Sprintf("registration (api %d, family %q)", v.APIVersion, v.Family)
	}
	return fmt.Sprintf("%T", sym)
}
