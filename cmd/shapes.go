package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/kilianp07/simfactory/app"
	"github.com/kilianp07/simfactory/core/input"
	"github.com/kilianp07/simfactory/infra/logger"
)

var (
	sampleN    int
	sampleSeed uint64
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Shape related commands",
}

var shapesSampleCmd = &cobra.Command{
	Use:   "sample <input>",
	Short: "Create the shapes of an input file and sample points from them",
	Args:  cobra.ExactArgs(1),
	RunE:  runShapesSample,
}

func init() {
	shapesSampleCmd.Flags().IntVarP(&sampleN, "n", "n", 10, "points per shape")
	shapesSampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 1, "random seed")
	shapesCmd.AddCommand(shapesSampleCmd)
	rootCmd.AddCommand(shapesCmd)
}

func runShapesSample(cmd *cobra.Command, args []string) error {
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
	list, err := a.ShapesFrom(item)
	if len(list) == 0 {
		return err
	}
	rng := rand.New(rand.NewPCG(sampleSeed, sampleSeed))
	out := cmd.OutOrStdout()
	for _, s := range list {
		for i := 0; i < sampleN; i++ {
			p := s.Point(rng)
			if _, err := fmt.Fprintf(out, "%s %g %g %g\n", s.Name(), p.X, p.Y, p.Z); err != nil {
				return err
			}
		}
	}
	return err
}
