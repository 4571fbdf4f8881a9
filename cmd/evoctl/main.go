// Command evoctl is the evolution core's CLI entry point: construct a
// problem+algorithm+island and evolve it, benchmark a BFE driver, or
// print an island's stream-output block.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/volpe-framework/evocore/bfe"
	"github.com/volpe-framework/evocore/demoalgo"
	"github.com/volpe-framework/evocore/demoproblem"
	"github.com/volpe-framework/evocore/island"
	"github.com/volpe-framework/evocore/logging"
	"github.com/volpe-framework/evocore/population"
	"github.com/volpe-framework/evocore/runtimeconfig"
	"github.com/volpe-framework/evocore/tier"
)

var (
	configPath  string
	development bool
	logLevel    string
)

func main() {
	root := &cobra.Command{
		Use:   "evoctl",
		Short: "Drive the evolution core's BFE and island primitives",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(development, logging.LevelFromString(logLevel))
			rc, err := runtimeconfig.Load(configPath)
			if err != nil {
				return err
			}
			rc.Apply()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to an INI runtime config file")
	root.PersistentFlags().BoolVar(&development, "dev", true, "use console-formatted logging")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "zerolog level (debug, info, warn, error)")

	root.AddCommand(newRunCmd(), newBenchCmd(), newInfoCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		nx          int
		size        int
		generations int
		bound       float64
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Construct a demo problem+algorithm+island and evolve it for N generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerations(nx, size, bound, generations)
		},
	}
	cmd.Flags().IntVar(&nx, "nx", 4, "decision vector length")
	cmd.Flags().IntVar(&size, "size", 20, "population size")
	cmd.Flags().IntVar(&generations, "generations", 10, "number of evolve+wait rounds")
	cmd.Flags().Float64Var(&bound, "bound", 5.0, "per-dimension sampling bound")
	return cmd
}

func newBenchCmd() *cobra.Command {
	var (
		nx    int
		batch int
	)
	cmd := &cobra.Command{
		Use:   "bfe-bench",
		Short: "Drive a BFE driver over a synthetic problem and report throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			prob := demoproblem.NewSphere(nx, 5.0, tier.Basic)
			dvs := make([]float64, batch*nx)
			for i := range dvs {
				dvs[i] = float64(i%7) - 3
			}
			b := bfe.New(bfe.DefaultBFE{})
			start := time.Now()
			fvs, err := b.Call(prob, dvs)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			log.Info().Int("individuals", len(fvs)).Str("driver", b.Name()).
				Dur("elapsed", elapsed).
				Float64("individuals_per_second", float64(batch)/elapsed.Seconds()).
				Msg("bfe-bench complete")
			return nil
		},
	}
	cmd.Flags().IntVar(&nx, "nx", 4, "decision vector length")
	cmd.Flags().IntVar(&batch, "batch", 1000, "number of individuals in the synthetic batch")
	return cmd
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "island-info",
		Short: "Print the stream-output block format for a freshly constructed demo island",
		RunE: func(cmd *cobra.Command, args []string) error {
			prob := demoproblem.NewSphere(4, 5.0, tier.Constant)
			pop := population.New(prob, 7)
			algo := demoalgo.NewRandomSearch(5.0, 7)
			isl, err := island.New(algo, pop)
			if err != nil {
				return err
			}
			defer isl.Close()
			fmt.Print(isl.String())
			return nil
		},
	}
	return cmd
}

func runGenerations(nx, size int, bound float64, generations int) error {
	prob := demoproblem.NewSphere(nx, bound, tier.Basic)
	pop := population.New(prob, 7)
	for i := 0; i < size; i++ {
		dv := make([]float64, nx)
		for d := range dv {
			dv[d] = bound * 0.5
		}
		if err := pop.PushBack(dv); err != nil {
			return err
		}
	}
	algo := demoalgo.NewRandomSearch(bound, 7)
	isl, err := island.New(algo, pop)
	if err != nil {
		return err
	}
	defer isl.Close()

	for g := 0; g < generations; g++ {
		if err := isl.Evolve(); err != nil {
			return err
		}
		if err := isl.Wait(); err != nil {
			return err
		}
		log.Info().Int("generation", g+1).Msg("generation complete")
	}
	final := isl.GetPopulation()
	log.Info().Int("size", final.Size()).Msg("run complete")
	return nil
}
