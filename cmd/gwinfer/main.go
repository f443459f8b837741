package main

import (
	"fmt"
	"math"
	"os"

	"gwinfer/adapters/excel"
	"gwinfer/adapters/likelihood"
	"gwinfer/adapters/postgres"
	"gwinfer/app"
	"gwinfer/domain/core"
	"gwinfer/domain/prior"
	"gwinfer/internal"
	"gwinfer/internal/config"
	"gwinfer/internal/sampler"
	"gwinfer/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gwinfer",
		Short: "Bayesian parameter estimation for gravitational-wave events",
	}

	rootCmd.AddCommand(newRunCmd(), newPriorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var seed uint64
	var samples, workers int
	var out string

	cmd := &cobra.Command{
		Use:   "run [event-id]",
		Short: "Run importance sampling over the demo event prior",
		Long: `Run posterior sampling for an event using the built-in demo setup:
a fixed sky position and distance, uniform chirp mass, mass ratio, and
phase priors, and a Gaussian stand-in likelihood at the reference point.

Example: gwinfer run GW150914 --seed 42 --samples 20000 --out samples.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real env vars win.
			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Run.EventID = args[0]
			}
			if cmd.Flags().Changed("seed") {
				cfg.Run.Seed = seed
			}
			if cmd.Flags().Changed("samples") {
				cfg.Run.Samples = samples
			}
			if cmd.Flags().Changed("workers") {
				cfg.Run.Workers = workers
			}
			if cmd.Flags().Changed("out") {
				cfg.Output.ExcelFile = out
			}
			return runInference(cmd, cfg)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed for reproducible sampling")
	cmd.Flags().IntVar(&samples, "samples", 10000, "number of importance samples")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent posterior evaluations")
	cmd.Flags().StringVar(&out, "out", "", "xlsx output path")
	return cmd
}

func runInference(cmd *cobra.Command, cfg *config.Config) error {
	logger := internal.NewDefaultLogger()

	p, err := demoPrior()
	if err != nil {
		return err
	}
	lk, err := demoLikelihood()
	if err != nil {
		return err
	}

	var sinks []ports.ResultSink
	if cfg.Output.ExcelFile != "" {
		sinks = append(sinks, excel.NewResultWriter(cfg.Output.ExcelFile))
	}
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		repo := postgres.NewResultRepository(db)
		if err := repo.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		sinks = append(sinks, repo)
	}

	is := sampler.NewImportance(cfg.Run.Workers, logger)
	svc, err := app.NewInferenceService(p, lk, is, logger, sinks...)
	if err != nil {
		return err
	}

	manifest, result, err := svc.Run(cmd.Context(), core.EventID(cfg.Run.EventID), cfg.Run.Seed, cfg.Run.Samples, cfg.Run.Workers)
	if err != nil {
		return err
	}

	fmt.Printf("run %s (event %s)\n", manifest.RunID, manifest.EventID)
	fmt.Printf("  log evidence: %.4f\n", result.LogEvidence)
	fmt.Printf("  effective sample size: %.1f / %d\n", result.ESS, len(result.Samples))
	for name, s := range result.Summaries {
		fmt.Printf("  %-12s mean=%.4f sd=%.4f median=%.4f [%.4f, %.4f]\n",
			name, s.Mean, s.StdDev, s.Median, s.Q05, s.Q95)
	}
	return nil
}

func newPriorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prior",
		Short: "Describe the demo prior's parameter space",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := demoPrior()
			if err != nil {
				return err
			}
			space := p.Space()
			fmt.Println("sampled parameters (sampler coordinates):")
			for _, s := range space.Sampled {
				kind := "bounded"
				if s.Periodic {
					kind = "periodic"
				}
				fmt.Printf("  %-12s [%g, %g) %s\n", s.Name, s.Lower, s.Upper, kind)
			}
			fmt.Println("standard parameters (likelihood coordinates):")
			for _, name := range space.Standard {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("construction-time values required:")
			for _, f := range p.ConstructorFields() {
				fmt.Printf("  %-12s %s required=%v\n", f.Name, f.Kind, f.Required)
			}
			return nil
		},
	}
}

// demoPrior builds a GW150914-style composition: pinned extrinsic
// parameters plus uniformly sampled intrinsic parameters.
func demoPrior() (prior.Prior, error) {
	fixed, err := prior.NewFixed(map[string]float64{
		"ra":  1.95,
		"dec": -1.27,
		"d_l": 410.0,
	})
	if err != nil {
		return nil, err
	}

	mchirp, err := prior.NewBoundedSpec("mchirp", 25.0, 35.0)
	if err != nil {
		return nil, err
	}
	q, err := prior.NewBoundedSpec("q", 0.5, 1.0)
	if err != nil {
		return nil, err
	}
	phase, err := prior.NewPeriodicSpec("phi_ref", 0, 2*math.Pi)
	if err != nil {
		return nil, err
	}
	uniform, err := prior.NewUniform(mchirp, q, phase)
	if err != nil {
		return nil, err
	}

	return prior.Combine(
		[]string{"ra", "dec", "d_l", "mchirp", "q", "phi_ref"},
		fixed, uniform,
	)
}

// demoLikelihood is a Gaussian stand-in centered at the injected values.
func demoLikelihood() (ports.LikelihoodProvider, error) {
	return likelihood.NewGaussian(
		prior.StandardDict{"mchirp": 30.2, "q": 0.82, "phi_ref": 1.3},
		map[string]float64{"mchirp": 0.4, "q": 0.08, "phi_ref": 0.9},
	)
}
