package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LegoCylon/automagic/internal/game/variant"
	"github.com/LegoCylon/automagic/internal/profile"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Profile variants and print turn and time statistics.",
		Long: `profile runs every selected variant --trials times and prints the ` +
			`total, maximum, average and minimum turns and elapsed milliseconds.`,
		Args: cobra.NoArgs,
		RunE: runProfile,
	}
	f := cmd.Flags()
	f.StringSlice("variants", nil, "variants to profile, in order (default all)")
	f.Int("trials", profile.DefaultTrials, "runs per variant")
	f.Uint64("seed", 0, "seed for the pcg source (0 = default seed)")
	f.Bool("vary-seed", false, "seed trial i with seed+i")
	f.Bool("log-draws", false, "log every random draw at debug level")
	f.Bool("persist", false, "store reports in PostgreSQL")
	f.Bool("show-trials", false, "print every trial after the summary")
	return cmd
}

func runProfile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd,
		flagBinding{"profile.variants", "variants"},
		flagBinding{"profile.trials", "trials"},
		flagBinding{"simulation.seed", "seed"},
		flagBinding{"simulation.vary_seed", "vary-seed"},
		flagBinding{"simulation.log_draws", "log-draws"},
		flagBinding{"database.enabled", "persist"},
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	selected, err := variant.Select(a.variants, cfg.Profile.Variants)
	if err != nil {
		return err
	}

	host, err := profile.CollectHostInfo(ctx)
	if err != nil {
		a.logger.Warn("collecting host info", zap.Error(err))
	}

	opts := []profile.Option{profile.WithHost(host)}
	if cfg.Simulation.LogDraws {
		opts = append(opts, profile.WithSourceWrapper(a.wrapSource))
	}
	p := profile.NewProfiler(a.book, a.sourceFactory(), cfg.Profile.Trials, a.logger, opts...)

	showTrials, _ := cmd.Flags().GetBool("show-trials")
	out := cmd.OutOrStdout()

	a.logger.Info("profiling",
		zap.Int("variants", len(selected)),
		zap.Int("trials", p.Trials()),
		zap.Stringer("host", host),
	)

	emit := func(r *profile.Report) error {
		if err := profile.WriteReport(out, r); err != nil {
			return err
		}
		if showTrials {
			if err := profile.WriteTrials(out, r); err != nil {
				return err
			}
		}
		if a.pool == nil {
			return nil
		}
		repo, err := a.reports()
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, r); err != nil {
			return err
		}
		a.logger.Info("report stored", zap.String("report_id", r.ID.String()))
		return nil
	}
	return p.ProfileAll(ctx, selected, emit)
}
