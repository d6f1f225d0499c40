package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/LegoCylon/automagic/internal/config"
	"github.com/LegoCylon/automagic/internal/game/life"
	"github.com/LegoCylon/automagic/internal/game/random"
	"github.com/LegoCylon/automagic/internal/game/variant"
	"github.com/LegoCylon/automagic/internal/observability"
	"github.com/LegoCylon/automagic/internal/profile"
	"github.com/LegoCylon/automagic/internal/scripting"
	"github.com/LegoCylon/automagic/internal/storage/postgres"
)

// dbHealthTimeout bounds the startup ping.
const dbHealthTimeout = 5 * time.Second

// app holds everything a command needs once configuration is resolved.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	book     *life.Spellbook
	variants []life.Variant
	scripts  *scripting.Manager
	pool     *postgres.Pool
}

// flagBinding maps a command flag onto a configuration key.
type flagBinding struct {
	key  string
	flag string
}

// loadConfig reads --config, then lets any flag the user actually set
// override its configuration key.
func loadConfig(cmd *cobra.Command, bindings ...flagBinding) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	v := config.NewViper(path)
	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			return config.Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	if err := bindFlags(v, cmd.Flags(), bindings); err != nil {
		return config.Config{}, err
	}
	return config.LoadFromViper(v)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, bindings []flagBinding) error {
	for _, b := range bindings {
		f := flags.Lookup(b.flag)
		if f == nil {
			return fmt.Errorf("binding %s: no flag --%s", b.key, b.flag)
		}
		if err := v.BindPFlag(b.key, f); err != nil {
			return fmt.Errorf("binding %s: %w", b.key, err)
		}
	}
	return nil
}

// newApp builds the logger, spellbook and variant list, and connects to the
// database when it is enabled.
//
// Postcondition: On success the caller must call close.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	start := time.Now()

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}

	var extra []life.Spell
	if dir := cfg.Simulation.ScriptsDir; dir != "" {
		a.scripts = scripting.NewManager(logger, cfg.Simulation.ScriptInstructionLimit)
		if err := a.scripts.LoadDir(dir); err != nil {
			a.close()
			return nil, fmt.Errorf("loading scripted spells: %w", err)
		}
		extra = a.scripts.Spells()
		logger.Info("scripted spells loaded",
			zap.String("dir", dir),
			zap.Int("count", len(extra)),
		)
	}

	a.book, err = life.NewSpellbook(extra...)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("building spellbook: %w", err)
	}

	a.variants, err = variant.Load(cfg.Simulation.VariantsPath)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("loading variants: %w", err)
	}

	if cfg.Database.Enabled {
		dbStart := time.Now()
		a.pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := a.pool.Health(ctx, dbHealthTimeout); err != nil {
			a.close()
			return nil, fmt.Errorf("database health check: %w", err)
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
	}

	logger.Debug("application ready",
		zap.Int("spells", a.book.Len()),
		zap.Int("variants", len(a.variants)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return a, nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.scripts != nil {
		a.scripts.Close()
	}
	_ = a.logger.Sync()
}

// sourceFactory returns the per-trial random source selected by the
// simulation configuration.
func (a *app) sourceFactory() profile.SourceFactory {
	sim := a.cfg.Simulation
	if sim.Source == "crypto" {
		return func(life.Variant, int) random.Source { return random.NewCryptoSource() }
	}
	seed := sim.Seed
	if seed == 0 {
		seed = random.DefaultSeed
	}
	if sim.VarySeed {
		return profile.SequentialSeeds(seed)
	}
	return profile.FixedSeed(seed)
}

// wrapSource logs draws when simulation.log_draws is set.
func (a *app) wrapSource(src random.Source) random.Source {
	if !a.cfg.Simulation.LogDraws {
		return src
	}
	return random.NewLoggedSource(src, a.logger)
}

func (a *app) reports() (*postgres.ReportRepository, error) {
	if a.pool == nil {
		return nil, fmt.Errorf("report storage requires database.enabled")
	}
	return postgres.NewReportRepository(a.pool.DB()), nil
}
