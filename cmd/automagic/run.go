package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LegoCylon/automagic/internal/game/life"
	"github.com/LegoCylon/automagic/internal/game/variant"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Play one game of a variant to the end.",
		Args:  cobra.NoArgs,
		RunE:  runOnce,
	}
	f := cmd.Flags()
	f.String("variant", "", "variant to play")
	f.Uint64("seed", 0, "seed for the pcg source (0 = default seed)")
	f.Bool("log-draws", false, "log every random draw at debug level")
	f.Bool("trace", false, "print every participant's life after each turn")
	_ = cmd.MarkFlagRequired("variant")
	return cmd
}

func runOnce(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd,
		flagBinding{"simulation.seed", "seed"},
		flagBinding{"simulation.log_draws", "log-draws"},
	)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.close()

	name, _ := cmd.Flags().GetString("variant")
	v, err := variant.Lookup(a.variants, name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var (
		opts []life.Option
		tr   *tracer
	)
	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		tr = &tracer{w: out}
		opts = append(opts, life.WithObserver(tr.observe))
	}

	src := a.wrapSource(a.sourceFactory()(v, 0))
	start := time.Now()
	g, err := life.New(v, a.book, src, opts...)
	if err != nil {
		return err
	}
	turns := life.Run(g)
	elapsed := time.Since(start)
	if tr != nil && tr.err != nil {
		return fmt.Errorf("writing trace: %w", tr.err)
	}

	a.logger.Info("game over",
		zap.String("variant", v.Name),
		zap.Int("turns", turns),
		zap.Duration("elapsed", elapsed),
	)
	_, err = fmt.Fprintf(out, "%s Turns: %d Time: %d\n", v.Name, turns, elapsed.Milliseconds())
	return err
}

// tracer prints the life vector after every turn. After the first failed
// write it stops writing and keeps the error.
type tracer struct {
	w   io.Writer
	err error
}

func (t *tracer) observe(turn int, lives []life.Life) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, "turn %d: %v\n", turn, lives)
}
