package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LegoCylon/automagic/internal/game/life"
	"github.com/LegoCylon/automagic/internal/game/random"
)

// DefaultTrials is the number of runs profiled per variant.
const DefaultTrials = 100

// SourceFactory returns the random source for one trial of a variant.
type SourceFactory func(v life.Variant, trial int) random.Source

// FixedSeed returns a SourceFactory giving every trial a fresh source seeded
// with seed, so every trial of a variant replays the same game.
func FixedSeed(seed uint64) SourceFactory {
	return func(life.Variant, int) random.Source { return random.NewSeeded(seed) }
}

// SequentialSeeds returns a SourceFactory seeding trial i with seed+i.
func SequentialSeeds(seed uint64) SourceFactory {
	return func(_ life.Variant, trial int) random.Source { return random.NewSeeded(seed + uint64(trial)) }
}

// Report is the outcome of profiling one variant.
type Report struct {
	ID        uuid.UUID
	Variant   life.Variant
	StartedAt time.Time
	Host      HostInfo
	Trials    []Info
	Summary   Summary
}

// Option configures a Profiler.
type Option func(*Profiler)

// WithClock replaces time.Now for timing runs.
func WithClock(now func() time.Time) Option {
	return func(p *Profiler) { p.now = now }
}

// WithHost stamps every Report with h.
func WithHost(h HostInfo) Option {
	return func(p *Profiler) { p.host = h }
}

// WithSourceWrapper wraps every trial's source, e.g. with random.NewLoggedSource.
func WithSourceWrapper(wrap func(random.Source) random.Source) Option {
	return func(p *Profiler) { p.wrap = wrap }
}

// Profiler runs a variant trials times, sequentially, and summarizes the runs.
type Profiler struct {
	book      *life.Spellbook
	newSource SourceFactory
	trials    int
	logger    *zap.Logger
	now       func() time.Time
	host      HostInfo
	wrap      func(random.Source) random.Source
}

// NewProfiler creates a Profiler.
//
// Precondition: book, newSource and logger must be non-nil; trials <= 0
// selects DefaultTrials.
func NewProfiler(book *life.Spellbook, newSource SourceFactory, trials int, logger *zap.Logger, opts ...Option) *Profiler {
	if trials <= 0 {
		trials = DefaultTrials
	}
	p := &Profiler{
		book:      book,
		newSource: newSource,
		trials:    trials,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Trials returns the number of runs per variant.
func (p *Profiler) Trials() int { return p.trials }

// Profile runs v p.Trials() times. ctx is checked between runs only; a run in
// progress always proceeds to its natural end.
//
// Postcondition: Returns a Report with len(Trials) == p.Trials(), or an error
// if v cannot be constructed or ctx is cancelled.
func (p *Profiler) Profile(ctx context.Context, v life.Variant) (*Report, error) {
	r := &Report{
		ID:        uuid.New(),
		Variant:   v,
		StartedAt: p.now(),
		Host:      p.host,
		Trials:    make([]Info, 0, p.trials),
	}
	for trial := 0; trial < p.trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("profiling %s: stopped after %d trials: %w", v.Name, trial, err)
		}
		info, err := p.timedRun(v, trial)
		if err != nil {
			return nil, fmt.Errorf("profiling %s: %w", v.Name, err)
		}
		p.logger.Debug("trial complete",
			zap.String("variant", v.Name),
			zap.Int("trial", trial),
			zap.Int("turns", info.Turns),
			zap.Duration("elapsed", info.Duration),
		)
		r.Trials = append(r.Trials, info)
	}
	r.Summary = Summarize(r.Trials)
	p.logger.Info("variant profiled",
		zap.String("variant", v.Name),
		zap.String("report_id", r.ID.String()),
		zap.Int("trials", r.Summary.Trials),
		zap.Int("avg_turns", r.Summary.Average.Turns),
		zap.Duration("avg_elapsed", r.Summary.Average.Duration),
	)
	return r, nil
}

// ProfileAll profiles each variant in order and hands every Report to emit as
// soon as it is ready.
func (p *Profiler) ProfileAll(ctx context.Context, variants []life.Variant, emit func(*Report) error) error {
	for _, v := range variants {
		r, err := p.Profile(ctx, v)
		if err != nil {
			return err
		}
		if err := emit(r); err != nil {
			return fmt.Errorf("emitting report for %s: %w", v.Name, err)
		}
	}
	return nil
}

// timedRun constructs and runs one game, timing both. The duration is
// truncated to whole milliseconds so summaries are built from reported values.
func (p *Profiler) timedRun(v life.Variant, trial int) (Info, error) {
	src := p.newSource(v, trial)
	if p.wrap != nil {
		src = p.wrap(src)
	}
	start := p.now()
	g, err := life.New(v, p.book, src)
	if err != nil {
		return Info{}, err
	}
	turns := life.Run(g)
	return Info{Duration: p.now().Sub(start).Truncate(time.Millisecond), Turns: turns}, nil
}
