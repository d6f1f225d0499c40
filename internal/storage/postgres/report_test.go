package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/LegoCylon/automagic/internal/game/life"
	"github.com/LegoCylon/automagic/internal/game/random"
	"github.com/LegoCylon/automagic/internal/profile"
	"github.com/LegoCylon/automagic/internal/storage/postgres"
	"github.com/LegoCylon/automagic/internal/testutil"
)

func makeReport(t *testing.T, v life.Variant, trials int) *profile.Report {
	t.Helper()
	book, err := life.NewSpellbook()
	require.NoError(t, err)
	p := profile.NewProfiler(book, profile.SequentialSeeds(random.DefaultSeed), trials, zap.NewNop(),
		profile.WithHost(profile.HostInfo{Hostname: "ci", OS: "linux", Platform: "alpine", CPUModel: "test", CPUs: 2}))
	r, err := p.Profile(context.Background(), v)
	require.NoError(t, err)
	// Postgres keeps microsecond precision.
	r.StartedAt = r.StartedAt.UTC().Truncate(time.Microsecond)
	return r
}

var hurtOnly = life.Variant{Name: "hurt", Description: "hurt only", Spells: []string{"hurt"}, Players: 1}

func TestReportRepository_SaveAndGet(t *testing.T) {
	repo := postgres.NewReportRepository(testutil.NewPool(t))
	ctx := context.Background()

	want := makeReport(t, hurtOnly, 5)
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.GetByID(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Variant, got.Variant)
	assert.Equal(t, want.Host, got.Host)
	assert.Equal(t, want.Summary, got.Summary)
	assert.Equal(t, want.Trials, got.Trials)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
}

func TestReportRepository_DuplicateID(t *testing.T) {
	repo := postgres.NewReportRepository(testutil.NewPool(t))
	ctx := context.Background()

	r := makeReport(t, hurtOnly, 1)
	require.NoError(t, repo.Save(ctx, r))
	assert.ErrorIs(t, repo.Save(ctx, r), postgres.ErrReportExists)
}

func TestReportRepository_GetByID_NotFound(t *testing.T) {
	repo := postgres.NewReportRepository(testutil.NewPool(t))
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, postgres.ErrReportNotFound)
}

func TestReportRepository_ListByVariant(t *testing.T) {
	repo := postgres.NewReportRepository(testutil.NewPool(t))
	ctx := context.Background()

	pair := life.Variant{Name: "pair", Spells: []string{"hurt", "maim"}, Players: 2}
	first := makeReport(t, hurtOnly, 2)
	second := makeReport(t, hurtOnly, 2)
	second.StartedAt = first.StartedAt.Add(time.Minute)
	other := makeReport(t, pair, 2)
	for _, r := range []*profile.Report{first, second, other} {
		require.NoError(t, repo.Save(ctx, r))
	}

	got, err := repo.ListByVariant(ctx, "hurt", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID, "newest first")
	assert.Equal(t, first.ID, got[1].ID)
	assert.Empty(t, got[0].Trials, "listing omits trials")

	all, err := repo.ListByVariant(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := repo.ListByVariant(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestReportRepository_Delete(t *testing.T) {
	repo := postgres.NewReportRepository(testutil.NewPool(t))
	ctx := context.Background()

	r := makeReport(t, hurtOnly, 3)
	require.NoError(t, repo.Save(ctx, r))
	require.NoError(t, repo.Delete(ctx, r.ID))

	_, err := repo.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, postgres.ErrReportNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, r.ID), postgres.ErrReportNotFound)
}

// Property: any saved summary round-trips exactly.
func TestPropertyReportSummaryRoundTrip(t *testing.T) {
	repo := postgres.NewReportRepository(testutil.NewPool(t))
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		infos := rapid.SliceOfN(rapid.Custom(func(rt *rapid.T) profile.Info {
			return profile.Info{
				Duration: time.Duration(rapid.Int64Range(0, int64(time.Minute)).Draw(rt, "d")),
				Turns:    rapid.IntRange(0, 1<<40).Draw(rt, "turns"),
			}
		}), 1, 20).Draw(rt, "infos")

		r := &profile.Report{
			ID:        uuid.New(),
			Variant:   hurtOnly,
			StartedAt: time.Now().UTC().Truncate(time.Microsecond),
			Trials:    infos,
			Summary:   profile.Summarize(infos),
		}
		require.NoError(rt, repo.Save(ctx, r))
		got, err := repo.GetByID(ctx, r.ID)
		require.NoError(rt, err)
		assert.Equal(rt, r.Summary, got.Summary)
		assert.Equal(rt, r.Trials, got.Trials)
	})
}

func TestPool_HealthAndClose(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	require.NoError(t, pc.Pool.Health(ctx, 5*time.Second))

	pool, err := postgres.NewPool(ctx, pc.Config)
	require.NoError(t, err)
	pool.Close()
	assert.Error(t, pool.Health(ctx, time.Second))
}
