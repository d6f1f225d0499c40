package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/LegoCylon/automagic/internal/game/life"
	"github.com/LegoCylon/automagic/internal/profile"
)

// ErrReportNotFound is returned when a report lookup yields no results.
var ErrReportNotFound = errors.New("report not found")

// ErrReportExists is returned when saving a report whose ID is already stored.
var ErrReportExists = errors.New("report already exists")

// ReportRepository stores profile reports and their per-trial results.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a ReportRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, variant, description, spells, players,
	hostname, os, platform, cpu_model, cpus, started_at, trials,
	total_turns, total_ns, max_turns, max_ns, avg_turns, avg_ns, min_turns, min_ns`

// Save inserts r and every trial in one transaction.
//
// Precondition: r.ID must be set.
// Postcondition: Returns nil once the report and all trials are committed, or
// ErrReportExists if r.ID is already stored.
func (r *ReportRepository) Save(ctx context.Context, rep *profile.Report) error {
	s := rep.Summary
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO profile_reports (`+reportColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
			pgUUID(rep.ID), rep.Variant.Name, rep.Variant.Description, rep.Variant.Spells, rep.Variant.Players,
			rep.Host.Hostname, rep.Host.OS, rep.Host.Platform, rep.Host.CPUModel, rep.Host.CPUs,
			rep.StartedAt, s.Trials,
			int64(s.Total.Turns), int64(s.Total.Duration),
			int64(s.Maximum.Turns), int64(s.Maximum.Duration),
			int64(s.Average.Turns), int64(s.Average.Duration),
			int64(s.Minimum.Turns), int64(s.Minimum.Duration),
		)
		if err != nil {
			return err
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"profile_trials"},
			[]string{"report_id", "trial", "turns", "duration_ns"},
			pgx.CopyFromSlice(len(rep.Trials), func(i int) ([]any, error) {
				t := rep.Trials[i]
				return []any{pgUUID(rep.ID), int32(i), int64(t.Turns), int64(t.Duration)}, nil
			}),
		)
		return err
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			return ErrReportExists
		}
		return fmt.Errorf("saving report %s: %w", rep.ID, err)
	}
	return nil
}

// GetByID retrieves a report and its trials.
//
// Postcondition: Returns the Report or ErrReportNotFound.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*profile.Report, error) {
	rep, err := scanReport(r.db.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM profile_reports WHERE id = $1`, pgUUID(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("getting report %s: %w", id, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT turns, duration_ns FROM profile_trials WHERE report_id = $1 ORDER BY trial ASC`, pgUUID(id))
	if err != nil {
		return nil, fmt.Errorf("listing trials for %s: %w", id, err)
	}
	defer rows.Close()

	rep.Trials = make([]profile.Info, 0, rep.Summary.Trials)
	for rows.Next() {
		var turns, ns int64
		if err := rows.Scan(&turns, &ns); err != nil {
			return nil, fmt.Errorf("scanning trial row: %w", err)
		}
		rep.Trials = append(rep.Trials, profile.Info{Turns: int(turns), Duration: time.Duration(ns)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trials for %s: %w", id, err)
	}
	return rep, nil
}

// ListByVariant returns the newest reports for variant, without trials.
// An empty variant lists every variant.
//
// Precondition: limit > 0.
// Postcondition: Returns a slice (may be empty) ordered by started_at descending.
func (r *ReportRepository) ListByVariant(ctx context.Context, variant string, limit int) ([]*profile.Report, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reportColumns+` FROM profile_reports
		WHERE $1 = '' OR variant = $1
		ORDER BY started_at DESC
		LIMIT $2`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	reports := make([]*profile.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Delete removes a report and, by cascade, its trials.
//
// Postcondition: Returns ErrReportNotFound if no row was deleted.
func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profile_reports WHERE id = $1`, pgUUID(id))
	if err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func scanReport(row pgx.Row) (*profile.Report, error) {
	var (
		rep             profile.Report
		id              pgtype.UUID
		v               life.Variant
		totTurns, totNS int64
		maxTurns, maxNS int64
		avgTurns, avgNS int64
		minTurns, minNS int64
	)
	err := row.Scan(
		&id, &v.Name, &v.Description, &v.Spells, &v.Players,
		&rep.Host.Hostname, &rep.Host.OS, &rep.Host.Platform, &rep.Host.CPUModel, &rep.Host.CPUs,
		&rep.StartedAt, &rep.Summary.Trials,
		&totTurns, &totNS, &maxTurns, &maxNS, &avgTurns, &avgNS, &minTurns, &minNS,
	)
	if err != nil {
		return nil, err
	}
	rep.ID = uuid.UUID(id.Bytes)
	rep.Variant = v
	rep.Summary.Total = profile.Info{Turns: int(totTurns), Duration: time.Duration(totNS)}
	rep.Summary.Maximum = profile.Info{Turns: int(maxTurns), Duration: time.Duration(maxNS)}
	rep.Summary.Average = profile.Info{Turns: int(avgTurns), Duration: time.Duration(avgNS)}
	rep.Summary.Minimum = profile.Info{Turns: int(minTurns), Duration: time.Duration(minNS)}
	return &rep, nil
}
