package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/jsoncol"
	"venture-feed/internal/repository"
)

const startupColumns = `id, name, website, sector_tags, founding_team, why_interesting, moat_note,
featured, overall_score, signals, links, accelerator, batch, university,
cofounder_linkedins, created_at, updated_at`

type StartupRepo struct {
	db           *sql.DB
	queryBuilder *SignalQueryBuilder
}

func NewStartupRepo(db *sql.DB) repository.StartupRepository {
	return &StartupRepo{db: db, queryBuilder: NewSignalQueryBuilder()}
}

func scanStartup(row rowScanner) (*entity.Startup, error) {
	var (
		s    entity.Startup
		cols jsoncol.StartupColumns
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Website, &cols.SectorTags, &s.FoundingTeam,
		&s.WhyInteresting, &s.MoatNote, &s.Featured, &s.OverallScore, &cols.Signals,
		&cols.Links, &s.Accelerator, &s.Batch, &s.University, &cols.CofounderLinkedIns,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := cols.DecodeInto(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Merge serializes writers for the same name with a transaction-scoped
// advisory lock, then reads the current row FOR UPDATE.
func (repo *StartupRepo) Merge(ctx context.Context, name string, fn repository.MergeFunc) (*entity.Startup, bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("Merge: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const lock = `SELECT pg_advisory_xact_lock(hashtext(lower($1)))`
	if _, err := tx.ExecContext(ctx, lock, name); err != nil {
		return nil, false, fmt.Errorf("Merge: advisory lock: %w", err)
	}

	const find = `SELECT ` + startupColumns + `
FROM startups
WHERE lower(name) = lower($1)
ORDER BY id
LIMIT 1
FOR UPDATE`
	existing, err := scanStartup(tx.QueryRowContext(ctx, find, name))
	if errors.Is(err, sql.ErrNoRows) {
		existing, err = nil, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("Merge: select: %w", err)
	}

	next, err := fn(existing)
	if err != nil {
		return nil, false, err
	}
	if next == nil {
		return existing, false, nil
	}

	cols, err := jsoncol.EncodeStartup(next)
	if err != nil {
		return nil, false, fmt.Errorf("Merge: %w", err)
	}

	created := existing == nil
	if created {
		const insert = `
INSERT INTO startups (name, website, sector_tags, founding_team, why_interesting, moat_note,
                      featured, overall_score, signals, links, accelerator, batch, university,
                      cofounder_linkedins)
VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8, $9::jsonb, $10::jsonb, $11, $12, $13, $14::jsonb)
RETURNING id, created_at, updated_at`
		err = tx.QueryRowContext(ctx, insert,
			next.Name, next.Website, cols.SectorTags, next.FoundingTeam, next.WhyInteresting,
			next.MoatNote, next.Featured, next.OverallScore, cols.Signals, cols.Links,
			next.Accelerator, next.Batch, next.University, cols.CofounderLinkedIns,
		).Scan(&next.ID, &next.CreatedAt, &next.UpdatedAt)
		if err != nil {
			return nil, false, fmt.Errorf("Merge: insert: %w", err)
		}
	} else {
		const update = `
UPDATE startups
SET website = $1, sector_tags = $2::jsonb, founding_team = $3, why_interesting = $4,
    moat_note = $5, featured = $6, overall_score = $7, signals = $8::jsonb, links = $9::jsonb,
    accelerator = $10, batch = $11, university = $12, cofounder_linkedins = $13::jsonb,
    updated_at = now()
WHERE id = $14
RETURNING updated_at`
		next.ID = existing.ID
		next.Name = existing.Name
		next.CreatedAt = existing.CreatedAt
		err = tx.QueryRowContext(ctx, update,
			next.Website, cols.SectorTags, next.FoundingTeam, next.WhyInteresting, next.MoatNote,
			next.Featured, next.OverallScore, cols.Signals, cols.Links, next.Accelerator,
			next.Batch, next.University, cols.CofounderLinkedIns, next.ID,
		).Scan(&next.UpdatedAt)
		if err != nil {
			return nil, false, fmt.Errorf("Merge: update: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("Merge: Commit: %w", err)
	}
	return next, created, nil
}

func (repo *StartupRepo) Get(ctx context.Context, id int64) (*entity.Startup, error) {
	const query = `SELECT ` + startupColumns + `
FROM startups
WHERE id = $1`
	s, err := scanStartup(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return s, nil
}

func (repo *StartupRepo) FindByName(ctx context.Context, name string) (*entity.Startup, error) {
	const query = `SELECT ` + startupColumns + `
FROM startups
WHERE lower(name) = lower($1)
ORDER BY id
LIMIT 1`
	s, err := scanStartup(repo.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByName: %w", err)
	}
	return s, nil
}

func (repo *StartupRepo) List(ctx context.Context, f repository.StartupFilter) ([]*entity.Startup, error) {
	b := repo.queryBuilder.buildStartup(f)
	limit := b.next(repository.LimitOr(f.Limit))
	query := `SELECT ` + startupColumns + `
FROM startups
` + b.clause() + `
ORDER BY overall_score DESC, updated_at DESC, id
LIMIT ` + limit

	rows, err := repo.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	startups := make([]*entity.Startup, 0, 50)
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		startups = append(startups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return startups, nil
}

func (repo *StartupRepo) UpdateCofounderLinkedIns(ctx context.Context, id int64, links []entity.CofounderLinkedIn) error {
	const query = `
UPDATE startups
SET cofounder_linkedins = $1::jsonb, updated_at = now()
WHERE id = $2`
	encoded, err := jsoncol.Encode(links)
	if err != nil {
		return fmt.Errorf("UpdateCofounderLinkedIns: %w", err)
	}
	res, err := repo.db.ExecContext(ctx, query, encoded, id)
	if err != nil {
		return fmt.Errorf("UpdateCofounderLinkedIns: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateCofounderLinkedIns: RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("UpdateCofounderLinkedIns: %w", entity.ErrNotFound)
	}
	return nil
}
