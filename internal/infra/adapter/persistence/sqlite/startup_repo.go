package sqlite

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

// StartupRepo implements the StartupRepository interface using SQLite.
type StartupRepo struct {
	db           *sql.DB
	queryBuilder *SignalQueryBuilder
}

// NewStartupRepo creates a new SQLite-backed startup repository.
func NewStartupRepo(db *sql.DB) repository.StartupRepository {
	return &StartupRepo{db: db, queryBuilder: NewSignalQueryBuilder()}
}

func scanStartup(row rowScanner) (*entity.Startup, error) {
	var (
		s                entity.Startup
		cols             jsoncol.StartupColumns
		created, updated int64
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Website, &cols.SectorTags, &s.FoundingTeam,
		&s.WhyInteresting, &s.MoatNote, &s.Featured, &s.OverallScore, &cols.Signals,
		&cols.Links, &s.Accelerator, &s.Batch, &s.University, &cols.CofounderLinkedIns,
		&created, &updated); err != nil {
		return nil, err
	}
	if err := cols.DecodeInto(&s); err != nil {
		return nil, err
	}
	s.CreatedAt = fromUnix(created)
	s.UpdatedAt = fromUnix(updated)
	return &s, nil
}

// Merge runs the lookup and write in one transaction. SQLite has a single
// writer, so no explicit lock is taken.
func (repo *StartupRepo) Merge(ctx context.Context, name string, fn repository.MergeFunc) (*entity.Startup, bool, error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("Merge: BeginTx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const find = `SELECT ` + startupColumns + `
FROM startups
WHERE lower(name) = lower(?)
ORDER BY id
LIMIT 1`
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
	sec, now := nowUnix()

	created := existing == nil
	if created {
		const insert = `
INSERT INTO startups (name, website, sector_tags, founding_team, why_interesting, moat_note,
                      featured, overall_score, signals, links, accelerator, batch, university,
                      cofounder_linkedins, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, insert,
			next.Name, next.Website, cols.SectorTags, next.FoundingTeam, next.WhyInteresting,
			next.MoatNote, next.Featured, next.OverallScore, cols.Signals, cols.Links,
			next.Accelerator, next.Batch, next.University, cols.CofounderLinkedIns, sec, sec)
		if err != nil {
			return nil, false, fmt.Errorf("Merge: insert: %w", err)
		}
		if next.ID, err = res.LastInsertId(); err != nil {
			return nil, false, fmt.Errorf("Merge: LastInsertId: %w", err)
		}
		next.CreatedAt = now
	} else {
		const update = `
UPDATE startups
SET website = ?, sector_tags = ?, founding_team = ?, why_interesting = ?, moat_note = ?,
    featured = ?, overall_score = ?, signals = ?, links = ?, accelerator = ?, batch = ?,
    university = ?, cofounder_linkedins = ?, updated_at = ?
WHERE id = ?`
		next.ID = existing.ID
		next.Name = existing.Name
		next.CreatedAt = existing.CreatedAt
		if _, err := tx.ExecContext(ctx, update,
			next.Website, cols.SectorTags, next.FoundingTeam, next.WhyInteresting, next.MoatNote,
			next.Featured, next.OverallScore, cols.Signals, cols.Links, next.Accelerator,
			next.Batch, next.University, cols.CofounderLinkedIns, sec, next.ID); err != nil {
			return nil, false, fmt.Errorf("Merge: update: %w", err)
		}
	}
	next.UpdatedAt = now

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("Merge: Commit: %w", err)
	}
	return next, created, nil
}

// Get returns nil, nil when no startup has the id.
func (repo *StartupRepo) Get(ctx context.Context, id int64) (*entity.Startup, error) {
	const query = `SELECT ` + startupColumns + ` FROM startups WHERE id = ?`
	s, err := scanStartup(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return s, nil
}

func (repo *StartupRepo) FindByName(ctx context.Context, name string) (*entity.Startup, error) {
	const query = `SELECT ` + startupColumns + `
FROM startups
WHERE lower(name) = lower(?)
ORDER BY id
LIMIT 1`
	s, err := scanStartup(repo.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByName: QueryRowContext: %w", err)
	}
	return s, nil
}

func (repo *StartupRepo) List(ctx context.Context, f repository.StartupFilter) ([]*entity.Startup, error) {
	clause, args := repo.queryBuilder.BuildStartupWhereClause(f)
	query := `SELECT ` + startupColumns + `
FROM startups
` + clause + `
ORDER BY overall_score DESC, updated_at DESC, id
LIMIT ?`
	args = append(args, repository.LimitOr(f.Limit))
	return queryStartups(ctx, repo.db, "List", query, args...)
}

func queryStartups(ctx context.Context, db *sql.DB, op, query string, args ...any) ([]*entity.Startup, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	startups := make([]*entity.Startup, 0, 50)
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		startups = append(startups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return startups, nil
}

func (repo *StartupRepo) UpdateCofounderLinkedIns(ctx context.Context, id int64, links []entity.CofounderLinkedIn) error {
	const query = `UPDATE startups SET cofounder_linkedins = ?, updated_at = ? WHERE id = ?`
	encoded, err := jsoncol.Encode(links)
	if err != nil {
		return fmt.Errorf("UpdateCofounderLinkedIns: %w", err)
	}
	sec, _ := nowUnix()
	res, err := repo.db.ExecContext(ctx, query, encoded, sec, id)
	if err != nil {
		return fmt.Errorf("UpdateCofounderLinkedIns: ExecContext: %w", err)
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
