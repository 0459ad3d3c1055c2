package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/jsoncol"
	"venture-feed/internal/repository"
)

// ResearchRepo implements the ResearchRepository interface using SQLite.
type ResearchRepo struct {
	db           *sql.DB
	queryBuilder *SignalQueryBuilder
}

// NewResearchRepo creates a new SQLite-backed research repository.
func NewResearchRepo(db *sql.DB) repository.ResearchRepository {
	return &ResearchRepo{db: db, queryBuilder: NewSignalQueryBuilder()}
}

func (repo *ResearchRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM research_papers WHERE url = ?)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, url).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByURL: QueryRowContext: %w", err)
	}
	return exists, nil
}

func (repo *ResearchRepo) Create(ctx context.Context, paper *entity.ResearchPaper) error {
	const query = `
INSERT INTO research_papers (title, source, url, published_at, abstract, sector_tags,
                             summary, relevance_score, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	tags, err := jsoncol.Encode(paper.SectorTags)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	sec, now := nowUnix()
	res, err := repo.db.ExecContext(ctx, query,
		paper.Title, paper.Source, paper.URL, nullUnix(paper.PublishedAt),
		entity.Truncate(paper.Abstract, entity.MaxAbstractLength), tags,
		paper.Summary, paper.RelevanceScore, sec)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	if paper.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	paper.CreatedAt = now
	return nil
}

func (repo *ResearchRepo) List(ctx context.Context, f repository.SignalFilter) ([]*entity.ResearchPaper, error) {
	clause, args := repo.queryBuilder.BuildWhereClause(f, false)
	query := `
SELECT id, title, source, url, published_at, abstract, sector_tags, summary, relevance_score, created_at
FROM research_papers
` + clause + `
ORDER BY published_at IS NULL, published_at DESC, relevance_score DESC, id DESC
LIMIT ?`
	args = append(args, repository.LimitOr(f.Limit))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	papers := make([]*entity.ResearchPaper, 0, 50)
	for rows.Next() {
		var (
			p         entity.ResearchPaper
			published sql.NullInt64
			created   int64
			tags      string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Source, &p.URL, &published, &p.Abstract,
			&tags, &p.Summary, &p.RelevanceScore, &created); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		if published.Valid {
			t := fromUnix(published.Int64)
			p.PublishedAt = &t
		}
		p.CreatedAt = fromUnix(created)
		if p.SectorTags, err = jsoncol.Tags(tags); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		papers = append(papers, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return papers, nil
}
