package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/jsoncol"
	"venture-feed/internal/repository"
)

const researchColumns = `id, title, source, url, published_at, abstract, sector_tags,
summary, relevance_score, created_at`

type ResearchRepo struct {
	db           *sql.DB
	queryBuilder *SignalQueryBuilder
}

func NewResearchRepo(db *sql.DB) repository.ResearchRepository {
	return &ResearchRepo{db: db, queryBuilder: NewSignalQueryBuilder()}
}

func (repo *ResearchRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM research_papers WHERE url = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, url).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByURL: %w", err)
	}
	return exists, nil
}

func (repo *ResearchRepo) Create(ctx context.Context, paper *entity.ResearchPaper) error {
	const query = `
INSERT INTO research_papers (title, source, url, published_at, abstract, sector_tags, summary, relevance_score)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)
RETURNING id, created_at`
	tags, err := jsoncol.Encode(paper.SectorTags)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	err = repo.db.QueryRowContext(ctx, query,
		paper.Title, paper.Source, paper.URL, nullTime(paper.PublishedAt),
		entity.Truncate(paper.Abstract, entity.MaxAbstractLength), tags,
		paper.Summary, paper.RelevanceScore,
	).Scan(&paper.ID, &paper.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ResearchRepo) List(ctx context.Context, f repository.SignalFilter) ([]*entity.ResearchPaper, error) {
	b := repo.queryBuilder.build(f, false)
	limit := b.next(repository.LimitOr(f.Limit))
	query := `SELECT ` + researchColumns + `
FROM research_papers
` + b.clause() + `
ORDER BY published_at DESC NULLS LAST, relevance_score DESC, id DESC
LIMIT ` + limit

	rows, err := repo.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	papers := make([]*entity.ResearchPaper, 0, 50)
	for rows.Next() {
		var (
			p         entity.ResearchPaper
			published sql.NullTime
			tags      string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Source, &p.URL, &published, &p.Abstract,
			&tags, &p.Summary, &p.RelevanceScore, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		if published.Valid {
			t := published.Time
			p.PublishedAt = &t
		}
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
