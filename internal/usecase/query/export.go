package query

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/repository"
)

// ExportType selects the rows of a CSV export.
type ExportType string

const (
	ExportArticles ExportType = "articles"
	ExportStartups ExportType = "startups"
)

const (
	// ExportArticleLimit is how many top-scored articles an export carries.
	ExportArticleLimit = 500
	// ExportStartupLimit bounds the startup export.
	ExportStartupLimit = 1000
)

var (
	articleHeader = []string{"title", "source", "url", "event_type", "relevance_score", "summary"}
	startupHeader = []string{"name", "website", "sector_tags"}
)

// Export is a rendered CSV document.
type Export struct {
	Filename string
	Body     []byte
}

// ExportCSV renders articles (top by relevance) or startups. An empty type
// means articles.
func (s *Service) ExportCSV(ctx context.Context, typ string) (*Export, error) {
	switch ExportType(typ) {
	case "", ExportArticles:
		articles, err := s.Articles.ListTopByRelevance(ctx, ExportArticleLimit)
		if err != nil {
			return nil, fmt.Errorf("export articles: %w", err)
		}
		return &Export{Filename: "articles.csv", Body: ArticlesCSV(articles)}, nil
	case ExportStartups:
		startups, err := s.Startups.List(ctx, repository.StartupFilter{Limit: ExportStartupLimit})
		if err != nil {
			return nil, fmt.Errorf("export startups: %w", err)
		}
		return &Export{Filename: "startups.csv", Body: StartupsCSV(startups)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExportType, typ)
	}
}

// ArticlesCSV renders the article export.
func ArticlesCSV(articles []*entity.Article) []byte {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{
			a.Title,
			a.Source,
			a.URL,
			string(a.EventType),
			strconv.Itoa(a.RelevanceScore),
			a.Summary,
		})
	}
	return renderCSV(articleHeader, rows)
}

// StartupsCSV renders the startup export. Sector tags are joined with commas.
func StartupsCSV(startups []*entity.Startup) []byte {
	rows := make([][]string, 0, len(startups))
	for _, s := range startups {
		rows = append(rows, []string{
			s.Name,
			s.Website,
			strings.Join(entity.SectorStrings(s.SectorTags), ","),
		})
	}
	return renderCSV(startupHeader, rows)
}

// renderCSV writes an unquoted header, then one line per row with every
// field quoted. Lines are joined by "\n" with no trailing newline.
func renderCSV(header []string, rows [][]string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}
