package classify

import (
	"context"

	"venture-feed/internal/domain/entity"
)

// ArticleClassification is the validated result for one news item.
type ArticleClassification struct {
	SectorTags     []entity.SectorTag
	EventType      entity.EventType
	Stage          entity.Stage
	Summary        string
	StrategicNote  string
	RelevanceScore int
}

// ClassifyArticle classifies a news item. trackedStartup, when non-empty, is
// appended to the prompt so the model can weigh coverage of that company.
// Failures are returned as *ClassificationError.
func (c *Classifier) ClassifyArticle(ctx context.Context, title, content, trackedStartup string) (*ArticleClassification, error) {
	const op = "article"

	user := userMessage(title, "Content", content, articleContentBudget)
	if trackedStartup != "" {
		user += "\n\nTracked startup: " + trackedStartup
	}

	text, err := c.complete(ctx, op, articleSystemPrompt, user, articleMaxTokens)
	if err != nil {
		return nil, err
	}
	obj, err := decodeObject(text)
	if err != nil {
		return nil, &ClassificationError{Op: op, Err: err}
	}

	score := MinRelevance
	if raw, ok := asNumber(obj["relevance_score"]); ok {
		score = ClampScore(raw)
	}
	stage, score := ApplyStagePolicy(asString(obj["stage"]), score)

	return &ArticleClassification{
		SectorTags:     entity.NormalizeSectorTags(asStrings(obj["sector_tags"])),
		EventType:      entity.ParseEventType(asString(obj["event_type"])),
		Stage:          stage,
		Summary:        trimmed(obj["summary"]),
		StrategicNote:  trimmed(obj["strategic_note"]),
		RelevanceScore: score,
	}, nil
}
