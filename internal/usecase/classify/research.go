package classify

import (
	"context"

	"venture-feed/internal/domain/entity"
)

// ResearchClassification is the validated result for one paper.
type ResearchClassification struct {
	SectorTags     []entity.SectorTag
	Summary        string
	RelevanceScore int
}

// ClassifyResearch classifies a paper from its title and abstract.
// The model answer may wrap the JSON object in prose; the first balanced
// object is used.
func (c *Classifier) ClassifyResearch(ctx context.Context, title, abstract string) (*ResearchClassification, error) {
	const op = "research"

	user := userMessage(title, "Abstract", abstract, researchContentBudget)
	text, err := c.complete(ctx, op, researchSystemPrompt, user, researchMaxTokens)
	if err != nil {
		return nil, err
	}

	raw, err := ExtractFirstObject(text)
	if err != nil {
		return nil, &ClassificationError{Op: op, Err: err}
	}
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, &ClassificationError{Op: op, Err: err}
	}

	score := MinRelevance
	if v, ok := asNumber(obj["relevance_score"]); ok {
		score = ClampScore(v)
	}
	return &ResearchClassification{
		SectorTags:     entity.NormalizeSectorTags(asStrings(obj["sector_tags"])),
		Summary:        trimmed(obj["summary"]),
		RelevanceScore: score,
	}, nil
}
