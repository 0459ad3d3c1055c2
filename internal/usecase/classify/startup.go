package classify

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"venture-feed/internal/domain/entity"
)

// StartupMention is one startup extracted from a news item.
type StartupMention struct {
	Name               string
	WhyInteresting     string
	SectorRelevance    []entity.SectorTag
	RelevanceScore     int
	MoatNote           string
	SignedCustomers    bool
	TeamGrew           bool
	RaisedFunding      bool
	Accelerator        string
	University         string
	CofounderLinkedIns []entity.CofounderLinkedIn
}

// ExtractStartups lists the startups a news item is about. It never fails:
// any model, transport or decoding problem yields an empty result.
func (c *Classifier) ExtractStartups(ctx context.Context, title, content string) []StartupMention {
	const op = "startup"

	if !c.Enabled() {
		return nil
	}
	user := userMessage(title, "Content", content, startupContentBudget)
	text, err := c.complete(ctx, op, startupSystemPrompt, user, startupMaxTokens)
	if err != nil {
		return nil
	}

	mentions, err := parseMentions(text)
	if err != nil {
		c.logger.WarnContext(ctx, "startup extraction discarded",
			slog.String("title", title),
			slog.Any("error", err))
		return nil
	}
	return mentions
}

func parseMentions(text string) ([]StartupMention, error) {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, nil
	}

	out := make([]StartupMention, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		name, ok := obj["name"].(string)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		score := DefaultMentionRelevance
		if v, ok := asNumber(obj["relevance_score"]); ok {
			score = ClampScore(v)
		}

		moat := ""
		if s, ok := obj["moat_note"].(string); ok {
			moat = strings.TrimSpace(s)
		}

		out = append(out, StartupMention{
			Name:               name,
			WhyInteresting:     trimmed(obj["why_interesting"]),
			SectorRelevance:    mentionSectors(obj["sector_relevance"]),
			RelevanceScore:     score,
			MoatNote:           moat,
			SignedCustomers:    truthy(obj["signed_customers"]),
			TeamGrew:           truthy(obj["team_grew"]),
			RaisedFunding:      truthy(obj["raised_funding"]),
			Accelerator:        entity.OneOf(asString(obj["accelerator"]), entity.Accelerators),
			University:         entity.OneOf(asString(obj["university"]), entity.Universities),
			CofounderLinkedIns: cofounders(obj["cofounder_linkedins"]),
		})
	}
	return out, nil
}

// mentionSectors keeps the four vertical sectors; Other is not an extractor option.
func mentionSectors(v any) []entity.SectorTag {
	tags := entity.NormalizeSectorTags(asStrings(v))
	out := tags[:0]
	for _, t := range tags {
		if t != entity.SectorOther {
			out = append(out, t)
		}
	}
	return out
}

func cofounders(v any) []entity.CofounderLinkedIn {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]entity.CofounderLinkedIn, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		c := entity.CofounderLinkedIn{Name: trimmed(obj["name"]), URL: trimmed(obj["url"])}
		if c.Name == "" || c.URL == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(c.URL), "linkedin.com") {
			continue
		}
		out = append(out, c)
	}
	return out
}
