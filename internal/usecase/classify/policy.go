package classify

import (
	"math"

	"venture-feed/internal/domain/entity"
)

// Stage policy applied to article classifications.
const (
	// DefaultStage is used when the model omits the stage or returns an unknown one.
	DefaultStage = entity.StageGrowth
	// EarlyStageBonus is added to the relevance score of early-stage articles.
	EarlyStageBonus = 2
)

// Relevance score bounds.
const (
	MinRelevance = 1
	MaxRelevance = 10
	// DefaultMentionRelevance is used for mentions without a numeric score.
	DefaultMentionRelevance = 5
)

// ClampScore rounds half up and clamps into [MinRelevance, MaxRelevance].
// NaN and infinities clamp to the nearest bound, NaN to MinRelevance.
func ClampScore(raw float64) int {
	if math.IsNaN(raw) {
		return MinRelevance
	}
	r := math.Floor(raw + 0.5)
	if r < MinRelevance {
		return MinRelevance
	}
	if r > MaxRelevance {
		return MaxRelevance
	}
	return int(r)
}

// ApplyStagePolicy resolves the stage and adjusts an already clamped score.
func ApplyStagePolicy(rawStage string, score int) (entity.Stage, int) {
	stage, ok := entity.ParseStage(rawStage)
	if !ok {
		stage = DefaultStage
	}
	if stage == entity.StageEarly {
		score += EarlyStageBonus
		if score > MaxRelevance {
			score = MaxRelevance
		}
	}
	return stage, score
}
