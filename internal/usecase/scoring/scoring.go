// Package scoring computes the rubric score of a single startup mention.
package scoring

import "venture-feed/internal/domain/entity"

// Rubric points.
const (
	PointsBase            = 1
	PointsSignedCustomers = 5
	PointsFunding         = 4
	PointsHiring          = 2
	PointsResearch        = 3
)

// Verticals are the sectors that earn the base point on their own.
var Verticals = map[entity.SectorTag]struct{}{
	entity.SectorAINative:     {},
	entity.SectorFintech:      {},
	entity.SectorRobotics:     {},
	entity.SectorVerticalSaaS: {},
}

// Observation is one mention's worth of scoring input.
type Observation struct {
	SectorTags      []entity.SectorTag
	EventType       entity.EventType
	SignedCustomers bool
	TeamGrew        bool
	RaisedFunding   bool
	InIngestedNews  bool
}

// ArticleScoreForStartup is the additive rubric. It never caps; a zero
// result means the mention carries no signal.
func ArticleScoreForStartup(o Observation) int {
	score := 0

	// vertical match and news presence share one point
	if hasVertical(o.SectorTags) || o.InIngestedNews {
		score += PointsBase
	}
	if o.SignedCustomers {
		score += PointsSignedCustomers
	}
	if o.EventType == entity.EventAccelerator || o.EventType == entity.EventFundraise || o.RaisedFunding {
		score += PointsFunding
	}
	if o.EventType == entity.EventMajorHiring || o.TeamGrew {
		score += PointsHiring
	}
	if o.EventType == entity.EventResearchBreakthrough || o.EventType == entity.EventUniversityLab {
		score += PointsResearch
	}
	return score
}

func hasVertical(tags []entity.SectorTag) bool {
	for _, t := range tags {
		if _, ok := Verticals[t]; ok {
			return true
		}
	}
	return false
}
