package entity

// SectorTag is one of the closed set of investment sectors.
type SectorTag string

const (
	SectorAINative     SectorTag = "AI-native"
	SectorVerticalSaaS SectorTag = "Vertical SaaS"
	SectorFintech      SectorTag = "Fintech"
	SectorRobotics     SectorTag = "Robotics"
	SectorOther        SectorTag = "Other"
)

// SectorTags lists every valid sector tag in display order.
var SectorTags = []SectorTag{SectorAINative, SectorVerticalSaaS, SectorFintech, SectorRobotics, SectorOther}

// IsValid reports whether t belongs to the closed sector set.
func (t SectorTag) IsValid() bool {
	for _, v := range SectorTags {
		if v == t {
			return true
		}
	}
	return false
}

// NormalizeSectorTags keeps the valid tags of raw, drops duplicates and
// preserves the first-seen order. The result is never nil.
func NormalizeSectorTags(raw []string) []SectorTag {
	out := make([]SectorTag, 0, len(raw))
	seen := make(map[SectorTag]struct{}, len(raw))
	for _, r := range raw {
		t := SectorTag(r)
		if !t.IsValid() {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SectorStrings converts tags back to plain strings.
func SectorStrings(tags []SectorTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

// EventType categorises what a news item is about.
type EventType string

const (
	EventFundraise            EventType = "Fundraise"
	EventMajorHiring          EventType = "Major Hiring"
	EventProductLaunch        EventType = "Product Launch"
	EventAccelerator          EventType = "Accelerator"
	EventResearchBreakthrough EventType = "Research Breakthrough"
	EventUniversityLab        EventType = "University Lab Initiative"
	EventPolicyRegulation     EventType = "Policy / Regulation"
	EventAcquisition          EventType = "Acquisition"
	EventEvent                EventType = "Event"
	EventGeneralNews          EventType = "General News"
)

// EventTypes lists every valid event type.
var EventTypes = []EventType{
	EventFundraise, EventMajorHiring, EventProductLaunch, EventAccelerator,
	EventResearchBreakthrough, EventUniversityLab, EventPolicyRegulation,
	EventAcquisition, EventEvent, EventGeneralNews,
}

// ParseEventType maps s onto the closed set; anything unknown is General News.
func ParseEventType(s string) EventType {
	for _, v := range EventTypes {
		if string(v) == s {
			return v
		}
	}
	return EventGeneralNews
}

// Stage is the funding stage a news item concerns.
type Stage string

const (
	StageEarly  Stage = "early_stage"
	StageGrowth Stage = "growth_late_stage"
	StagePublic Stage = "public_pe"
)

// ParseStage returns the stage for s, or false when s is not a known stage.
func ParseStage(s string) (Stage, bool) {
	switch st := Stage(s); st {
	case StageEarly, StageGrowth, StagePublic:
		return st, true
	}
	return "", false
}

// Accelerators recognised by the startup extractor and the directory ingest.
var Accelerators = []string{"YC", "SPC", "Neo", "Techstars", "500 Global"}

// Universities recognised by the startup extractor.
var Universities = []string{"CMU", "MIT", "Stanford", "Berkeley", "Harvard", "Other"}

// OneOf returns s when it is an element of set, otherwise "".
func OneOf(s string, set []string) string {
	for _, v := range set {
		if v == s {
			return s
		}
	}
	return ""
}
