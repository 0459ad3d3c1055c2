package repository

import (
	"time"

	"venture-feed/internal/domain/entity"
)

// SignalFilter narrows article and research listings.
// Nil fields are not applied.
type SignalFilter struct {
	Sector *entity.SectorTag
	Since  *time.Time
	Until  *time.Time
	Stage  *entity.Stage // articles only
	Limit  int
}

// StartupView selects which population of startups is listed.
type StartupView string

const (
	// ViewAll lists every startup.
	ViewAll StartupView = ""
	// ViewNews lists startups discovered in news with no accelerator or university.
	ViewNews StartupView = "news"
	// ViewAccelerators lists accelerator-backed startups.
	ViewAccelerators StartupView = "accelerators"
	// ViewAcademic lists university-affiliated startups.
	ViewAcademic StartupView = "academic"
)

// StartupFilter narrows startup listings.
type StartupFilter struct {
	Sector       *entity.SectorTag
	View         StartupView
	Accelerator  string
	University   string
	FeaturedOnly bool
	Limit        int
}

// EventFilter narrows event listings.
// When Past is false, events on or after Since are returned ascending by date;
// otherwise events in [Since, Until) are returned descending.
type EventFilter struct {
	City  string
	Since *time.Time
	Until *time.Time
	Past  bool
	Limit int
}

// DefaultLimit applies when a filter carries no positive Limit.
const DefaultLimit = 100

// LimitOr returns limit when positive, otherwise DefaultLimit.
func LimitOr(limit int) int {
	if limit > 0 {
		return limit
	}
	return DefaultLimit
}
