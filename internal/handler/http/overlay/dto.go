// Package overlay provides the HTTP handlers for per-user state: pins,
// dismissals, stars, startup alert subscriptions and digest preferences.
// A missing userId falls back to the demo identity.
package overlay

import (
	"time"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/handler/http/signal"
)

// ItemRefRequest is the body of POST /pins and POST /dismissed.
type ItemRefRequest struct {
	UserID   string `json:"userId" example:"demo-user"`
	ItemType string `json:"itemType" example:"article"`
	ItemID   int64  `json:"itemId" example:"42"`
}

// ItemRefDTO is one pinned or dismissed item.
type ItemRefDTO struct {
	ItemType  string    `json:"item_type" example:"article"`
	ItemID    int64     `json:"item_id" example:"42"`
	CreatedAt time.Time `json:"created_at"`
}

// PinsResponse is returned by GET /pins.
type PinsResponse struct {
	Pins []ItemRefDTO `json:"pins"`
}

// DismissedResponse is returned by GET /dismissed.
type DismissedResponse struct {
	Dismissed []ItemRefDTO `json:"dismissed"`
}

// StarRequest is the body of POST /star.
type StarRequest struct {
	UserID         string   `json:"userId" example:"demo-user"`
	StartupName    string   `json:"startupName" example:"Acme"`
	StartupWebsite string   `json:"startupWebsite,omitempty" example:"https://acme.ai"`
	SectorTags     []string `json:"sectorTags,omitempty" example:"AI-native"`
}

// StarResponse carries the id of the starred startup.
type StarResponse struct {
	StartupID int64 `json:"startupId" example:"7"`
}

// StarredResponse is returned by GET /starred.
type StarredResponse struct {
	Startups []signal.StartupDTO `json:"startups"`
}

// SubscriptionRequest is the body of POST /notifications/startups.
type SubscriptionRequest struct {
	UserID    string `json:"userId" example:"demo-user"`
	StartupID int64  `json:"startupId" example:"7"`
}

// SubscriptionsResponse is returned by GET /notifications/startups.
type SubscriptionsResponse struct {
	StartupIDs []int64 `json:"startupIds"`
}

// PreferencesDTO is the body and response of /notifications/preferences.
type PreferencesDTO struct {
	UserID        string `json:"userId" example:"demo-user"`
	Email         string `json:"email,omitempty" example:"partner@fund.vc"`
	DigestEnabled bool   `json:"digestEnabled"`
	Frequency     string `json:"frequency" example:"daily"`
}

// OKResponse acknowledges a delete.
type OKResponse struct {
	OK bool `json:"ok" example:"true"`
}

func toItemRefDTOs(refs []entity.ItemRef) []ItemRefDTO {
	out := make([]ItemRefDTO, 0, len(refs))
	for _, r := range refs {
		out = append(out, ItemRefDTO{ItemType: string(r.ItemType), ItemID: r.ItemID, CreatedAt: r.CreatedAt})
	}
	return out
}

func toPreferencesDTO(p *entity.NotificationPreference) PreferencesDTO {
	return PreferencesDTO{
		UserID:        p.UserID,
		Email:         p.Email,
		DigestEnabled: p.DigestEnabled,
		Frequency:     string(p.Frequency),
	}
}
