package entity

import (
	"strconv"
	"time"
)

// ItemType identifies the kind of item an overlay row refers to.
type ItemType string

const (
	ItemArticle  ItemType = "article"
	ItemEvent    ItemType = "event"
	ItemResearch ItemType = "research"
	ItemStartup  ItemType = "startup"
)

// ParseItemType returns the ItemType for s, or false when s is not one.
func ParseItemType(s string) (ItemType, bool) {
	switch t := ItemType(s); t {
	case ItemArticle, ItemEvent, ItemResearch, ItemStartup:
		return t, true
	}
	return "", false
}

// ItemRef is a (type, id) pair scoped to one user.
type ItemRef struct {
	UserID    string
	ItemType  ItemType
	ItemID    int64
	CreatedAt time.Time
}

// Key renders the reference as "type:id".
func (r ItemRef) Key() string {
	return string(r.ItemType) + ":" + strconv.FormatInt(r.ItemID, 10)
}

// Star marks a startup as starred by a user.
type Star struct {
	UserID    string
	StartupID int64
	CreatedAt time.Time
}

// Subscription asks for alerts about a specific startup.
type Subscription struct {
	UserID    string
	StartupID int64
	CreatedAt time.Time
}

// DigestFrequency is how often a digest would be delivered.
type DigestFrequency string

const (
	DigestDaily  DigestFrequency = "daily"
	DigestWeekly DigestFrequency = "weekly"
)

// NotificationPreference stores digest settings for a user.
type NotificationPreference struct {
	UserID        string
	Email         string
	DigestEnabled bool
	Frequency     DigestFrequency
	UpdatedAt     time.Time
}
