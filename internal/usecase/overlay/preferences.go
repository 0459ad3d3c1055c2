package overlay

import (
	"context"
	"fmt"

	"venture-feed/internal/domain/entity"
)

// GetPreferences returns stored preferences, or daily digests switched off
// when the user never saved any.
func (s *Service) GetPreferences(ctx context.Context, userID string) (*entity.NotificationPreference, error) {
	userID = s.UserID(userID)
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}
	pref, err := s.Preferences.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	if pref == nil {
		pref = &entity.NotificationPreference{UserID: userID, Frequency: entity.DigestDaily}
	}
	return pref, nil
}

// UpdatePreferences replaces the user's preferences. An empty frequency
// means daily.
func (s *Service) UpdatePreferences(ctx context.Context, pref entity.NotificationPreference) (*entity.NotificationPreference, error) {
	pref.UserID = s.UserID(pref.UserID)
	if pref.Frequency == "" {
		pref.Frequency = entity.DigestDaily
	}
	if err := pref.Validate(); err != nil {
		return nil, err
	}
	if err := s.Preferences.Upsert(ctx, &pref); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return &pref, nil
}
