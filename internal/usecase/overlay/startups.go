package overlay

import (
	"context"
	"fmt"

	"venture-feed/internal/domain/entity"
)

// StarInput names the startup to star. The startup is created with zero
// score when no row matches the name.
type StarInput struct {
	UserID     string
	Name       string
	Website    string
	SectorTags []string
}

// ListStarred returns the user's starred startups.
func (s *Service) ListStarred(ctx context.Context, userID string) ([]*entity.Startup, error) {
	userID = s.UserID(userID)
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}
	startups, err := s.Stars.ListStartups(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list starred: %w", err)
	}
	return startups, nil
}

// Star stars the named startup and returns it.
func (s *Service) Star(ctx context.Context, in StarInput) (*entity.Startup, error) {
	userID := s.UserID(in.UserID)
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if in.Website != "" {
		if err := entity.ValidateURL(in.Website); err != nil {
			return nil, err
		}
	}

	startup, _, err := s.Startups.EnsureStartup(ctx, in.Name, in.Website, entity.NormalizeSectorTags(in.SectorTags))
	if err != nil {
		return nil, err
	}
	if err := s.Stars.Add(ctx, userID, startup.ID); err != nil {
		return nil, fmt.Errorf("star %d: %w", startup.ID, err)
	}
	return startup, nil
}

func (s *Service) Unstar(ctx context.Context, userID string, startupID int64) error {
	userID, err := s.startupTarget(userID, startupID)
	if err != nil {
		return err
	}
	if err := s.Stars.Remove(ctx, userID, startupID); err != nil {
		return fmt.Errorf("unstar %d: %w", startupID, err)
	}
	return nil
}

// ListSubscriptions returns the startups the user wants alerts for.
func (s *Service) ListSubscriptions(ctx context.Context, userID string) ([]entity.Subscription, error) {
	userID = s.UserID(userID)
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}
	subs, err := s.Subscriptions.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

func (s *Service) Subscribe(ctx context.Context, userID string, startupID int64) error {
	userID, err := s.startupTarget(userID, startupID)
	if err != nil {
		return err
	}
	if err := s.Subscriptions.Add(ctx, userID, startupID); err != nil {
		return fmt.Errorf("subscribe %d: %w", startupID, err)
	}
	return nil
}

func (s *Service) Unsubscribe(ctx context.Context, userID string, startupID int64) error {
	userID, err := s.startupTarget(userID, startupID)
	if err != nil {
		return err
	}
	if err := s.Subscriptions.Remove(ctx, userID, startupID); err != nil {
		return fmt.Errorf("unsubscribe %d: %w", startupID, err)
	}
	return nil
}

func (s *Service) startupTarget(userID string, startupID int64) (string, error) {
	userID = s.UserID(userID)
	if err := entity.ValidateUserID(userID); err != nil {
		return "", err
	}
	if startupID <= 0 {
		return "", &entity.ValidationError{Field: "startupId", Message: "startupId must be positive"}
	}
	return userID, nil
}
