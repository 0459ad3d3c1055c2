// Package overlay manages per-user state layered over the shared signals:
// pins, dismissals, starred startups, alert subscriptions and digest
// preferences. Every operation is a plain keyed toggle.
package overlay

import (
	"context"
	"fmt"
	"strings"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/repository"
	"venture-feed/internal/usecase/merge"
)

// DefaultUserID is the identity used when a request names no user.
const DefaultUserID = "demo-user"

// StartupEnsurer finds or creates a startup by name.
type StartupEnsurer interface {
	EnsureStartup(ctx context.Context, name, website string, tags []entity.SectorTag) (*entity.Startup, merge.Outcome, error)
}

// Service provides the overlay use cases.
type Service struct {
	Pins          repository.ItemRefRepository
	Dismissals    repository.ItemRefRepository
	Stars         repository.StarRepository
	Subscriptions repository.SubscriptionRepository
	Preferences   repository.PreferenceRepository
	Startups      StartupEnsurer

	// DemoUserID replaces an empty user id. Defaults to DefaultUserID.
	DemoUserID string
}

// UserID returns id, or the demo identity when id is blank.
func (s *Service) UserID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	if s.DemoUserID != "" {
		return s.DemoUserID
	}
	return DefaultUserID
}

// ListPins returns the user's pinned items, newest first.
func (s *Service) ListPins(ctx context.Context, userID string) ([]entity.ItemRef, error) {
	return s.listRefs(ctx, s.Pins, "pins", userID)
}

// Pin is idempotent.
func (s *Service) Pin(ctx context.Context, ref entity.ItemRef) error {
	return s.addRef(ctx, s.Pins, "pin", ref)
}

func (s *Service) Unpin(ctx context.Context, ref entity.ItemRef) error {
	return s.removeRef(ctx, s.Pins, "unpin", ref)
}

// ListDismissed returns the items the user hid.
func (s *Service) ListDismissed(ctx context.Context, userID string) ([]entity.ItemRef, error) {
	return s.listRefs(ctx, s.Dismissals, "dismissals", userID)
}

func (s *Service) Dismiss(ctx context.Context, ref entity.ItemRef) error {
	return s.addRef(ctx, s.Dismissals, "dismiss", ref)
}

func (s *Service) Undismiss(ctx context.Context, ref entity.ItemRef) error {
	return s.removeRef(ctx, s.Dismissals, "undismiss", ref)
}

func (s *Service) listRefs(ctx context.Context, repo repository.ItemRefRepository, what, userID string) ([]entity.ItemRef, error) {
	userID = s.UserID(userID)
	if err := entity.ValidateUserID(userID); err != nil {
		return nil, err
	}
	refs, err := repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", what, err)
	}
	return refs, nil
}

func (s *Service) addRef(ctx context.Context, repo repository.ItemRefRepository, op string, ref entity.ItemRef) error {
	ref.UserID = s.UserID(ref.UserID)
	if err := ref.Validate(); err != nil {
		return err
	}
	if err := repo.Add(ctx, ref); err != nil {
		return fmt.Errorf("%s %s: %w", op, ref.Key(), err)
	}
	return nil
}

func (s *Service) removeRef(ctx context.Context, repo repository.ItemRefRepository, op string, ref entity.ItemRef) error {
	ref.UserID = s.UserID(ref.UserID)
	if err := ref.Validate(); err != nil {
		return err
	}
	if err := repo.Remove(ctx, ref); err != nil {
		return fmt.Errorf("%s %s: %w", op, ref.Key(), err)
	}
	return nil
}
