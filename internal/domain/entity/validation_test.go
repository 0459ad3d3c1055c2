package entity_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"venture-feed/internal/domain/entity"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://example.com/a", false},
		{"http", "http://example.com", false},
		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"no host", "https://", true},
		{"too long", "https://example.com/" + strings.Repeat("a", 2100), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entity.ValidateURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, entity.ErrValidationFailed))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestItemRef_Validate(t *testing.T) {
	ok := entity.ItemRef{UserID: "demo-user", ItemType: entity.ItemStartup, ItemID: 3}
	assert.NoError(t, ok.Validate())
	assert.Equal(t, "startup:3", ok.Key())

	bad := []entity.ItemRef{
		{UserID: "", ItemType: entity.ItemArticle, ItemID: 1},
		{UserID: "u", ItemType: "tweet", ItemID: 1},
		{UserID: "u", ItemType: entity.ItemEvent, ItemID: 0},
	}
	for _, r := range bad {
		var verr *entity.ValidationError
		assert.True(t, errors.As(r.Validate(), &verr), "%+v", r)
	}
}

func TestValidateStartupName(t *testing.T) {
	assert.NoError(t, entity.ValidateStartupName("Acme"))
	assert.Error(t, entity.ValidateStartupName("   "))
	assert.Error(t, entity.ValidateStartupName(strings.Repeat("x", 201)))
}

func TestNotificationPreference_Validate(t *testing.T) {
	p := entity.NotificationPreference{UserID: "u", Email: "a@b.co", Frequency: entity.DigestDaily}
	assert.NoError(t, p.Validate())

	p.Frequency = "hourly"
	assert.Error(t, p.Validate())

	p.Frequency = entity.DigestWeekly
	p.Email = "nope"
	assert.Error(t, p.Validate())
}

func TestValidationError_Error(t *testing.T) {
	err := &entity.ValidationError{Field: "email", Message: "email must be a valid address"}
	assert.Equal(t, "email must be a valid address", err.Error())
	assert.Equal(t, "itemId is invalid", (&entity.ValidationError{Field: "itemId"}).Error())
	assert.ErrorIs(t, fmt.Errorf("save: %w", err), entity.ErrValidationFailed)
	assert.NotErrorIs(t, err, entity.ErrInvalidInput)
}
