package repositories

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// SettingsReader reads the settings key/value table
type SettingsReader interface {
	// FindSetting retrieves a setting. Returns apperrors.ErrNotFound when the key has no row.
	FindSetting(ctx context.Context, key string) (*domain.Setting, error)

	// ListSettings retrieves all stored settings ordered by key.
	ListSettings(ctx context.Context) ([]domain.Setting, error)
}

// SettingsWriter writes the settings key/value table
type SettingsWriter interface {
	// UpsertSetting inserts or replaces a setting value.
	UpsertSetting(ctx context.Context, setting domain.Setting) error
}

// SettingsRepositoryFacade combines all settings repository interfaces
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
