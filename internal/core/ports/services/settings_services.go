package services

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// SettingsReaderSvc reads feature flags
type SettingsReaderSvc interface {
	// GetSetting returns the stored value of key, or its default when unset.
	GetSetting(ctx context.Context, key string) (string, error)

	// IsCheckoutEnabled reports the checkout kill switch.
	IsCheckoutEnabled(ctx context.Context) (bool, error)

	// ListSettings returns every known setting, stored or defaulted.
	ListSettings(ctx context.Context) ([]domain.Setting, error)
}

// SettingsWriterSvc changes feature flags
type SettingsWriterSvc interface {
	// UpdateSetting validates and stores a value for a known key.
	UpdateSetting(ctx context.Context, key, value string, actor domain.Actor) (*domain.Setting, error)
}

// SettingsSvcFacade combines all settings service interfaces
type SettingsSvcFacade interface {
	SettingsReaderSvc
	SettingsWriterSvc
}
