package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/utils/optime"
)

type settingsService struct {
	BaseService
	settingsRepo portsrepo.SettingsRepositoryFacade
	auditRepo    portsrepo.AuditLogWriter
	tx           portsrepo.Transactor
	clock        *optime.Clock
}

// SettingsServiceOption is a functional option for configuring the settings service
type SettingsServiceOption func(*settingsService)

// WithSettingsClock sets the clock used for update timestamps.
func WithSettingsClock(clock *optime.Clock) SettingsServiceOption {
	return func(s *settingsService) {
		s.clock = clock
	}
}

// NewSettingsService creates a settings service.
func NewSettingsService(repo portsrepo.SettingsRepositoryFacade, auditRepo portsrepo.AuditLogWriter, tx portsrepo.Transactor, options ...SettingsServiceOption) portssvc.SettingsSvcFacade {
	svc := &settingsService{
		BaseService:  newBaseService(),
		settingsRepo: repo,
		auditRepo:    auditRepo,
		tx:           tx,
		clock:        optime.NewClock(optime.DefaultZone, nil),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSetting returns the stored value of key or its registered default.
// Storage failures are returned, never masked by the default.
func (s *settingsService) GetSetting(ctx context.Context, key string) (string, error) {
	setting, err := s.settingsRepo.FindSetting(ctx, key)
	if err == nil {
		return setting.Value, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		if def, ok := domain.SettingDefaults[key]; ok {
			return def, nil
		}
		return "", fmt.Errorf("setting %q: %w", key, apperrors.ErrNotFound)
	}
	s.LogError(ctx, err, "Failed to read setting", slog.String("key", key))
	return "", fmt.Errorf("failed to read setting %q: %w", key, err)
}

// IsCheckoutEnabled reports the checkout kill switch.
func (s *settingsService) IsCheckoutEnabled(ctx context.Context) (bool, error) {
	value, err := s.GetSetting(ctx, domain.SettingCheckoutEnabled)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

// ListSettings returns every known setting, filling defaults for missing rows.
func (s *settingsService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	stored, err := s.settingsRepo.ListSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settings")
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	byKey := make(map[string]domain.Setting, len(stored))
	for _, st := range stored {
		byKey[st.Key] = st
	}
	for key, def := range domain.SettingDefaults {
		if _, ok := byKey[key]; !ok {
			byKey[key] = domain.Setting{Key: key, Value: def, Description: domain.SettingDescriptions[key]}
		}
	}

	settings := make([]domain.Setting, 0, len(byKey))
	for _, st := range byKey {
		settings = append(settings, st)
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings, nil
}

// UpdateSetting stores a value for a known key. Managed settings are booleans.
func (s *settingsService) UpdateSetting(ctx context.Context, key, value string, actor domain.Actor) (*domain.Setting, error) {
	if !domain.IsKnownSetting(key) {
		return nil, fmt.Errorf("%w: unknown setting %q", apperrors.ErrValidation, key)
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("%w: setting %q must be true or false", apperrors.ErrValidation, key)
	}

	previous, err := s.GetSetting(ctx, key)
	if err != nil {
		return nil, err
	}

	setting := domain.Setting{
		Key:         key,
		Value:       strconv.FormatBool(parsed),
		Description: domain.SettingDescriptions[key],
		UpdatedAt:   s.clock.Now(),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.settingsRepo.UpsertSetting(ctx, setting); err != nil {
			return err
		}
		entry, err := domain.NewAuditLogEntry(domain.AuditUpdateSetting, domain.TableSettings, key, actor.StaffID, actor.TerminalID,
			map[string]string{"setting_value": previous}, map[string]string{"setting_value": setting.Value}, setting.UpdatedAt)
		if err != nil {
			return err
		}
		return s.auditRepo.AppendAuditLog(ctx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update setting", slog.String("key", key))
		return nil, fmt.Errorf("failed to update setting: %w", err)
	}

	s.LogInfo(ctx, "Setting updated",
		slog.String("key", key),
		slog.String("old_value", previous),
		slog.String("new_value", setting.Value),
		slog.String("staff_id", actor.StaffID))
	return &setting, nil
}
