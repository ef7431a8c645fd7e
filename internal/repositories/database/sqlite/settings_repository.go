package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/models"
	"github.com/g2ix/basic-registration/internal/utils/mapping"
)

type SQLSettingsRepository struct {
	BaseRepository
}

func newSQLSettingsRepository(db *sql.DB) portsrepo.SettingsRepositoryFacade {
	return &SQLSettingsRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.SettingsRepositoryFacade = (*SQLSettingsRepository)(nil)

func scanSetting(row rowScanner) (models.Setting, error) {
	var (
		s         models.Setting
		updatedAt int64
	)
	if err := row.Scan(&s.SettingKey, &s.SettingValue, &s.Description, &updatedAt); err != nil {
		return s, err
	}
	s.UpdatedAt = fromMillis(updatedAt)
	return s, nil
}

func (r *SQLSettingsRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	query := `SELECT setting_key, setting_value, description, updated_at FROM settings WHERE setting_key = ?`
	s, err := scanSetting(r.conn(ctx).QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find setting %s: %w", key, err)
	}
	setting := mapping.ToDomainSetting(s)
	return &setting, nil
}

func (r *SQLSettingsRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `SELECT setting_key, setting_value, description, updated_at FROM settings ORDER BY setting_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}
	return mapping.ToDomainSettingSlice(settings), nil
}

func (r *SQLSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	s := mapping.ToModelSetting(setting)
	query := `
		INSERT INTO settings (setting_key, setting_value, description, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (setting_key) DO UPDATE SET
			setting_value = excluded.setting_value,
			description = excluded.description,
			updated_at = excluded.updated_at
	`
	if _, err := r.conn(ctx).ExecContext(ctx, query, s.SettingKey, s.SettingValue, s.Description, toMillis(s.UpdatedAt)); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", s.SettingKey, err)
	}
	return nil
}
