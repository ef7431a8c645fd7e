package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/models"
	"github.com/g2ix/basic-registration/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingsRepository struct {
	BaseRepository
}

func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepositoryFacade {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SettingsRepositoryFacade = (*PgxSettingsRepository)(nil)

// FindSetting retrieves a setting by key.
func (r *PgxSettingsRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	query := `SELECT setting_key, setting_value, description, updated_at FROM settings WHERE setting_key = $1;`
	var s models.Setting
	err := r.conn(ctx).QueryRow(ctx, query, key).Scan(&s.SettingKey, &s.SettingValue, &s.Description, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find setting %s: %w", key, err)
	}
	setting := mapping.ToDomainSetting(s)
	return &setting, nil
}

// ListSettings retrieves every stored setting ordered by key.
func (r *PgxSettingsRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT setting_key, setting_value, description, updated_at FROM settings ORDER BY setting_key;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Setting, error) {
		var s models.Setting
		err := row.Scan(&s.SettingKey, &s.SettingValue, &s.Description, &s.UpdatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}
	return mapping.ToDomainSettingSlice(settings), nil
}

// UpsertSetting inserts or replaces a setting value.
func (r *PgxSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	s := mapping.ToModelSetting(setting)
	query := `
		INSERT INTO settings (setting_key, setting_value, description, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (setting_key) DO UPDATE SET
			setting_value = EXCLUDED.setting_value,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.conn(ctx).Exec(ctx, query, s.SettingKey, s.SettingValue, s.Description, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", s.SettingKey, err)
	}
	return nil
}
