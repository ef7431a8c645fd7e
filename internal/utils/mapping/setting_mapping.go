package mapping

import (
	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/models"
)

// ToModelSetting converts a domain Setting to a model Setting
func ToModelSetting(d domain.Setting) models.Setting {
	return models.Setting{
		SettingKey:   d.Key,
		SettingValue: d.Value,
		Description:  d.Description,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDomainSetting converts a model Setting to a domain Setting
func ToDomainSetting(m models.Setting) domain.Setting {
	return domain.Setting{
		Key:         m.SettingKey,
		Value:       m.SettingValue,
		Description: m.Description,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToDomainSettingSlice converts model Settings to domain Settings
func ToDomainSettingSlice(ms []models.Setting) []domain.Setting {
	ds := make([]domain.Setting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSetting(m)
	}
	return ds
}
