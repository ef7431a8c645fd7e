package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/core/services"
	"github.com/g2ix/basic-registration/internal/utils/optime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettingsServiceTestSuite struct {
	suite.Suite
	repo      *MockSettingsRepository
	auditRepo *MockAuditLogRepository
	tx        *passthroughTransactor
	service   portssvc.SettingsSvcFacade
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.repo = new(MockSettingsRepository)
	suite.auditRepo = new(MockAuditLogRepository)
	suite.tx = &passthroughTransactor{}
	suite.service = services.NewSettingsService(suite.repo, suite.auditRepo, suite.tx,
		services.WithSettingsClock(optime.NewClock(optime.DefaultZone, func() time.Time { return fixedNow })))
}

func (suite *SettingsServiceTestSuite) TestIsCheckoutEnabled_DefaultsToTrueWhenMissing() {
	suite.repo.On("FindSetting", mock.Anything, domain.SettingCheckoutEnabled).Return(nil, apperrors.ErrNotFound).Once()

	enabled, err := suite.service.IsCheckoutEnabled(context.Background())

	suite.Require().NoError(err)
	suite.True(enabled)
}

func (suite *SettingsServiceTestSuite) TestIsCheckoutEnabled_StoredFalse() {
	suite.repo.On("FindSetting", mock.Anything, domain.SettingCheckoutEnabled).
		Return(&domain.Setting{Key: domain.SettingCheckoutEnabled, Value: "false"}, nil).Once()

	enabled, err := suite.service.IsCheckoutEnabled(context.Background())

	suite.Require().NoError(err)
	suite.False(enabled)
}

func (suite *SettingsServiceTestSuite) TestIsCheckoutEnabled_StoreFailureIsNotMasked() {
	suite.repo.On("FindSetting", mock.Anything, domain.SettingCheckoutEnabled).Return(nil, assert.AnError).Once()

	enabled, err := suite.service.IsCheckoutEnabled(context.Background())

	suite.ErrorIs(err, assert.AnError)
	suite.False(enabled)
}

func (suite *SettingsServiceTestSuite) TestGetSetting_UnknownKey() {
	suite.repo.On("FindSetting", mock.Anything, "theme").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetSetting(context.Background(), "theme")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SettingsServiceTestSuite) TestListSettings_FillsDefaults() {
	suite.repo.On("ListSettings", mock.Anything).Return([]domain.Setting{
		{Key: domain.SettingCheckoutEnabled, Value: "false"},
	}, nil).Once()

	settings, err := suite.service.ListSettings(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(settings, 2)
	suite.Equal(domain.SettingCheckoutEnabled, settings[0].Key)
	suite.Equal("false", settings[0].Value)
	suite.Equal(domain.SettingSystemMaintenance, settings[1].Key)
	suite.Equal("false", settings[1].Value)
}

func (suite *SettingsServiceTestSuite) TestUpdateSetting_WritesValueAndAudit() {
	suite.repo.On("FindSetting", mock.Anything, domain.SettingCheckoutEnabled).Return(nil, apperrors.ErrNotFound).Once()
	suite.repo.On("UpsertSetting", mock.Anything, mock.MatchedBy(func(s domain.Setting) bool {
		return s.Key == domain.SettingCheckoutEnabled && s.Value == "false" && s.UpdatedAt.Equal(fixedNow)
	})).Return(nil).Once()
	suite.auditRepo.On("AppendAuditLog", mock.Anything, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditUpdateSetting && e.TableName == domain.TableSettings &&
			e.RecordID == domain.SettingCheckoutEnabled && e.StaffID == "admin"
	})).Return(nil).Once()

	setting, err := suite.service.UpdateSetting(context.Background(), domain.SettingCheckoutEnabled, " FALSE ", domain.Actor{StaffID: "admin"})

	suite.Require().NoError(err)
	suite.Equal("false", setting.Value)
	suite.Equal(1, suite.tx.calls)
	suite.repo.AssertExpectations(suite.T())
	suite.auditRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateSetting_Rejections() {
	_, err := suite.service.UpdateSetting(context.Background(), "theme", "true", domain.Actor{})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateSetting(context.Background(), domain.SettingCheckoutEnabled, "maybe", domain.Actor{})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.repo.AssertNotCalled(suite.T(), "UpsertSetting", mock.Anything, mock.Anything)
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
