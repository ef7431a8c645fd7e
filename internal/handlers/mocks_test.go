package handlers_test

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock JourneyService ---
type MockJourneyService struct {
	mock.Mock
}

func (m *MockJourneyService) GetJourneyByMember(ctx context.Context, memberID string, day string) (*domain.Journey, error) {
	args := m.Called(ctx, memberID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}
func (m *MockJourneyService) GetJourneyByControlNumber(ctx context.Context, controlNumber string) (*domain.Journey, error) {
	args := m.Called(ctx, controlNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}
func (m *MockJourneyService) ListJourneys(ctx context.Context, filter domain.JourneyFilter) ([]domain.JourneyDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JourneyDetail), args.Error(1)
}
func (m *MockJourneyService) CheckIn(ctx context.Context, req domain.CheckInRequest) (*domain.Journey, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}
func (m *MockJourneyService) CheckOut(ctx context.Context, req domain.CheckOutRequest) (*domain.Journey, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}
func (m *MockJourneyService) ReopenJourney(ctx context.Context, controlNumber string, actor domain.Actor) (*domain.Journey, error) {
	args := m.Called(ctx, controlNumber, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}
func (m *MockJourneyService) ResetJourney(ctx context.Context, target domain.JourneyResetTarget, actor domain.Actor) (int, error) {
	args := m.Called(ctx, target, actor)
	return args.Int(0), args.Error(1)
}
func (m *MockJourneyService) ResetAllJourneys(ctx context.Context, confirm bool, actor domain.Actor) (int, error) {
	args := m.Called(ctx, confirm, actor)
	return args.Int(0), args.Error(1)
}

var _ portssvc.JourneySvcFacade = (*MockJourneyService)(nil)

// --- Mock MemberService ---
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberService) GetMemberByCooperativeID(ctx context.Context, cooperativeID string) (*domain.Member, error) {
	args := m.Called(ctx, cooperativeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberService) ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}
func (m *MockMemberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest, actor domain.Actor) (*domain.Member, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberService) UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, actor domain.Actor) (*domain.Member, error) {
	args := m.Called(ctx, memberID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberService) DeleteMember(ctx context.Context, memberID string, actor domain.Actor) error {
	args := m.Called(ctx, memberID, actor)
	return args.Error(0)
}

var _ portssvc.MemberSvcFacade = (*MockMemberService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) GetSetting(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
func (m *MockSettingsService) IsCheckoutEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
func (m *MockSettingsService) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}
func (m *MockSettingsService) UpdateSetting(ctx context.Context, key, value string, actor domain.Actor) (*domain.Setting, error) {
	args := m.Called(ctx, key, value, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

var _ portssvc.SettingsSvcFacade = (*MockSettingsService)(nil)

// --- Mock StatisticsService ---
type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) ComputeStatistics(ctx context.Context, day string) (*domain.Statistics, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}
func (m *MockStatisticsService) GetJourneyStats(ctx context.Context, day string) (*domain.JourneyStats, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyStats), args.Error(1)
}
func (m *MockStatisticsService) GetClaimsSummary(ctx context.Context, day string) (*domain.ClaimsSummary, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimsSummary), args.Error(1)
}

var _ portssvc.StatisticsSvc = (*MockStatisticsService)(nil)

// --- Mock AuditLogService ---
type MockAuditLogService struct {
	mock.Mock
}

func (m *MockAuditLogService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

var _ portssvc.AuditLogSvc = (*MockAuditLogService)(nil)
