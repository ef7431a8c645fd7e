package services_test

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock JourneyRepository ---
type MockJourneyRepository struct {
	mock.Mock
}

func (m *MockJourneyRepository) FindJourneyByMemberAndDay(ctx context.Context, memberID, day string) (*domain.Journey, error) {
	args := m.Called(ctx, memberID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyRepository) FindJourneyByControlNumber(ctx context.Context, controlNumber string) (*domain.Journey, error) {
	args := m.Called(ctx, controlNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyRepository) ListJourneys(ctx context.Context, filter domain.JourneyFilter) ([]domain.JourneyDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JourneyDetail), args.Error(1)
}

func (m *MockJourneyRepository) CountJourneysByMember(ctx context.Context, memberID string) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockJourneyRepository) SaveJourney(ctx context.Context, journey domain.Journey) error {
	args := m.Called(ctx, journey)
	return args.Error(0)
}

func (m *MockJourneyRepository) CompleteJourney(ctx context.Context, journeyID string, checkout domain.JourneyCheckout) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID, checkout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyRepository) ReopenJourney(ctx context.Context, journeyID string) (*domain.Journey, error) {
	args := m.Called(ctx, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journey), args.Error(1)
}

func (m *MockJourneyRepository) DeleteJourneyByControlNumber(ctx context.Context, controlNumber string) (int, error) {
	args := m.Called(ctx, controlNumber)
	return args.Int(0), args.Error(1)
}

func (m *MockJourneyRepository) DeleteJourneysByMember(ctx context.Context, memberID string) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockJourneyRepository) DeleteAllJourneys(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var _ portsrepo.JourneyRepositoryFacade = (*MockJourneyRepository)(nil)

// --- Mock MemberRepository ---
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMemberByCooperativeID(ctx context.Context, cooperativeID string) (*domain.Member, error) {
	args := m.Called(ctx, cooperativeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembers(ctx context.Context, filter domain.MemberFilter) ([]domain.Member, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) DeleteMember(ctx context.Context, memberID string) error {
	args := m.Called(ctx, memberID)
	return args.Error(0)
}

var _ portsrepo.MemberRepositoryFacade = (*MockMemberRepository)(nil)

// --- Mock AuditLogRepository ---
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

var _ portsrepo.AuditLogRepositoryFacade = (*MockAuditLogRepository)(nil)

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *MockSettingsRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Setting), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

var _ portsrepo.SettingsRepositoryFacade = (*MockSettingsRepository)(nil)

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

var _ portssvc.SettingsReaderSvc = (*MockSettingsService)(nil)

// --- Mock StatisticsRepository ---
type MockStatisticsRepository struct {
	mock.Mock
}

func (m *MockStatisticsRepository) CountMembersByType(ctx context.Context) (domain.TypeCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.TypeCounts), args.Error(1)
}

func (m *MockStatisticsRepository) CountAttendeesByType(ctx context.Context, day string) (domain.TypeCounts, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(domain.TypeCounts), args.Error(1)
}

func (m *MockStatisticsRepository) GetJourneyStats(ctx context.Context, day string) (*domain.JourneyStats, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JourneyStats), args.Error(1)
}

func (m *MockStatisticsRepository) GetClaimsByTerminal(ctx context.Context, day string) ([]domain.TerminalClaims, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TerminalClaims), args.Error(1)
}

var _ portsrepo.StatisticsRepository = (*MockStatisticsRepository)(nil)

// passthroughTransactor runs the unit of work without a real transaction.
type passthroughTransactor struct {
	calls int
}

func (t *passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var _ portsrepo.Transactor = (*passthroughTransactor)(nil)
