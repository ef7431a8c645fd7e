package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/core/services"
	"github.com/g2ix/basic-registration/internal/repositories/database/sqlite"
	"github.com/g2ix/basic-registration/internal/utils/optime"
	"github.com/g2ix/basic-registration/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const day = "2024-03-15"

var checkInAt = time.Date(2024, 3, 15, 1, 30, 0, 0, time.UTC)

type StoreTestSuite struct {
	suite.Suite
	db    *sql.DB
	repos portsrepo.RepositoryProvider
	ctx   context.Context
}

func (s *StoreTestSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "registration.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Require().NoError(sqlite.RunMigrations(path, logger))

	db, err := database.OpenSQLite(context.Background(), path)
	s.Require().NoError(err)
	s.db = db
	s.repos = sqlite.NewRepositoryProvider(db)
	s.ctx = context.Background()
}

func (s *StoreTestSuite) TearDownTest() {
	database.CloseSQLite(s.db)
}

func (s *StoreTestSuite) saveMember(id, cooperativeID string, memberType domain.MemberType) domain.Member {
	m := domain.Member{
		MemberID:      id,
		CooperativeID: cooperativeID,
		FirstName:     "Ana",
		LastName:      "Santos " + id,
		MemberType:    memberType,
		Status:        domain.MemberStatusActive,
		Eligibility:   domain.Eligible,
		RegisteredAt:  checkInAt,
		Timestamps:    domain.Timestamps{CreatedAt: checkInAt, UpdatedAt: checkInAt},
	}
	s.Require().NoError(s.repos.MemberRepo.SaveMember(s.ctx, m))
	return m
}

func (s *StoreTestSuite) saveJourney(id, memberID, controlNumber string) domain.Journey {
	j := domain.Journey{
		JourneyID:       id,
		MemberID:        memberID,
		ControlNumber:   controlNumber,
		CheckInDate:     day,
		CheckInTime:     checkInAt,
		CheckInTerminal: "T1",
		MealStubIssued:  true,
		Status:          domain.JourneyCheckedIn,
		Timestamps:      domain.Timestamps{CreatedAt: checkInAt, UpdatedAt: checkInAt},
	}
	s.Require().NoError(s.repos.JourneyRepo.SaveJourney(s.ctx, j))
	return j
}

func checkoutOf(outcome domain.CheckoutOutcome) domain.JourneyCheckout {
	return domain.JourneyCheckout{
		CheckOutTime:       checkInAt.Add(4 * time.Hour),
		CheckOutTerminal:   "T9",
		StaffID:            "staff-1",
		CheckoutResolution: domain.ResolveCheckout(outcome, ""),
	}
}

func (s *StoreTestSuite) TestMemberRoundTrip() {
	initial := "R"
	m := s.saveMember("m-1", "C-001", domain.MemberTypeRegular)
	m.MiddleInitial = &initial
	m.Eligibility = domain.NotEligible
	s.Require().NoError(s.repos.MemberRepo.UpdateMember(s.ctx, m))

	got, err := s.repos.MemberRepo.FindMemberByCooperativeID(s.ctx, "C-001")
	s.Require().NoError(err)
	s.Equal("m-1", got.MemberID)
	s.Require().NotNil(got.MiddleInitial)
	s.Equal("R", *got.MiddleInitial)
	s.Equal(domain.NotEligible, got.Eligibility)
	s.True(got.RegisteredAt.Equal(checkInAt))

	err = s.repos.MemberRepo.SaveMember(s.ctx, domain.Member{
		MemberID: "m-2", CooperativeID: "C-001", FirstName: "B", LastName: "C",
		MemberType: domain.MemberTypeAssociate, Status: domain.MemberStatusActive, Eligibility: domain.Eligible,
	})
	s.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = s.repos.MemberRepo.FindMemberByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.repos.MemberRepo.UpdateMember(s.ctx, domain.Member{MemberID: "missing", MemberType: domain.MemberTypeRegular, Status: domain.MemberStatusActive, Eligibility: domain.Eligible}), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestListMembers_SearchAndPaging() {
	s.saveMember("m-1", "C-001", domain.MemberTypeRegular)
	s.saveMember("m-2", "C-002", domain.MemberTypeAssociate)
	s.saveMember("m-3", "X-003", domain.MemberTypeRegular)

	got, err := s.repos.MemberRepo.ListMembers(s.ctx, domain.MemberFilter{Search: "c-00", Page: domain.Page{Limit: 10}})
	s.Require().NoError(err)
	s.Len(got, 2)

	got, err = s.repos.MemberRepo.ListMembers(s.ctx, domain.MemberFilter{MemberType: domain.MemberTypeRegular, Page: domain.Page{Limit: 1, Offset: 1}})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("m-3", got[0].MemberID)
}

func (s *StoreTestSuite) TestSaveJourney_UniqueConstraints() {
	s.saveMember("m-1", "C-001", domain.MemberTypeRegular)
	s.saveMember("m-2", "C-002", domain.MemberTypeRegular)
	s.saveJourney("j-1", "m-1", "0001")

	dup := domain.Journey{
		JourneyID: "j-2", MemberID: "m-2", ControlNumber: "0001", CheckInDate: day,
		CheckInTime: checkInAt, CheckInTerminal: "T1", Status: domain.JourneyCheckedIn,
	}
	s.ErrorIs(s.repos.JourneyRepo.SaveJourney(s.ctx, dup), apperrors.ErrDuplicateControlNumber)

	dup = domain.Journey{
		JourneyID: "j-3", MemberID: "m-1", ControlNumber: "0002", CheckInDate: day,
		CheckInTime: checkInAt, CheckInTerminal: "T1", Status: domain.JourneyCheckedIn,
	}
	s.ErrorIs(s.repos.JourneyRepo.SaveJourney(s.ctx, dup), apperrors.ErrDuplicateMemberDay)

	dup.CheckInDate = "2024-03-16"
	s.NoError(s.repos.JourneyRepo.SaveJourney(s.ctx, dup))
}

func (s *StoreTestSuite) TestCompleteJourney_ExactlyOnce() {
	s.saveMember("m-1", "C-001", domain.MemberTypeRegular)
	j := s.saveJourney("j-1", "m-1", "0001")

	done, err := s.repos.JourneyRepo.CompleteJourney(s.ctx, j.JourneyID, checkoutOf(domain.DifferentStubOutcome{Value: "0042"}))
	s.Require().NoError(err)
	s.Equal(domain.JourneyComplete, done.Status)
	s.True(done.Claimed)
	s.True(done.DifferentStubNumber)
	s.True(done.ManualFormSigned)
	s.Require().NotNil(done.DifferentStubValue)
	s.Equal("0042", *done.DifferentStubValue)
	s.Require().NotNil(done.CheckOutTerminal)
	s.Equal("T9", *done.CheckOutTerminal)
	s.Equal(domain.ClaimLabelDifferentStub, done.ClaimLabel())

	_, err = s.repos.JourneyRepo.CompleteJourney(s.ctx, j.JourneyID, checkoutOf(domain.NormalOutcome{}))
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.repos.JourneyRepo.CompleteJourney(s.ctx, "missing", checkoutOf(domain.NormalOutcome{}))
	s.ErrorIs(err, apperrors.ErrNotFound)

	reopened, err := s.repos.JourneyRepo.ReopenJourney(s.ctx, j.JourneyID)
	s.Require().NoError(err)
	s.Equal(domain.JourneyCheckedIn, reopened.Status)
	s.Nil(reopened.CheckOutTime)
	s.False(reopened.Claimed)
	s.Nil(reopened.DifferentStubValue)

	_, err = s.repos.JourneyRepo.ReopenJourney(s.ctx, j.JourneyID)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *StoreTestSuite) TestDeleteMember_BlockedByJourney() {
	s.saveMember("m-1", "C-001", domain.MemberTypeRegular)
	s.saveJourney("j-1", "m-1", "0001")

	s.ErrorIs(s.repos.MemberRepo.DeleteMember(s.ctx, "m-1"), apperrors.ErrConflict)

	n, err := s.repos.JourneyRepo.DeleteJourneysByMember(s.ctx, "m-1")
	s.Require().NoError(err)
	s.Equal(1, n)
	s.NoError(s.repos.MemberRepo.DeleteMember(s.ctx, "m-1"))
	s.ErrorIs(s.repos.MemberRepo.DeleteMember(s.ctx, "m-1"), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestStatistics() {
	s.saveMember("m-1", "C-001", domain.MemberTypeRegular)
	s.saveMember("m-2", "C-002", domain.MemberTypeRegular)
	s.saveMember("m-3", "C-003", domain.MemberTypeAssociate)
	s.saveMember("m-4", "C-004", domain.MemberTypeAssociate)
	s.saveJourney("j-1", "m-1", "0001")
	s.saveJourney("j-3", "m-3", "0003")
	_, err := s.repos.JourneyRepo.CompleteJourney(s.ctx, "j-1", checkoutOf(domain.NormalOutcome{}))
	s.Require().NoError(err)
	_, err = s.repos.JourneyRepo.CompleteJourney(s.ctx, "j-3", checkoutOf(domain.LostStubOutcome{}))
	s.Require().NoError(err)

	population, err := s.repos.StatisticsRepo.CountMembersByType(s.ctx)
	s.Require().NoError(err)
	s.Equal(domain.TypeCounts{Regular: 2, Associate: 2, Total: 4}, population)

	attended, err := s.repos.StatisticsRepo.CountAttendeesByType(s.ctx, day)
	s.Require().NoError(err)
	s.Equal(domain.TypeCounts{Regular: 1, Associate: 1, Total: 2}, attended)

	stats, err := s.repos.StatisticsRepo.GetJourneyStats(s.ctx, day)
	s.Require().NoError(err)
	s.Equal(2, stats.TotalJourneys)
	s.Equal(2, stats.Complete)
	s.Equal(0, stats.CheckedIn)
	s.Equal(2, stats.MealStubsIssued)
	s.Equal(1, stats.LostStubs)
	s.Equal(1, stats.ManualForms)

	claims, err := s.repos.StatisticsRepo.GetClaimsByTerminal(s.ctx, day)
	s.Require().NoError(err)
	s.Equal([]domain.TerminalClaims{{Terminal: "T9", Total: 2, Normal: 1, Anomalous: 1}}, claims)

	empty, err := s.repos.StatisticsRepo.GetJourneyStats(s.ctx, "2020-01-01")
	s.Require().NoError(err)
	s.Equal(0, empty.TotalJourneys)
}

func (s *StoreTestSuite) TestSettings_SeededAndUpsert() {
	checkout, err := s.repos.SettingsRepo.FindSetting(s.ctx, domain.SettingCheckoutEnabled)
	s.Require().NoError(err)
	s.Equal("true", checkout.Value)

	s.Require().NoError(s.repos.SettingsRepo.UpsertSetting(s.ctx, domain.Setting{
		Key: domain.SettingCheckoutEnabled, Value: "false", Description: "off", UpdatedAt: checkInAt,
	}))
	all, err := s.repos.SettingsRepo.ListSettings(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(domain.SettingCheckoutEnabled, all[0].Key)
	s.Equal("false", all[0].Value)

	_, err = s.repos.SettingsRepo.FindSetting(s.ctx, "unknown")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestAuditLog_NewestFirst() {
	for i, action := range []domain.AuditAction{domain.AuditCheckIn, domain.AuditCheckOut} {
		entry, err := domain.NewAuditLogEntry(action, domain.TableMemberJourney, "j-1", "staff-1", "T1",
			nil, map[string]any{"n": i}, checkInAt.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(err)
		s.Require().NoError(s.repos.AuditLogRepo.AppendAuditLog(s.ctx, entry))
	}

	logs, err := s.repos.AuditLogRepo.ListAuditLogs(s.ctx, domain.AuditLogFilter{Page: domain.Page{Limit: 10}})
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal(domain.AuditCheckOut, logs[0].Action)
	s.JSONEq(`{"n":1}`, string(logs[0].NewValues))
	s.Nil(logs[0].OldValues)

	logs, err = s.repos.AuditLogRepo.ListAuditLogs(s.ctx, domain.AuditLogFilter{Action: domain.AuditCheckIn, Page: domain.Page{Limit: 10}})
	s.Require().NoError(err)
	s.Len(logs, 1)
}

func (s *StoreTestSuite) TestTransaction_RollsBack() {
	s.saveMember("m-1", "C-001", domain.MemberTypeRegular)
	boom := errors.New("boom")

	err := s.repos.Transactor.WithinTransaction(s.ctx, func(ctx context.Context) error {
		s.saveJourneyCtx(ctx, "j-1", "m-1", "0001")
		return boom
	})
	s.ErrorIs(err, boom)

	_, err = s.repos.JourneyRepo.FindJourneyByControlNumber(s.ctx, "0001")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) saveJourneyCtx(ctx context.Context, id, memberID, controlNumber string) {
	s.Require().NoError(s.repos.JourneyRepo.SaveJourney(ctx, domain.Journey{
		JourneyID: id, MemberID: memberID, ControlNumber: controlNumber, CheckInDate: day,
		CheckInTime: checkInAt, CheckInTerminal: "T1", Status: domain.JourneyCheckedIn,
	}))
}

// Concurrent check-ins of one member through the real engine: the store
// admits exactly one journey and every loser sees a conflict.
func (s *StoreTestSuite) TestConcurrentCheckIn_SingleJourney() {
	s.saveMember("m-1", "C-001", domain.MemberTypeRegular)

	clock := optime.NewClock(time.UTC, func() time.Time { return checkInAt })
	settings := services.NewSettingsService(s.repos.SettingsRepo, s.repos.AuditLogRepo, s.repos.Transactor,
		services.WithSettingsClock(clock))
	journeys := services.NewJourneyService(s.repos.JourneyRepo, s.repos.MemberRepo, s.repos.AuditLogRepo,
		settings, s.repos.Transactor, services.WithJourneyClock(clock))

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := journeys.CheckIn(s.ctx, domain.CheckInRequest{
				MemberID:      "m-1",
				ControlNumber: fmt.Sprintf("%04d", i),
				TerminalID:    "T1",
				StaffID:       "staff-1",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrAlreadyCheckedIn):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(attempts-1, conflicts)

	got, err := s.repos.JourneyRepo.ListJourneys(s.ctx, domain.JourneyFilter{Date: day, Page: domain.Page{Limit: 50}})
	s.Require().NoError(err)
	s.Len(got, 1)
	s.Equal("C-001", got[0].CooperativeID)
}

func TestStore(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestOpenSQLite_RejectsEmptyPath(t *testing.T) {
	_, err := database.OpenSQLite(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}
