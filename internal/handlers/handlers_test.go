package handlers_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/g2ix/basic-registration/internal/handlers"
	"github.com/g2ix/basic-registration/internal/platform/config"
	"github.com/g2ix/basic-registration/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	jwtSecret string

	journeys   *MockJourneyService
	members    *MockMemberService
	settings   *MockSettingsService
	statistics *MockStatisticsService
	auditLogs  *MockAuditLogService
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "handler-test-secret-that-is-long-enough"

	suite.journeys = new(MockJourneyService)
	suite.members = new(MockMemberService)
	suite.settings = new(MockSettingsService)
	suite.statistics = new(MockStatisticsService)
	suite.auditLogs = new(MockAuditLogService)

	cfg := &config.Config{
		IsProduction:        true,
		JWTSecret:           suite.jwtSecret,
		PublicRateLimit:     "1000-M",
		StatsStreamInterval: time.Hour,
	}
	services := &portssvc.ServiceContainer{
		Journey:    suite.journeys,
		Member:     suite.members,
		Settings:   suite.settings,
		Statistics: suite.statistics,
		AuditLog:   suite.auditLogs,
	}

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, services, &utils.PosthogClientWrapper{}))
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.journeys.AssertExpectations(suite.T())
	suite.members.AssertExpectations(suite.T())
	suite.settings.AssertExpectations(suite.T())
	suite.statistics.AssertExpectations(suite.T())
	suite.auditLogs.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) token(role domain.StaffRole) string {
	token, err := utils.GenerateStaffToken("staff-1", "T1", role, suite.jwtSecret, time.Hour, "test")
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, path string, body any, role domain.StaffRole) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+suite.token(role))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var res dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func checkedInJourney(memberID, controlNumber string) *domain.Journey {
	return &domain.Journey{
		JourneyID:       uuid.NewString(),
		MemberID:        memberID,
		ControlNumber:   controlNumber,
		CheckInDate:     "2026-10-16",
		CheckInTime:     time.Now().UTC(),
		CheckInTerminal: "T1",
		MealStubIssued:  true,
		Status:          domain.JourneyCheckedIn,
	}
}

// --- Check-in ---

func (suite *HandlerTestSuite) TestCheckIn_Success() {
	memberID := uuid.NewString()
	journey := checkedInJourney(memberID, "CN-001")

	suite.journeys.On("CheckIn", mock.Anything, mock.MatchedBy(func(req domain.CheckInRequest) bool {
		return req.MemberID == memberID && req.ControlNumber == "CN-001" &&
			req.TerminalID == "T1" && req.StaffID == "staff-1" && req.MealStub && !req.TransportationStub
	})).Return(journey, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journeys/checkin", dto.CheckInRequest{
		MemberID:       memberID,
		ControlNumber:  " CN-001",
		MealStubIssued: true,
	}, domain.RoleStaff)

	// leading space fails the control number format before the service is reached
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journeys.AssertNotCalled(suite.T(), "CheckIn", mock.Anything, mock.Anything)

	w = suite.do(http.MethodPost, "/api/v1/journeys/checkin", dto.CheckInRequest{
		MemberID:       memberID,
		ControlNumber:  "CN-001",
		MealStubIssued: true,
	}, domain.RoleStaff)

	suite.Equal(http.StatusCreated, w.Code)
	var res dto.JourneyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(journey.JourneyID, res.JourneyID)
	suite.Equal(domain.JourneyCheckedIn, res.Status)
	suite.Equal(domain.ClaimLabelNotClaimed, res.ClaimStatus)
}

func (suite *HandlerTestSuite) TestCheckIn_Rejections() {
	memberID := uuid.NewString()
	existing := checkedInJourney(memberID, "CN-OLD")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantJourney bool
	}{
		{
			name:       "not eligible",
			err:        domain.NewNotEligibleError(domain.Member{CooperativeID: "COOP-1", Eligibility: domain.NotEligible}),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(apperrors.ReasonNotEligible),
		},
		{
			name:       "member not found",
			err:        domain.NewMemberNotFoundError(memberID),
			wantStatus: http.StatusNotFound,
			wantCode:   string(apperrors.ReasonMemberNotFound),
		},
		{
			name:        "already checked in",
			err:         domain.NewExistingJourneyError(*existing),
			wantStatus:  http.StatusConflict,
			wantCode:    string(apperrors.ReasonAlreadyCheckedIn),
			wantJourney: true,
		},
		{
			name:       "store failure",
			err:        fmt.Errorf("insert journey: %w", apperrors.ErrInternal),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.journeys.On("CheckIn", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/journeys/checkin", dto.CheckInRequest{
				MemberID:      memberID,
				ControlNumber: "CN-002",
			}, domain.RoleStaff)

			suite.Equal(tt.wantStatus, w.Code)
			res := suite.decodeError(w)
			suite.Equal(tt.wantCode, res.Code)
			if tt.wantJourney {
				suite.Require().NotNil(res.Journey)
				suite.Equal("CN-OLD", res.Journey.ControlNumber)
			} else {
				suite.Nil(res.Journey)
			}
			if tt.wantCode == string(apperrors.ReasonNotEligible) {
				suite.Equal(string(domain.NotEligible), res.Eligibility)
			}
			if tt.wantStatus == http.StatusInternalServerError {
				suite.NotContains(res.Error, "insert journey")
			}
		})
	}
}

func (suite *HandlerTestSuite) TestCheckIn_RequiresToken() {
	w := suite.do(http.MethodPost, "/api/v1/journeys/checkin", dto.CheckInRequest{MemberID: "m", ControlNumber: "CN-1"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Check-out ---

func (suite *HandlerTestSuite) TestCheckOut_Anomalous() {
	journey := checkedInJourney(uuid.NewString(), "CN-100")
	now := time.Now().UTC()
	terminal := "T1"
	journey.Status = domain.JourneyComplete
	journey.Claimed = true
	journey.LostStub = true
	journey.ManualFormSigned = true
	journey.CheckOutTime = &now
	journey.CheckOutTerminal = &terminal

	suite.journeys.On("CheckOut", mock.Anything, mock.MatchedBy(func(req domain.CheckOutRequest) bool {
		return req.ControlNumber == "CN-100" && req.Outcome.Kind() == domain.OutcomeLostStub && req.TerminalID == "T1"
	})).Return(journey, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journeys/checkout", dto.CheckOutRequest{
		ControlNumber: "CN-100",
		LostStub:      true,
	}, domain.RoleStaff)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.JourneyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(domain.ClaimLabelWithoutStub, res.ClaimStatus)
	suite.True(res.ManualFormSigned)
}

func (suite *HandlerTestSuite) TestCheckOut_ConflictingFlags() {
	w := suite.do(http.MethodPost, "/api/v1/journeys/checkout", dto.CheckOutRequest{
		ControlNumber: "CN-100",
		LostStub:      true,
		IncorrectStub: true,
	}, domain.RoleStaff)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journeys.AssertNotCalled(suite.T(), "CheckOut", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCheckOut_Rejections() {
	complete := checkedInJourney(uuid.NewString(), "CN-200")
	complete.Status = domain.JourneyComplete
	complete.Claimed = true

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"checkout disabled", domain.NewCheckoutDisabledError(), http.StatusForbidden, string(apperrors.ReasonCheckoutDisabled)},
		{"unknown control number", domain.NewJourneyNotFoundError("control number CN-200"), http.StatusNotFound, string(apperrors.ReasonJourneyNotFound)},
		{"already complete", domain.NewAlreadyCompleteError(*complete), http.StatusConflict, string(apperrors.ReasonAlreadyComplete)},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.journeys.On("CheckOut", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/journeys/checkout", dto.CheckOutRequest{ControlNumber: "CN-200"}, domain.RoleStaff)
			suite.Equal(tt.wantStatus, w.Code)
			suite.Equal(tt.wantCode, suite.decodeError(w).Code)
		})
	}
}

// --- Lookups ---

func (suite *HandlerTestSuite) TestGetJourneyByMember_DateParam() {
	memberID := uuid.NewString()
	suite.journeys.On("GetJourneyByMember", mock.Anything, memberID, "2026-10-15").
		Return(checkedInJourney(memberID, "CN-300"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journeys/member/"+memberID+"?date=2026-10-15", nil, domain.RoleStaff)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/journeys/member/"+memberID+"?date=15-10-2026", nil, domain.RoleStaff)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListJourneys() {
	details := []domain.JourneyDetail{{
		Journey:       *checkedInJourney(uuid.NewString(), "CN-400"),
		CooperativeID: "COOP-400",
		FirstName:     "Ana",
		LastName:      "Reyes",
	}}
	suite.journeys.On("ListJourneys", mock.Anything, domain.JourneyFilter{
		Status: domain.JourneyCheckedIn,
		Date:   "2026-10-16",
		Page:   domain.Page{Limit: 10},
	}).Return(details, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journeys?status=checked_in&date=2026-10-16&limit=10", nil, domain.RoleStaff)

	suite.Equal(http.StatusOK, w.Code)
	var res dto.ListJourneysResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Require().Len(res.Journeys, 1)
	suite.Equal("Ana Reyes", res.Journeys[0].MemberName)
	suite.Equal(domain.ClaimLabelNotClaimed, res.Journeys[0].ClaimStatus)
}

// --- Admin ---

func (suite *HandlerTestSuite) TestAdminRoutes_RequireAdminRole() {
	w := suite.do(http.MethodPost, "/api/v1/admin/journeys/reset-all", dto.ResetAllJourneysRequest{ConfirmReset: true}, domain.RoleStaff)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.journeys.AssertNotCalled(suite.T(), "ResetAllJourneys", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestResetAllJourneys() {
	admin := domain.Actor{StaffID: "staff-1", TerminalID: "T1"}

	suite.journeys.On("ResetAllJourneys", mock.Anything, false, admin).
		Return(0, fmt.Errorf("%w: confirmReset must be true", apperrors.ErrValidation)).Once()
	w := suite.do(http.MethodPost, "/api/v1/admin/journeys/reset-all", dto.ResetAllJourneysRequest{}, domain.RoleAdmin)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", suite.decodeError(w).Code)

	suite.journeys.On("ResetAllJourneys", mock.Anything, true, admin).Return(7, nil).Once()
	w = suite.do(http.MethodPost, "/api/v1/admin/journeys/reset-all", dto.ResetAllJourneysRequest{ConfirmReset: true}, domain.RoleAdmin)
	suite.Equal(http.StatusOK, w.Code)
	var res dto.ResetResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal(7, res.Deleted)
}

func (suite *HandlerTestSuite) TestResetJourney_Target() {
	suite.journeys.On("ResetJourney", mock.Anything, domain.JourneyResetTarget{ControlNumber: "CN-500"}, mock.Anything).
		Return(1, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/admin/journeys/reset", map[string]string{"controlNumber": "CN-500"}, domain.RoleAdmin)
	suite.Equal(http.StatusOK, w.Code)

	// neither key given
	w = suite.do(http.MethodPost, "/api/v1/admin/journeys/reset", map[string]string{}, domain.RoleAdmin)
	suite.Equal(http.StatusBadRequest, w.Code)

	// both keys given
	w = suite.do(http.MethodPost, "/api/v1/admin/journeys/reset", map[string]string{"controlNumber": "CN-500", "memberId": "m-1"}, domain.RoleAdmin)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestReopenJourney_NotComplete() {
	journey := checkedInJourney(uuid.NewString(), "CN-600")
	suite.journeys.On("ReopenJourney", mock.Anything, "CN-600", mock.Anything).
		Return(nil, domain.NewNotCompleteError(*journey)).Once()

	w := suite.do(http.MethodPost, "/api/v1/admin/journeys/reopen", dto.ReopenJourneyRequest{ControlNumber: "CN-600"}, domain.RoleAdmin)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(string(apperrors.ReasonNotComplete), suite.decodeError(w).Code)
}

func (suite *HandlerTestSuite) TestUpdateSetting() {
	setting := &domain.Setting{Key: domain.SettingCheckoutEnabled, Value: "false"}
	suite.settings.On("UpdateSetting", mock.Anything, domain.SettingCheckoutEnabled, "false", mock.Anything).Return(setting, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/admin/settings/"+domain.SettingCheckoutEnabled, dto.UpdateSettingRequest{Value: "false"}, domain.RoleAdmin)
	suite.Equal(http.StatusOK, w.Code)
}

// --- Members ---

func (suite *HandlerTestSuite) TestDeleteMember_HasJourneys() {
	memberID := uuid.NewString()
	suite.members.On("DeleteMember", mock.Anything, memberID, mock.Anything).
		Return(domain.NewMemberHasJourneysError(memberID, 2)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/admin/members/"+memberID, nil, domain.RoleAdmin)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCreateMember_Validation() {
	w := suite.do(http.MethodPost, "/api/v1/admin/members", map[string]string{
		"cooperative_id": "COOP-9",
		"first_name":     "Ana",
		"last_name":      "Reyes",
		"member_type":    "Honorary",
	}, domain.RoleAdmin)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.members.AssertNotCalled(suite.T(), "CreateMember", mock.Anything, mock.Anything, mock.Anything)
}

// --- Public ---

func (suite *HandlerTestSuite) TestPublicCheckoutEnabled() {
	suite.settings.On("IsCheckoutEnabled", mock.Anything).Return(false, nil).Once()

	w := suite.do(http.MethodGet, "/public/checkout-enabled", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"checkout_enabled":false}`, w.Body.String())
	suite.NotEmpty(w.Header().Get("X-RateLimit-Limit"))
}

func (suite *HandlerTestSuite) TestStatisticsStream_FirstEvent() {
	stats := &domain.Statistics{
		Date:             "2026-10-16",
		MemberPopulation: domain.TypeCounts{Regular: 3, Associate: 1, Total: 4},
		AttendedAssembly: domain.TypeCounts{Regular: 1, Total: 1},
		AttendanceRate:   decimal.NewFromInt(25),
		LastUpdated:      time.Now().UTC(),
	}
	suite.statistics.On("ComputeStatistics", mock.Anything, "").Return(stats, nil)

	server := httptest.NewServer(suite.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/public/statistics/stream", nil)
	suite.Require().NoError(err)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(resp.Header.Get("Content-Type"), "text/event-stream")

	var event, data string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "event:"); ok {
			event = name
		}
		if payload, ok := strings.CutPrefix(line, "data:"); ok {
			data = payload
			break
		}
	}
	cancel()

	suite.Equal("statistics", event)
	var got domain.Statistics
	suite.Require().NoError(json.Unmarshal([]byte(data), &got))
	suite.Equal(4, got.MemberPopulation.Total)
	suite.True(got.AttendanceRate.Equal(decimal.NewFromInt(25)))
}
