package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/g2ix/basic-registration/internal/middleware"
	"github.com/g2ix/basic-registration/internal/utils"
	"github.com/gin-gonic/gin"
)

// journeyHandler handles the check-in/check-out desk endpoints.
type journeyHandler struct {
	journeyService    portssvc.JourneySvcFacade
	statisticsService portssvc.StatisticsSvc
	posthogClient     *utils.PosthogClientWrapper
}

func newJourneyHandler(js portssvc.JourneySvcFacade, ss portssvc.StatisticsSvc, ph *utils.PosthogClientWrapper) *journeyHandler {
	return &journeyHandler{
		journeyService:    js,
		statisticsService: ss,
		posthogClient:     ph,
	}
}

// registerJourneyRoutes registers the staff journey routes.
func registerJourneyRoutes(rg *gin.RouterGroup, js portssvc.JourneySvcFacade, ss portssvc.StatisticsSvc, ph *utils.PosthogClientWrapper) {
	h := newJourneyHandler(js, ss, ph)

	journeys := rg.Group("/journeys")
	{
		journeys.POST("/checkin", h.checkIn)
		journeys.POST("/checkout", h.checkOut)
		journeys.GET("", h.listJourneys)
		journeys.GET("/stats", h.getJourneyStats)
		journeys.GET("/member/:memberID", h.getJourneyByMember)
		journeys.GET("/control/:controlNumber", h.getJourneyByControlNumber)
	}
}

// registerAdminJourneyRoutes registers the journey overrides reserved to admins.
func registerAdminJourneyRoutes(rg *gin.RouterGroup, js portssvc.JourneySvcFacade) {
	h := newJourneyHandler(js, nil, nil)

	journeys := rg.Group("/journeys")
	{
		journeys.POST("/reset", h.resetJourney)
		journeys.POST("/reset-all", h.resetAllJourneys)
		journeys.POST("/reopen", h.reopenJourney)
	}
}

// checkIn godoc
// @Summary Check a member in
// @Description Opens the member's journey for today under a new control number
// @Tags journeys
// @Accept  json
// @Produce  json
// @Param   checkin body dto.CheckInRequest true "Check-in details"
// @Success 201 {object} dto.JourneyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or member not eligible"
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 409 {object} dto.ErrorResponse "Already checked in, already complete or control number taken"
// @Security BearerAuth
// @Router /journeys/checkin [post]
func (h *journeyHandler) checkIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CheckIn")
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	logger.Info("Received check-in", slog.String("member_id", req.MemberID), slog.String("control_number", req.ControlNumber))
	journey, err := h.journeyService.CheckIn(c.Request.Context(), req.ToDomain(actor))
	if err != nil {
		respondError(c, err, "Failed to check in member")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJourneyResponse(journey))
}

// checkOut godoc
// @Summary Check a member out
// @Description Completes the journey bound to a control number, recording the claim outcome
// @Tags journeys
// @Accept  json
// @Produce  json
// @Param   checkout body dto.CheckOutRequest true "Check-out details"
// @Success 200 {object} dto.JourneyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Checkout disabled"
// @Failure 404 {object} dto.ErrorResponse "Journey not found"
// @Failure 409 {object} dto.ErrorResponse "Already complete"
// @Security BearerAuth
// @Router /journeys/checkout [post]
func (h *journeyHandler) checkOut(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CheckOut")
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	checkout, err := req.ToDomain(actor)
	if err != nil {
		respondError(c, err, "Failed to check out member")
		return
	}

	logger.Info("Received check-out", slog.String("control_number", checkout.ControlNumber), slog.String("outcome", string(checkout.Outcome.Kind())))
	journey, err := h.journeyService.CheckOut(c.Request.Context(), checkout)
	if err != nil {
		respondError(c, err, "Failed to check out member")
		return
	}

	if checkout.Outcome.Kind() != domain.OutcomeNormal {
		middleware.PosthogEvent(c, h.posthogClient, "checkout_anomaly", map[string]any{
			"outcome":      string(checkout.Outcome.Kind()),
			"claim_status": journey.ClaimLabel(),
		})
	}
	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}

// listJourneys godoc
// @Summary List journeys
// @Description Lists journeys for an operating day (today by default), newest check-in first
// @Tags journeys
// @Produce  json
// @Param   status query string false "checked_in or complete"
// @Param   date query string false "Operating day (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 50)"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListJourneysResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Security BearerAuth
// @Router /journeys [get]
func (h *journeyHandler) listJourneys(c *gin.Context) {
	var params dto.ListJourneysParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListJourneys")
		return
	}

	filter := params.ToFilter()
	journeys, err := h.journeyService.ListJourneys(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list journeys")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJourneysResponse(journeys, filter))
}

// getJourneyStats godoc
// @Summary Journey statistics
// @Description Counts journey states and stub usage for an operating day
// @Tags journeys
// @Produce  json
// @Param   date query string false "Operating day (YYYY-MM-DD)"
// @Success 200 {object} domain.JourneyStats
// @Security BearerAuth
// @Router /journeys/stats [get]
func (h *journeyHandler) getJourneyStats(c *gin.Context) {
	var params dto.DateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "GetJourneyStats")
		return
	}
	stats, err := h.statisticsService.GetJourneyStats(c.Request.Context(), params.Date)
	if err != nil {
		respondError(c, err, "Failed to compute journey statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getJourneyByMember godoc
// @Summary Get a member's journey
// @Description Retrieves the member's journey for an operating day (today by default)
// @Tags journeys
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Param   date query string false "Operating day (YYYY-MM-DD)"
// @Success 200 {object} dto.JourneyResponse
// @Failure 404 {object} dto.ErrorResponse "No journey"
// @Security BearerAuth
// @Router /journeys/member/{memberID} [get]
func (h *journeyHandler) getJourneyByMember(c *gin.Context) {
	var params dto.DateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "GetJourneyByMember")
		return
	}
	journey, err := h.journeyService.GetJourneyByMember(c.Request.Context(), c.Param("memberID"), params.Date)
	if err != nil {
		respondError(c, err, "Failed to retrieve journey")
		return
	}
	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}

// getJourneyByControlNumber godoc
// @Summary Get a journey by control number
// @Tags journeys
// @Produce  json
// @Param   controlNumber path string true "Control number"
// @Success 200 {object} dto.JourneyResponse
// @Failure 404 {object} dto.ErrorResponse "No journey"
// @Security BearerAuth
// @Router /journeys/control/{controlNumber} [get]
func (h *journeyHandler) getJourneyByControlNumber(c *gin.Context) {
	journey, err := h.journeyService.GetJourneyByControlNumber(c.Request.Context(), c.Param("controlNumber"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journey")
		return
	}
	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}

// resetJourney godoc
// @Summary Reset journey data
// @Description Deletes the journey bound to a control number, or every journey of a member
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   reset body dto.ResetJourneyRequest true "Exactly one of controlNumber or memberId"
// @Success 200 {object} dto.ResetResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Nothing to reset"
// @Security BearerAuth
// @Router /admin/journeys/reset [post]
func (h *journeyHandler) resetJourney(c *gin.Context) {
	var req dto.ResetJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ResetJourney")
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	deleted, err := h.journeyService.ResetJourney(c.Request.Context(), req.ToTarget(), actor)
	if err != nil {
		respondError(c, err, "Failed to reset journey")
		return
	}
	c.JSON(http.StatusOK, dto.ResetResponse{Deleted: deleted, At: time.Now().UTC()})
}

// resetAllJourneys godoc
// @Summary Reset all journey data
// @Description Deletes every journey. Requires confirmReset=true.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   reset body dto.ResetAllJourneysRequest true "Confirmation"
// @Success 200 {object} dto.ResetResponse
// @Failure 400 {object} dto.ErrorResponse "Missing confirmation"
// @Security BearerAuth
// @Router /admin/journeys/reset-all [post]
func (h *journeyHandler) resetAllJourneys(c *gin.Context) {
	var req dto.ResetAllJourneysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ResetAllJourneys")
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	deleted, err := h.journeyService.ResetAllJourneys(c.Request.Context(), req.ConfirmReset, actor)
	if err != nil {
		respondError(c, err, "Failed to reset journeys")
		return
	}
	c.JSON(http.StatusOK, dto.ResetResponse{Deleted: deleted, At: time.Now().UTC()})
}

// reopenJourney godoc
// @Summary Reopen a completed journey
// @Description Clears the check-out of a journey so the member can be checked out again
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   reopen body dto.ReopenJourneyRequest true "Control number"
// @Success 200 {object} dto.JourneyResponse
// @Failure 404 {object} dto.ErrorResponse "Journey not found"
// @Failure 409 {object} dto.ErrorResponse "Journey not complete"
// @Security BearerAuth
// @Router /admin/journeys/reopen [post]
func (h *journeyHandler) reopenJourney(c *gin.Context) {
	var req dto.ReopenJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ReopenJourney")
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	journey, err := h.journeyService.ReopenJourney(c.Request.Context(), req.ControlNumber, actor)
	if err != nil {
		respondError(c, err, "Failed to reopen journey")
		return
	}
	c.JSON(http.StatusOK, dto.ToJourneyResponse(journey))
}
