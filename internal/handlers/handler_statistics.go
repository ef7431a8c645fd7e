package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/g2ix/basic-registration/internal/middleware"
	"github.com/gin-gonic/gin"
)

type statisticsHandler struct {
	statisticsService portssvc.StatisticsSvc
	streamInterval    time.Duration
}

func newStatisticsHandler(ss portssvc.StatisticsSvc, streamInterval time.Duration) *statisticsHandler {
	if streamInterval <= 0 {
		streamInterval = 5 * time.Second
	}
	return &statisticsHandler{statisticsService: ss, streamInterval: streamInterval}
}

func registerPublicStatisticsRoutes(rg *gin.RouterGroup, ss portssvc.StatisticsSvc, streamInterval time.Duration) {
	h := newStatisticsHandler(ss, streamInterval)

	stats := rg.Group("/statistics")
	{
		stats.GET("", h.getStatistics)
		stats.GET("/stream", h.streamStatistics)
	}
}

func registerStatisticsRoutes(rg *gin.RouterGroup, ss portssvc.StatisticsSvc) {
	h := newStatisticsHandler(ss, 0)

	stats := rg.Group("/statistics")
	{
		stats.GET("", h.getStatistics)
		stats.GET("/claims", h.getClaimsSummary)
	}
}

// getStatistics godoc
// @Summary Attendance statistics
// @Description Member population and assembly attendance for an operating day
// @Tags statistics
// @Produce  json
// @Param   date query string false "Operating day (YYYY-MM-DD)"
// @Success 200 {object} domain.Statistics
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Router /public/statistics [get]
func (h *statisticsHandler) getStatistics(c *gin.Context) {
	var params dto.DateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "GetStatistics")
		return
	}
	stats, err := h.statisticsService.ComputeStatistics(c.Request.Context(), params.Date)
	if err != nil {
		respondError(c, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getClaimsSummary godoc
// @Summary Claims per terminal
// @Description Completed journeys per check-out terminal, split by normal and anomalous claims
// @Tags statistics
// @Produce  json
// @Param   date query string false "Operating day (YYYY-MM-DD)"
// @Success 200 {object} domain.ClaimsSummary
// @Security BearerAuth
// @Router /statistics/claims [get]
func (h *statisticsHandler) getClaimsSummary(c *gin.Context) {
	var params dto.DateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "GetClaimsSummary")
		return
	}
	summary, err := h.statisticsService.GetClaimsSummary(c.Request.Context(), params.Date)
	if err != nil {
		respondError(c, err, "Failed to compute claims summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// streamStatistics godoc
// @Summary Live attendance statistics
// @Description Server-sent events carrying today's statistics on every tick until the client disconnects
// @Tags statistics
// @Produce  text/event-stream
// @Success 200 {object} domain.Statistics
// @Router /public/statistics/stream [get]
func (h *statisticsHandler) streamStatistics(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Statistics stream opened", slog.Duration("interval", h.streamInterval))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	first := true
	c.Stream(func(w io.Writer) bool {
		if !first {
			select {
			case <-ctx.Done():
				return false
			case <-ticker.C:
			}
		}
		first = false

		stats, err := h.statisticsService.ComputeStatistics(ctx, "")
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			logger.Error("Failed to compute streamed statistics", slog.String("error", err.Error()))
			c.SSEvent("error", dto.ErrorResponse{Error: "Failed to compute statistics", Code: errorCode(err)})
			return true
		}
		c.SSEvent("statistics", stats)
		return true
	})

	logger.Info("Statistics stream closed")
}
