package handlers

import (
	"net/http"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/gin-gonic/gin"
)

type auditLogHandler struct {
	auditLogService portssvc.AuditLogSvc
}

func registerAuditLogRoutes(rg *gin.RouterGroup, as portssvc.AuditLogSvc) {
	h := &auditLogHandler{auditLogService: as}
	rg.GET("/audit-logs", h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary List audit log entries
// @Description Newest first; date filters by operating day
// @Tags admin
// @Produce  json
// @Param   date query string false "Operating day (YYYY-MM-DD)"
// @Param   action query string false "Action, e.g. CHECKOUT"
// @Param   staff_id query string false "Staff ID"
// @Param   limit query int false "Page size (default 100)"
// @Param   offset query int false "Page offset"
// @Success 200 {array} domain.AuditLogEntry
// @Security BearerAuth
// @Router /admin/audit-logs [get]
func (h *auditLogHandler) listAuditLogs(c *gin.Context) {
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListAuditLogs")
		return
	}
	entries, err := h.auditLogService.ListAuditLogs(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	if entries == nil {
		entries = []domain.AuditLogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
