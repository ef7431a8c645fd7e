package handlers

import (
	"net/http"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

func registerPublicSettingsRoutes(rg *gin.RouterGroup, ss portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(ss)
	rg.GET("/checkout-enabled", h.getCheckoutEnabled)
}

func registerAdminSettingsRoutes(rg *gin.RouterGroup, ss portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(ss)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.PUT("/:key", h.updateSetting)
	}
}

// getCheckoutEnabled godoc
// @Summary Checkout flag
// @Description Reports whether check-out is currently accepted
// @Tags public
// @Produce  json
// @Success 200 {object} dto.CheckoutEnabledResponse
// @Router /public/checkout-enabled [get]
func (h *settingsHandler) getCheckoutEnabled(c *gin.Context) {
	enabled, err := h.settingsService.IsCheckoutEnabled(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to read checkout setting")
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutEnabledResponse{CheckoutEnabled: enabled})
}

// listSettings godoc
// @Summary List settings
// @Tags admin
// @Produce  json
// @Success 200 {array} domain.Setting
// @Security BearerAuth
// @Router /admin/settings [get]
func (h *settingsHandler) listSettings(c *gin.Context) {
	settings, err := h.settingsService.ListSettings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list settings")
		return
	}
	if settings == nil {
		settings = []domain.Setting{}
	}
	c.JSON(http.StatusOK, settings)
}

// updateSetting godoc
// @Summary Update a setting
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   key path string true "Setting key"
// @Param   setting body dto.UpdateSettingRequest true "New value"
// @Success 200 {object} domain.Setting
// @Failure 400 {object} dto.ErrorResponse "Invalid value"
// @Failure 404 {object} dto.ErrorResponse "Unknown key"
// @Security BearerAuth
// @Router /admin/settings/{key} [put]
func (h *settingsHandler) updateSetting(c *gin.Context) {
	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateSetting")
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	setting, err := h.settingsService.UpdateSetting(c.Request.Context(), c.Param("key"), req.Value, actor)
	if err != nil {
		respondError(c, err, "Failed to update setting")
		return
	}
	c.JSON(http.StatusOK, setting)
}
