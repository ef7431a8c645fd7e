package handlers

import (
	"log/slog"
	"net/http"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/g2ix/basic-registration/internal/middleware"
	"github.com/gin-gonic/gin"
)

// memberHandler handles HTTP requests related to the member registry.
type memberHandler struct {
	memberService portssvc.MemberSvcFacade
}

func newMemberHandler(ms portssvc.MemberSvcFacade) *memberHandler {
	return &memberHandler{memberService: ms}
}

// registerMemberRoutes registers the read-only member lookups used at the desk.
func registerMemberRoutes(rg *gin.RouterGroup, ms portssvc.MemberSvcFacade) {
	h := newMemberHandler(ms)

	members := rg.Group("/members")
	{
		members.GET("", h.listMembers)
		members.GET("/:memberID", h.getMember)
		members.GET("/cooperative/:cooperativeID", h.getMemberByCooperativeID)
	}
}

// registerAdminMemberRoutes registers registry maintenance.
func registerAdminMemberRoutes(rg *gin.RouterGroup, ms portssvc.MemberSvcFacade) {
	h := newMemberHandler(ms)

	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.PUT("/:memberID", h.updateMember)
		members.DELETE("/:memberID", h.deleteMember)
	}
}

// listMembers godoc
// @Summary List members
// @Description Searches the registry by name or cooperative id
// @Tags members
// @Produce  json
// @Param   search query string false "Name or cooperative id fragment"
// @Param   member_type query string false "Regular or Associate"
// @Param   status query string false "active or dormant"
// @Param   eligibility query string false "eligible or not_eligible"
// @Param   limit query int false "Page size (default 100)"
// @Param   offset query int false "Page offset"
// @Success 200 {array} domain.Member
// @Security BearerAuth
// @Router /members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListMembers")
		return
	}
	members, err := h.memberService.ListMembers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list members")
		return
	}
	if members == nil {
		members = []domain.Member{}
	}
	c.JSON(http.StatusOK, members)
}

// getMember godoc
// @Summary Get a member
// @Tags members
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Success 200 {object} domain.Member
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Security BearerAuth
// @Router /members/{memberID} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	member, err := h.memberService.GetMemberByID(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// getMemberByCooperativeID godoc
// @Summary Get a member by cooperative id
// @Tags members
// @Produce  json
// @Param   cooperativeID path string true "Cooperative ID"
// @Success 200 {object} domain.Member
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Security BearerAuth
// @Router /members/cooperative/{cooperativeID} [get]
func (h *memberHandler) getMemberByCooperativeID(c *gin.Context) {
	member, err := h.memberService.GetMemberByCooperativeID(c.Request.Context(), c.Param("cooperativeID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// createMember godoc
// @Summary Register a member
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   member body dto.CreateMemberRequest true "Member details"
// @Success 201 {object} domain.Member
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Cooperative id taken"
// @Security BearerAuth
// @Router /admin/members [post]
func (h *memberHandler) createMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateMember")
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create member")
		return
	}
	logger.Info("Member created", slog.String("member_id", member.MemberID))
	c.JSON(http.StatusCreated, member)
}

// updateMember godoc
// @Summary Update a member
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Param   member body dto.UpdateMemberRequest true "Fields to change"
// @Success 200 {object} domain.Member
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Security BearerAuth
// @Router /admin/members/{memberID} [put]
func (h *memberHandler) updateMember(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateMember")
		return
	}
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), c.Param("memberID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to update member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// deleteMember godoc
// @Summary Delete a member
// @Description Removes a member that has no journeys
// @Tags admin
// @Param   memberID path string true "Member ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Member not found"
// @Failure 409 {object} dto.ErrorResponse "Member has journeys"
// @Security BearerAuth
// @Router /admin/members/{memberID} [delete]
func (h *memberHandler) deleteMember(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	if err := h.memberService.DeleteMember(c.Request.Context(), c.Param("memberID"), actor); err != nil {
		respondError(c, err, "Failed to delete member")
		return
	}
	c.Status(http.StatusNoContent)
}
