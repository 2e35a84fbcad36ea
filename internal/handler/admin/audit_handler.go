// Package admin 提供平台侧的 HTTP Handler
package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/handler"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/response"
	adminService "github.com/dumeirei/hotel-marketplace-backend/internal/service/admin"
)

// AuditHandler 平台审核处理器
type AuditHandler struct {
	auditService *adminService.AuditService
}

// NewAuditHandler 创建平台审核处理器
func NewAuditHandler(auditSvc *adminService.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditSvc,
	}
}

// auditRequest 审核请求体
type auditRequest struct {
	Action string `json:"action" binding:"required"`
	Remark string `json:"remark"`
}

// ListPendingHotels 获取待审核酒店列表
// @Summary 获取待审核酒店列表
// @Tags 平台-审核
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/admin/hotels/pending [get]
func (h *AuditHandler) ListPendingHotels(c *gin.Context) {
	if _, ok := handler.RequireAdminID(c); !ok {
		return
	}

	p := handler.BindPagination(c)
	hotels, total, err := h.auditService.ListPendingHotels(c.Request.Context(), p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, hotels, total, p.Page, p.PageSize)
}

// ListPendingRooms 获取待审核房型列表
// @Summary 获取待审核房型列表
// @Tags 平台-审核
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/admin/rooms/pending [get]
func (h *AuditHandler) ListPendingRooms(c *gin.Context) {
	if _, ok := handler.RequireAdminID(c); !ok {
		return
	}

	p := handler.BindPagination(c)
	rooms, total, err := h.auditService.ListPendingRooms(c.Request.Context(), p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, rooms, total, p.Page, p.PageSize)
}

// AuditHotel 审核酒店
// @Summary 审核酒店 approve/reject
// @Tags 平台-审核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "酒店ID"
// @Param request body auditRequest true "审核操作"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/hotels/{id}/audit [post]
func (h *AuditHandler) AuditHotel(c *gin.Context) {
	adminID, hotelID, ok := handler.RequireAdminAndParseID(c, "酒店")
	if !ok {
		return
	}

	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供审核操作")
		return
	}

	err := h.auditService.AuditHotel(c.Request.Context(), adminID, hotelID, req.Action, req.Remark)
	handler.MustSucceedWithMessage(c, err, "审核完成", nil)
}

// DelistHotel 平台下架酒店
// @Summary 强制下架已上架酒店
// @Tags 平台-审核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "酒店ID"
// @Param request body object{remark=string} false "下架原因"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/hotels/{id}/delist [post]
func (h *AuditHandler) DelistHotel(c *gin.Context) {
	adminID, hotelID, ok := handler.RequireAdminAndParseID(c, "酒店")
	if !ok {
		return
	}

	var req struct {
		Remark string `json:"remark"`
	}
	// 下架原因可以为空
	_ = c.ShouldBindJSON(&req)

	err := h.auditService.DelistHotel(c.Request.Context(), adminID, hotelID, req.Remark)
	handler.MustSucceedWithMessage(c, err, "酒店已下架", nil)
}

// AuditRoom 审核房型
// @Summary 审核房型 approve/reject
// @Tags 平台-审核
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "房型ID"
// @Param request body auditRequest true "审核操作"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/rooms/{id}/audit [post]
func (h *AuditHandler) AuditRoom(c *gin.Context) {
	adminID, roomID, ok := handler.RequireAdminAndParseID(c, "房型")
	if !ok {
		return
	}

	var req auditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供审核操作")
		return
	}

	err := h.auditService.AuditRoom(c.Request.Context(), adminID, roomID, req.Action, req.Remark)
	handler.MustSucceedWithMessage(c, err, "审核完成", nil)
}
