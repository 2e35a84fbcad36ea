// Package merchant 提供商户侧的 HTTP Handler
package merchant

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/handler"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/response"
	merchantService "github.com/dumeirei/hotel-marketplace-backend/internal/service/merchant"
)

// RoomHandler 商户房型处理器
type RoomHandler struct {
	roomService *merchantService.RoomService
}

// NewRoomHandler 创建商户房型处理器
func NewRoomHandler(roomSvc *merchantService.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomSvc,
	}
}

// CreateRoom 创建房型
// @Summary 在已上架酒店下创建房型
// @Tags 商户-房型
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "酒店ID"
// @Param request body merchantService.CreateRoomRequest true "房型信息"
// @Success 200 {object} response.Response{data=models.Room}
// @Router /api/v1/merchant/hotels/{id}/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	var req merchantService.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), merchantID, hotelID, &req)
	handler.MustSucceedWithMessage(c, err, "房型已提交审核", room)
}

// ListRooms 获取酒店下的房型列表
// @Summary 获取酒店下的房型列表
// @Tags 商户-房型
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=[]models.Room}
// @Router /api/v1/merchant/hotels/{id}/rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	rooms, err := h.roomService.ListRooms(c.Request.Context(), merchantID, hotelID)
	handler.MustSucceed(c, err, rooms)
}

// GetRoom 获取房型详情
// @Summary 获取房型详情
// @Tags 商户-房型
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "房型ID"
// @Success 200 {object} response.Response{data=models.Room}
// @Router /api/v1/merchant/rooms/{id} [get]
func (h *RoomHandler) GetRoom(c *gin.Context) {
	merchantID, roomID, ok := handler.RequireMerchantAndParseID(c, "房型")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), merchantID, roomID)
	handler.MustSucceed(c, err, room)
}

// UpdateRoom 更新房型资料
// @Summary 更新房型资料（要求已下架，更新后重新审核）
// @Tags 商户-房型
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "房型ID"
// @Param request body merchantService.UpdateRoomRequest true "待更新字段"
// @Success 200 {object} response.Response{data=models.Room}
// @Router /api/v1/merchant/rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	merchantID, roomID, ok := handler.RequireMerchantAndParseID(c, "房型")
	if !ok {
		return
	}

	var req merchantService.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), merchantID, roomID, &req)
	handler.MustSucceed(c, err, room)
}

// ToggleRoom 上下架房型
// @Summary 上下架房型 hide/recover
// @Tags 商户-房型
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "房型ID"
// @Param request body object{action=string} true "操作"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/rooms/{id}/toggle [post]
func (h *RoomHandler) ToggleRoom(c *gin.Context) {
	merchantID, roomID, ok := handler.RequireMerchantAndParseID(c, "房型")
	if !ok {
		return
	}

	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供操作类型")
		return
	}

	err := h.roomService.ToggleRoom(c.Request.Context(), merchantID, roomID, req.Action)
	handler.MustSucceedWithMessage(c, err, "操作成功", nil)
}

// DeleteRoom 删除房型
// @Summary 删除房型及其全部库存（要求已下架）
// @Tags 商户-房型
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "房型ID"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	merchantID, roomID, ok := handler.RequireMerchantAndParseID(c, "房型")
	if !ok {
		return
	}

	err := h.roomService.DeleteRoom(c.Request.Context(), merchantID, roomID)
	handler.MustSucceedWithMessage(c, err, "房型已删除", nil)
}

// GetStock 获取房型逐夜库存
// @Summary 获取房型逐夜库存
// @Tags 商户-房型
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "房型ID"
// @Param from query string false "起始日期 YYYY-MM-DD，默认今天"
// @Success 200 {object} response.Response{data=[]inventory.StockInfo}
// @Router /api/v1/merchant/rooms/{id}/stocks [get]
func (h *RoomHandler) GetStock(c *gin.Context) {
	merchantID, roomID, ok := handler.RequireMerchantAndParseID(c, "房型")
	if !ok {
		return
	}

	fromDate, ok := handler.ParseQueryDate(c, "from", "起始日期格式错误")
	if !ok {
		return
	}

	stocks, err := h.roomService.GetStock(c.Request.Context(), merchantID, roomID, fromDate)
	handler.MustSucceed(c, err, stocks)
}

// SetDailyPrice 设置当日价
// @Summary 设置房型某一夜的当日价
// @Tags 商户-房型
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "房型ID"
// @Param request body object{date=string,price=number} true "日期与价格"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/rooms/{id}/stocks/price [put]
func (h *RoomHandler) SetDailyPrice(c *gin.Context) {
	merchantID, roomID, ok := handler.RequireMerchantAndParseID(c, "房型")
	if !ok {
		return
	}

	var req struct {
		Date  string  `json:"date" binding:"required"`
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请提供日期和价格")
		return
	}
	if _, err := handler.ParseDate(req.Date); err != nil {
		response.BadRequest(c, "日期格式错误")
		return
	}

	err := h.roomService.SetDailyPrice(c.Request.Context(), merchantID, roomID, req.Date, req.Price)
	handler.MustSucceedWithMessage(c, err, "当日价已更新", nil)
}
