// Package merchant 提供商户侧的 HTTP Handler
package merchant

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/handler"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/response"
	merchantService "github.com/dumeirei/hotel-marketplace-backend/internal/service/merchant"
)

// HotelHandler 商户酒店处理器
type HotelHandler struct {
	hotelService *merchantService.HotelService
}

// NewHotelHandler 创建商户酒店处理器
func NewHotelHandler(hotelSvc *merchantService.HotelService) *HotelHandler {
	return &HotelHandler{
		hotelService: hotelSvc,
	}
}

// CreateHotel 创建酒店
// @Summary 创建酒店
// @Tags 商户-酒店
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body merchantService.CreateHotelRequest true "酒店信息"
// @Success 200 {object} response.Response{data=models.Hotel}
// @Router /api/v1/merchant/hotels [post]
func (h *HotelHandler) CreateHotel(c *gin.Context) {
	merchantID, ok := handler.RequireMerchantID(c)
	if !ok {
		return
	}

	var req merchantService.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), merchantID, &req)
	handler.MustSucceedWithMessage(c, err, "酒店已提交审核", hotel)
}

// UpdateHotel 更新酒店资料
// @Summary 更新酒店资料
// @Tags 商户-酒店
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "酒店ID"
// @Param request body merchantService.UpdateHotelRequest true "待更新字段"
// @Success 200 {object} response.Response{data=models.Hotel}
// @Router /api/v1/merchant/hotels/{id} [put]
func (h *HotelHandler) UpdateHotel(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	var req merchantService.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	hotel, err := h.hotelService.UpdateHotel(c.Request.Context(), merchantID, hotelID, &req)
	handler.MustSucceed(c, err, hotel)
}

// GetHotel 获取酒店详情
// @Summary 获取名下酒店详情（含房型）
// @Tags 商户-酒店
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=models.Hotel}
// @Router /api/v1/merchant/hotels/{id} [get]
func (h *HotelHandler) GetHotel(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	hotel, err := h.hotelService.GetHotel(c.Request.Context(), merchantID, hotelID)
	handler.MustSucceed(c, err, hotel)
}

// ListHotels 获取名下酒店列表
// @Summary 获取名下酒店列表
// @Tags 商户-酒店
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=response.PageData}
// @Router /api/v1/merchant/hotels [get]
func (h *HotelHandler) ListHotels(c *gin.Context) {
	merchantID, ok := handler.RequireMerchantID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	hotels, total, err := h.hotelService.ListHotels(c.Request.Context(), merchantID, p.GetOffset(), p.GetLimit())
	handler.MustSucceedPage(c, err, hotels, total, p.Page, p.PageSize)
}

// DeleteHotel 删除酒店
// @Summary 删除酒店（要求名下已无房型）
// @Tags 商户-酒店
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response
// @Router /api/v1/merchant/hotels/{id} [delete]
func (h *HotelHandler) DeleteHotel(c *gin.Context) {
	merchantID, hotelID, ok := handler.RequireMerchantAndParseID(c, "酒店")
	if !ok {
		return
	}

	err := h.hotelService.DeleteHotel(c.Request.Context(), merchantID, hotelID)
	handler.MustSucceedWithMessage(c, err, "酒店已删除", nil)
}
