// Package search 提供检索相关的 HTTP Handler
package search

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/handler"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/response"
	searchService "github.com/dumeirei/hotel-marketplace-backend/internal/service/search"
)

// Handler 检索处理器
type Handler struct {
	searchService *searchService.SearchService
}

// NewHandler 创建检索处理器
func NewHandler(searchSvc *searchService.SearchService) *Handler {
	return &Handler{
		searchService: searchSvc,
	}
}

// Search 酒店可用性检索
// @Summary 酒店可用性检索
// @Tags 检索
// @Produce json
// @Param city query string false "城市"
// @Param business_zone query string false "商圈（对名称/商圈/地址子串匹配）"
// @Param brand query string false "品牌"
// @Param hotel_type query string false "酒店类型"
// @Param region_type query string false "国内/海外"
// @Param star_rating query int false "星级"
// @Param min_score query number false "最低评分"
// @Param keyword query string false "关键词"
// @Param tags query []string false "标签（可多选，需全部命中）"
// @Param services query []string false "服务项（可多选，需全部命中）"
// @Param min_price query number false "房型最低价格"
// @Param max_price query number false "房型最高价格"
// @Param min_area query number false "房型最小面积"
// @Param max_area query number false "房型最大面积"
// @Param breakfast query string false "早餐类型"
// @Param facilities query []string false "房型设施（可多选，需全部命中）"
// @Param check_in query string false "入住日期 YYYY-MM-DD"
// @Param check_out query string false "离店日期 YYYY-MM-DD"
// @Param guest_count query int false "入住人数"
// @Param room_count query int false "房间数"
// @Param sort_by query string false "排序字段 price/rating/min_price/score/star_rating/created_at"
// @Param sort_order query string false "排序方向 asc/desc，默认 desc"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=searchService.SearchResult}
// @Router /api/v1/search [get]
func (h *Handler) Search(c *gin.Context) {
	var req searchService.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), &req)
	handler.MustSucceed(c, err, result)
}

// GetHotelDetail 获取酒店详情
// @Summary 获取酒店详情
// @Tags 检索
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=searchService.HotelDetail}
// @Router /api/v1/hotels/{id} [get]
func (h *Handler) GetHotelDetail(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	detail, err := h.searchService.GetHotelDetail(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, detail)
}
