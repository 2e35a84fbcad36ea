// Package search 提供酒店可用性检索服务
//
// 检索流水线分五段：酒店属性过滤排序、候选房型匹配、逐夜库存连续性检查、
// 按酒店聚合、内存分页。排序必须在属性段完成，后续各段只做删减不改顺序，
// 这样分页语义对带日期和不带日期的检索保持一致。
package search

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/logger"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/utils"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
)

// SearchService 可用性检索服务
type SearchService struct {
	hotelRepo *repository.HotelRepository
	roomRepo  *repository.RoomRepository
	stockRepo *repository.StockRepository
	rdb       *redis.Client
	scanLimit int
	cacheTTL  time.Duration
}

// NewSearchService 创建检索服务
// rdb 可为 nil，此时仅属性检索的结果缓存被禁用
func NewSearchService(
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
	stockRepo *repository.StockRepository,
	rdb *redis.Client,
	scanLimit int,
	cacheTTL time.Duration,
) *SearchService {
	if scanLimit <= 0 {
		scanLimit = 2000
	}
	return &SearchService{
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
		stockRepo: stockRepo,
		rdb:       rdb,
		scanLimit: scanLimit,
		cacheTTL:  cacheTTL,
	}
}

// SearchRequest 检索请求
// 酒店维度条件作用于第一段，房型维度条件（价格、面积、早餐、设施）作用于第二段
type SearchRequest struct {
	City         string   `form:"city" json:"city"`
	BusinessZone string   `form:"business_zone" json:"business_zone"`
	Brand        string   `form:"brand" json:"brand"`
	HotelType    string   `form:"hotel_type" json:"hotel_type"`
	RegionType   string   `form:"region_type" json:"region_type"`
	StarRating   int      `form:"star_rating" json:"star_rating"`
	MinScore     float64  `form:"min_score" json:"min_score"`
	Keyword      string   `form:"keyword" json:"keyword"`
	Tags         []string `form:"tags" json:"tags"`
	Services     []string `form:"services" json:"services"`
	MinPrice     *float64 `form:"min_price" json:"min_price"`
	MaxPrice     *float64 `form:"max_price" json:"max_price"`
	MinArea      *float64 `form:"min_area" json:"min_area"`
	MaxArea      *float64 `form:"max_area" json:"max_area"`
	Breakfast    string   `form:"breakfast" json:"breakfast"`
	Facilities   []string `form:"facilities" json:"facilities"`
	CheckIn      string   `form:"check_in" json:"check_in"`
	CheckOut     string   `form:"check_out" json:"check_out"`
	GuestCount   int      `form:"guest_count" json:"guest_count"`
	RoomCount    int      `form:"room_count" json:"room_count"`
	SortBy       string   `form:"sort_by" json:"sort_by"`
	SortOrder    string   `form:"sort_order" json:"sort_order"`
	Page         int      `form:"page" json:"page"`
	PageSize     int      `form:"page_size" json:"page_size"`
}

// RoomResult 检索结果中的房型
type RoomResult struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Price      float64           `json:"price"`
	BedType    string            `json:"bed_type"`
	Area       float64           `json:"area"`
	Breakfast  string            `json:"breakfast"`
	MaxGuests  int               `json:"max_guests"`
	Images     models.StringList `json:"images"`
	Facilities models.StringList `json:"facilities"`
}

// HotelResult 检索结果中的酒店
type HotelResult struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Brand        string            `json:"brand"`
	City         string            `json:"city"`
	BusinessZone string            `json:"business_zone"`
	Address      string            `json:"address"`
	CoverImage   string            `json:"cover_image"`
	Tags         models.StringList `json:"tags"`
	StarRating   int               `json:"star_rating"`
	MinPrice     float64           `json:"min_price"`
	Score        float64           `json:"score"`
	ReviewCount  int               `json:"review_count"`
	Rooms        []*RoomResult     `json:"rooms"`
}

// SearchResult 检索结果
type SearchResult struct {
	List       []*HotelResult `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// 排序字段白名单，外部字段名映射到实际列
var sortColumns = map[string]string{
	"price":       "min_price",
	"rating":      "score",
	"min_price":   "min_price",
	"score":       "score",
	"star_rating": "star_rating",
	"created_at":  "created_at",
}

// Search 执行酒店可用性检索
func (s *SearchService) Search(ctx context.Context, req *SearchRequest) (*SearchResult, error) {
	s.normalize(req)

	dated, err := s.validateDates(req)
	if err != nil {
		return nil, err
	}

	mode := "attribute"
	if dated {
		mode = "dated"
	}
	metrics.GetMetrics().RecordSearch(mode)

	// 仅属性检索命中缓存时直接返回
	var cacheKey string
	if !dated && s.rdb != nil && s.cacheTTL > 0 {
		cacheKey = s.cacheKey(req)
		data, err := s.rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached SearchResult
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.GetMetrics().RecordCacheHit("search")
				return &cached, nil
			}
		} else if err == redis.Nil {
			metrics.GetMetrics().RecordCacheMiss("search")
		}
	}

	// 第一段：酒店属性过滤 + 排序
	stageStart := time.Now()
	hotels, err := s.hotelRepo.FindListed(ctx, &repository.SearchFilter{
		City:         req.City,
		BusinessZone: req.BusinessZone,
		Brand:        req.Brand,
		HotelType:    req.HotelType,
		RegionType:   req.RegionType,
		StarRating:   req.StarRating,
		MinScore:     req.MinScore,
		Keyword:      req.Keyword,
	}, s.orderBy(req), s.scanLimit)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	hotels = s.filterByTags(hotels, req.Tags, req.Services)
	metrics.GetMetrics().RecordSearchStage("hotels", len(hotels), time.Since(stageStart))

	if len(hotels) == 0 {
		return s.paginate(nil, req), nil
	}

	// 第二段：候选房型匹配
	stageStart = time.Now()
	hotelIDs := make([]int64, 0, len(hotels))
	for _, hotel := range hotels {
		hotelIDs = append(hotelIDs, hotel.ID)
	}

	roomFilter := &repository.RoomFilter{
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		MinArea:   req.MinArea,
		MaxArea:   req.MaxArea,
		Breakfast: req.Breakfast,
	}
	if req.GuestCount > 0 {
		roomFilter.MinGuests = utils.CeilDiv(req.GuestCount, req.RoomCount)
	}

	rooms, err := s.roomRepo.ListSellableByHotelIDs(ctx, hotelIDs, roomFilter)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	rooms = s.filterByFacilities(rooms, req.Facilities)
	metrics.GetMetrics().RecordSearchStage("rooms", len(rooms), time.Since(stageStart))

	// 第三段：逐夜库存连续性检查（仅带日期的检索）
	if dated {
		stageStart = time.Now()
		rooms, err = s.filterByStock(ctx, rooms, req)
		if err != nil {
			return nil, err
		}
		metrics.GetMetrics().RecordSearchStage("stock", len(rooms), time.Since(stageStart))
	}

	// 第四段：按酒店聚合，丢弃没有可订房型的酒店
	results := s.groupByHotel(hotels, rooms)

	// 第五段：内存分页
	result := s.paginate(results, req)

	if cacheKey != "" {
		if data, err := json.Marshal(result); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				logger.Warn("检索结果缓存写入失败", logger.Err(err))
			}
		}
	}

	return result, nil
}

// normalize 填充默认值
func (s *SearchService) normalize(req *SearchRequest) {
	if req.RoomCount <= 0 {
		req.RoomCount = 1
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}
}

// validateDates 校验入住/离店日期，返回是否为带日期检索
func (s *SearchService) validateDates(req *SearchRequest) (bool, error) {
	if req.CheckIn == "" && req.CheckOut == "" {
		return false, nil
	}
	if req.CheckIn == "" || req.CheckOut == "" {
		return false, errors.ErrSearchInvalidDate
	}
	if _, err := time.Parse(models.StockDateFormat, req.CheckIn); err != nil {
		return false, errors.ErrSearchInvalidDate
	}
	if _, err := time.Parse(models.StockDateFormat, req.CheckOut); err != nil {
		return false, errors.ErrSearchInvalidDate
	}
	if req.CheckIn >= req.CheckOut {
		return false, errors.ErrStockInvalidRange
	}
	return true, nil
}

// orderBy 把外部排序字段映射为白名单列表达式，默认降序
func (s *SearchService) orderBy(req *SearchRequest) string {
	column, ok := sortColumns[req.SortBy]
	if !ok {
		return "created_at DESC"
	}
	direction := "DESC"
	if req.SortOrder == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// filterByTags 内存中按标签和服务的与语义过滤，保持第一段排序
func (s *SearchService) filterByTags(hotels []*models.Hotel, tags, services []string) []*models.Hotel {
	if len(tags) == 0 && len(services) == 0 {
		return hotels
	}
	filtered := make([]*models.Hotel, 0, len(hotels))
	for _, hotel := range hotels {
		if !hotel.Tags.ContainsAll(tags) {
			continue
		}
		if !hotel.Services.ContainsAll(services) {
			continue
		}
		filtered = append(filtered, hotel)
	}
	return filtered
}

// filterByFacilities 内存中按设施与语义过滤房型
func (s *SearchService) filterByFacilities(rooms []*models.Room, facilities []string) []*models.Room {
	if len(facilities) == 0 {
		return rooms
	}
	filtered := make([]*models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Facilities.ContainsAll(facilities) {
			filtered = append(filtered, room)
		}
	}
	return filtered
}

// filterByStock 保留在整个入住区间每夜都有足量库存的房型
func (s *SearchService) filterByStock(ctx context.Context, rooms []*models.Room, req *SearchRequest) ([]*models.Room, error) {
	if len(rooms) == 0 {
		return rooms, nil
	}

	dates := utils.DateRange(req.CheckIn, req.CheckOut)
	roomIDs := make([]int64, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	stocks, err := s.stockRepo.ListByRoomsDates(ctx, roomIDs, dates)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 按房型聚合逐夜库存
	byRoom := make(map[int64][]*models.RoomStock, len(rooms))
	for _, stock := range stocks {
		byRoom[stock.RoomID] = append(byRoom[stock.RoomID], stock)
	}

	available := make([]*models.Room, 0, len(rooms))
	for _, room := range rooms {
		select {
		case <-ctx.Done():
			return nil, errors.ErrInternalError.WithError(ctx.Err())
		default:
		}

		nights := byRoom[room.ID]
		// 缺任何一夜记录即视为不可订
		if len(nights) != len(dates) {
			continue
		}
		ok := true
		for _, night := range nights {
			if night.AvailableCount() < req.RoomCount {
				ok = false
				break
			}
		}
		if ok {
			available = append(available, room)
		}
	}
	return available, nil
}

// groupByHotel 把房型归并到酒店下，保持酒店排序，丢弃空酒店
func (s *SearchService) groupByHotel(hotels []*models.Hotel, rooms []*models.Room) []*HotelResult {
	roomsByHotel := make(map[int64][]*RoomResult, len(hotels))
	for _, room := range rooms {
		roomsByHotel[room.HotelID] = append(roomsByHotel[room.HotelID], &RoomResult{
			ID:         room.ID,
			Title:      room.Title,
			Price:      room.Price,
			BedType:    room.BedType,
			Area:       room.Area,
			Breakfast:  room.Breakfast,
			MaxGuests:  room.MaxGuests,
			Images:     room.Images,
			Facilities: room.Facilities,
		})
	}

	results := make([]*HotelResult, 0, len(hotels))
	for _, hotel := range hotels {
		matched := roomsByHotel[hotel.ID]
		if len(matched) == 0 {
			continue
		}
		results = append(results, &HotelResult{
			ID:           hotel.ID,
			Name:         hotel.Name,
			Brand:        hotel.Brand,
			City:         hotel.City,
			BusinessZone: hotel.BusinessZone,
			Address:      hotel.Address,
			CoverImage:   hotel.CoverImage,
			Tags:         hotel.Tags,
			StarRating:   hotel.StarRating,
			MinPrice:     hotel.MinPrice,
			Score:        hotel.Score,
			ReviewCount:  hotel.ReviewCount,
			Rooms:        matched,
		})
	}
	return results
}

// paginate 内存分页，total 是过滤后的真实总数
func (s *SearchService) paginate(results []*HotelResult, req *SearchRequest) *SearchResult {
	total := int64(len(results))
	totalPages := int((total + int64(req.PageSize) - 1) / int64(req.PageSize))

	start := (req.Page - 1) * req.PageSize
	end := start + req.PageSize
	if start > len(results) {
		start = len(results)
	}
	if end > len(results) {
		end = len(results)
	}

	page := results[start:end]
	if page == nil {
		page = []*HotelResult{}
	}

	return &SearchResult{
		List:       page,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}

// cacheKey 从请求内容生成稳定的缓存键
func (s *SearchService) cacheKey(req *SearchRequest) string {
	data, _ := json.Marshal(req)
	sum := sha1.Sum(data)
	return "search:attr:" + hex.EncodeToString(sum[:])
}
