package search

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/logger"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
)

// HotelDetail 公开的酒店详情
type HotelDetail struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Brand        string            `json:"brand"`
	HotelType    string            `json:"hotel_type"`
	Country      string            `json:"country"`
	City         string            `json:"city"`
	BusinessZone string            `json:"business_zone"`
	Address      string            `json:"address"`
	Longitude    *float64          `json:"longitude"`
	Latitude     *float64          `json:"latitude"`
	StarRating   int               `json:"star_rating"`
	Discount     float64           `json:"discount"`
	Tags         models.StringList `json:"tags"`
	Services     models.StringList `json:"services"`
	DetailImages models.StringList `json:"detail_images"`
	CoverImage   string            `json:"cover_image"`
	MinPrice     float64           `json:"min_price"`
	Score        float64           `json:"score"`
	ReviewCount  int               `json:"review_count"`
	Rooms        []*RoomResult     `json:"rooms"`
}

// GetHotelDetail 获取对外展示的酒店详情
// 仅已上架的酒店可见，房型列表只包含可售房型。
// 详情和属性检索共用同一条短 TTL 缓存策略
func (s *SearchService) GetHotelDetail(ctx context.Context, hotelID int64) (*HotelDetail, error) {
	var cacheKey string
	if s.rdb != nil && s.cacheTTL > 0 {
		cacheKey = "hotel:detail:" + strconv.FormatInt(hotelID, 10)
		data, err := s.rdb.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var cached HotelDetail
			if err := json.Unmarshal(data, &cached); err == nil {
				metrics.GetMetrics().RecordCacheHit("hotel_detail")
				return &cached, nil
			}
		} else if err == redis.Nil {
			metrics.GetMetrics().RecordCacheMiss("hotel_detail")
		}
	}

	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	// 存在但未上架的酒店返回下线态，区别于不存在
	if !hotel.IsListed() {
		return nil, errors.ErrHotelOffline
	}

	rooms, err := s.roomRepo.ListSellableByHotel(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	detail := &HotelDetail{
		ID:           hotel.ID,
		Name:         hotel.Name,
		Brand:        hotel.Brand,
		HotelType:    hotel.HotelType,
		Country:      hotel.Country,
		City:         hotel.City,
		BusinessZone: hotel.BusinessZone,
		Address:      hotel.Address,
		Longitude:    hotel.Longitude,
		Latitude:     hotel.Latitude,
		StarRating:   hotel.StarRating,
		Discount:     hotel.Discount,
		Tags:         hotel.Tags,
		Services:     hotel.Services,
		DetailImages: hotel.DetailImages,
		CoverImage:   hotel.CoverImage,
		MinPrice:     hotel.MinPrice,
		Score:        hotel.Score,
		ReviewCount:  hotel.ReviewCount,
		Rooms:        make([]*RoomResult, 0, len(rooms)),
	}
	for _, room := range rooms {
		detail.Rooms = append(detail.Rooms, &RoomResult{
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

	if cacheKey != "" {
		if data, err := json.Marshal(detail); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
				logger.Warn("酒店详情缓存写入失败", logger.Err(err))
			}
		}
	}
	return detail, nil
}
