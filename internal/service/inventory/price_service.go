// Package inventory 提供房型库存台账和酒店起价服务
package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/logger"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
)

// PriceService 酒店起价聚合服务
//
// 酒店的 min_price 是派生值：可售房型（已审核通过且上架中）的最低挂牌价，
// 没有可售房型时为 0。任何改变房型可售性或价格的操作之后都要重算。
type PriceService struct {
	hotelRepo *repository.HotelRepository
	roomRepo  *repository.RoomRepository
}

// NewPriceService 创建起价服务
func NewPriceService(
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
) *PriceService {
	return &PriceService{
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
	}
}

// SyncMinPrice 重算并落库酒店起价
// 查询失败时保留旧值并返回错误，不会把起价误置为 0
func (s *PriceService) SyncMinPrice(ctx context.Context, hotelID int64) error {
	if _, err := s.hotelRepo.GetByID(ctx, hotelID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	price, found, err := s.roomRepo.GetMinSellablePrice(ctx, hotelID)
	if err != nil {
		metrics.GetMetrics().RecordMinPriceSync("error")
		return errors.ErrDatabaseError.WithError(err)
	}
	if !found {
		price = 0
	}

	if err := s.hotelRepo.UpdateMinPrice(ctx, hotelID, price); err != nil {
		metrics.GetMetrics().RecordMinPriceSync("error")
		return errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordMinPriceSync("success")
	logger.Debug("酒店起价已重算",
		logger.HotelID(hotelID),
		logger.Float64("min_price", price),
	)
	return nil
}
