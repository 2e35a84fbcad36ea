// Package inventory 提供房型库存台账和酒店起价服务
//
// 库存按 (房型, 入住夜) 一行记录，日期统一为 YYYY-MM-DD 字符串。
// 可用量 = 物理总间数 - 已占用间数，不单独存储。
package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/logger"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/utils"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
)

// StockService 库存台账服务
type StockService struct {
	stockRepo *repository.StockRepository
	roomRepo  *repository.RoomRepository
}

// NewStockService 创建库存服务
func NewStockService(
	stockRepo *repository.StockRepository,
	roomRepo *repository.RoomRepository,
) *StockService {
	return &StockService{
		stockRepo: stockRepo,
		roomRepo:  roomRepo,
	}
}

// StockInfo 单夜库存信息
type StockInfo struct {
	Date           string   `json:"date"`
	TotalCount     int      `json:"total_count"`
	BookedCount    int      `json:"booked_count"`
	AvailableCount int      `json:"available_count"`
	DailyPrice     *float64 `json:"daily_price,omitempty"`
}

// ProvisionRange 为房型铺设从 fromDate 起连续 nights 夜的库存
// 幂等：已存在的夜静默跳过，不会覆盖其占用量
func (s *StockService) ProvisionRange(ctx context.Context, room *models.Room, fromDate string, nights int, source string) error {
	if nights <= 0 {
		return nil
	}

	dates := make([]string, 0, nights)
	date := fromDate
	for i := 0; i < nights; i++ {
		dates = append(dates, date)
		next, err := utils.AddDays(date, 1)
		if err != nil {
			return errors.ErrInvalidParams.WithError(err)
		}
		date = next
	}

	stocks := make([]*models.RoomStock, 0, len(dates))
	for _, d := range dates {
		stocks = append(stocks, &models.RoomStock{
			HotelID:    room.HotelID,
			RoomID:     room.ID,
			Date:       d,
			TotalCount: room.TotalCount,
		})
	}

	if err := s.stockRepo.BatchCreate(ctx, stocks); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordStockNights(source, len(stocks))
	logger.Debug("库存铺设完成",
		logger.RoomID(room.ID),
		logger.Int("nights", nights),
		logger.String("from", fromDate),
	)
	return nil
}

// ProvisionNight 为房型铺设单夜库存，已存在时静默跳过
func (s *StockService) ProvisionNight(ctx context.Context, room *models.Room, date string, source string) error {
	return s.ProvisionRange(ctx, room, date, 1, source)
}

// ResizeCapacity 调整房型从 fromDate 起的物理总间数
// 历史夜保持原值，只改未来库存
func (s *StockService) ResizeCapacity(ctx context.Context, roomID int64, fromDate string, totalCount int) error {
	if totalCount <= 0 {
		return errors.ErrRoomInvalidCount
	}
	if err := s.stockRepo.ResizeFrom(ctx, roomID, fromDate, totalCount); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	logger.Info("库存容量已调整",
		logger.RoomID(roomID),
		logger.Int("total_count", totalCount),
		logger.String("from", fromDate),
	)
	return nil
}

// CheckContinuousAvailability 检查房型在 [checkIn, checkOut) 每一夜是否都有足量可用库存
// 任何一夜缺记录即视为不可用，存在性即完备性
func (s *StockService) CheckContinuousAvailability(ctx context.Context, roomID int64, checkIn, checkOut string, roomCount int) (bool, error) {
	dates := utils.DateRange(checkIn, checkOut)
	if len(dates) == 0 {
		return false, errors.ErrStockInvalidRange
	}
	if roomCount <= 0 {
		return false, errors.ErrStockInvalidCount
	}

	stocks, err := s.stockRepo.ListByRoomDates(ctx, roomID, dates)
	if err != nil {
		return false, errors.ErrDatabaseError.WithError(err)
	}

	if len(stocks) != len(dates) {
		return false, nil
	}
	for _, stock := range stocks {
		if stock.AvailableCount() < roomCount {
			return false, nil
		}
	}
	return true, nil
}

// Reserve 占用房型在 [checkIn, checkOut) 每一夜的 count 间库存
// 整段事务执行，任何一夜不足时整体失败且不留下部分占用
func (s *StockService) Reserve(ctx context.Context, roomID int64, checkIn, checkOut string, count int) error {
	dates := utils.DateRange(checkIn, checkOut)
	if len(dates) == 0 {
		return errors.ErrStockInvalidRange
	}
	if count <= 0 {
		return errors.ErrStockInvalidCount
	}
	if checkIn < utils.Today() {
		return errors.ErrStockPastDate
	}

	ok, err := s.stockRepo.Reserve(ctx, roomID, dates, count)
	if err != nil {
		metrics.GetMetrics().RecordStockReserve("reserve", "error")
		return errors.ErrDatabaseError.WithError(err)
	}
	if !ok {
		metrics.GetMetrics().RecordStockReserve("reserve", "insufficient")
		return errors.ErrStockInsufficient
	}

	metrics.GetMetrics().RecordStockReserve("reserve", "success")
	logger.Info("库存占用成功",
		logger.RoomID(roomID),
		logger.String("check_in", checkIn),
		logger.String("check_out", checkOut),
		logger.Int("count", count),
	)
	return nil
}

// Release 释放房型在 [checkIn, checkOut) 每一夜的 count 间占用
// 整段事务执行，任何一夜占用量不足时整体失败
func (s *StockService) Release(ctx context.Context, roomID int64, checkIn, checkOut string, count int) error {
	dates := utils.DateRange(checkIn, checkOut)
	if len(dates) == 0 {
		return errors.ErrStockInvalidRange
	}
	if count <= 0 {
		return errors.ErrStockInvalidCount
	}

	ok, err := s.stockRepo.Release(ctx, roomID, dates, count)
	if err != nil {
		metrics.GetMetrics().RecordStockReserve("release", "error")
		return errors.ErrDatabaseError.WithError(err)
	}
	if !ok {
		metrics.GetMetrics().RecordStockReserve("release", "guard_failed")
		return errors.ErrStockInvalidCount.WithMessage("释放量超过已占用量")
	}

	metrics.GetMetrics().RecordStockReserve("release", "success")
	return nil
}

// Destroy 删除房型的全部库存记录
func (s *StockService) Destroy(ctx context.Context, roomID int64) error {
	if err := s.stockRepo.DeleteByRoom(ctx, roomID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	logger.Info("库存已清除", logger.RoomID(roomID))
	return nil
}

// GetStock 获取房型从 fromDate 起的逐夜库存
func (s *StockService) GetStock(ctx context.Context, roomID int64, fromDate string) ([]*StockInfo, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	stocks, err := s.stockRepo.ListByRoomFrom(ctx, roomID, fromDate)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	result := make([]*StockInfo, 0, len(stocks))
	for _, stock := range stocks {
		result = append(result, &StockInfo{
			Date:           stock.Date,
			TotalCount:     stock.TotalCount,
			BookedCount:    stock.BookedCount,
			AvailableCount: stock.AvailableCount(),
			DailyPrice:     stock.DailyPrice,
		})
	}
	return result, nil
}

// SetDailyPrice 设置房型某一夜的当日价
func (s *StockService) SetDailyPrice(ctx context.Context, roomID int64, date string, price float64) error {
	if price < 0 {
		return errors.ErrRoomInvalidPrice
	}
	exists, err := s.stockRepo.ExistsByRoomAndDate(ctx, roomID, date)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if !exists {
		return errors.ErrStockNotFound
	}
	if err := s.stockRepo.UpdateDailyPrice(ctx, roomID, date, price); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}
