// Package repository 提供数据访问层
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
)

// errGuardFailed 用于在事务内触发整段回滚
var errGuardFailed = errors.New("stock guard failed")

// StockRepository 房型库存仓储
// 库存按 (房型, 入住夜) 一行记录，日期统一为 YYYY-MM-DD 字符串
type StockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓储
func NewStockRepository(db *gorm.DB) *StockRepository {
	return &StockRepository{db: db}
}

// BatchCreate 批量创建库存记录
// 依赖 (room_id, date) 唯一索引，已存在的日期静默跳过，保证铺设幂等
func (r *StockRepository) BatchCreate(ctx context.Context, stocks []*models.RoomStock) error {
	if len(stocks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&stocks).Error
}

// GetByRoomAndDate 获取房型某一夜的库存
func (r *StockRepository) GetByRoomAndDate(ctx context.Context, roomID int64, date string) (*models.RoomStock, error) {
	var stock models.RoomStock
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND date = ?", roomID, date).
		First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

// ListByRoomFrom 获取房型从指定日期起的库存，按日期升序
func (r *StockRepository) ListByRoomFrom(ctx context.Context, roomID int64, fromDate string) ([]*models.RoomStock, error) {
	var stocks []*models.RoomStock
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND date >= ?", roomID, fromDate).
		Order("date ASC").
		Find(&stocks).Error
	return stocks, err
}

// ListByRoomDates 获取房型在指定日期集合内的库存
func (r *StockRepository) ListByRoomDates(ctx context.Context, roomID int64, dates []string) ([]*models.RoomStock, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	var stocks []*models.RoomStock
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND date IN ?", roomID, dates).
		Order("date ASC").
		Find(&stocks).Error
	return stocks, err
}

// ListByRoomsDates 批量获取多个房型在指定日期集合内的库存
// 检索流水线用它一次取回全部候选房型的逐夜库存
func (r *StockRepository) ListByRoomsDates(ctx context.Context, roomIDs []int64, dates []string) ([]*models.RoomStock, error) {
	if len(roomIDs) == 0 || len(dates) == 0 {
		return nil, nil
	}
	var stocks []*models.RoomStock
	err := r.db.WithContext(ctx).
		Where("room_id IN ? AND date IN ?", roomIDs, dates).
		Order("room_id ASC, date ASC").
		Find(&stocks).Error
	return stocks, err
}

// ResizeFrom 调整房型从指定日期起的物理总间数
// 只改未来库存，历史夜保持原值
func (r *StockRepository) ResizeFrom(ctx context.Context, roomID int64, fromDate string, totalCount int) error {
	return r.db.WithContext(ctx).Model(&models.RoomStock{}).
		Where("room_id = ? AND date >= ?", roomID, fromDate).
		Update("total_count", totalCount).Error
}

// Reserve 占用房型在指定日期集合上的库存，整段事务执行
// 任何一夜可用量不足时整体回滚并返回 false
func (r *StockRepository) Reserve(ctx context.Context, roomID int64, dates []string, count int) (bool, error) {
	if len(dates) == 0 || count <= 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, date := range dates {
			result := tx.Model(&models.RoomStock{}).
				Where("room_id = ? AND date = ?", roomID, date).
				Where("booked_count + ? <= total_count", count).
				UpdateColumn("booked_count", gorm.Expr("booked_count + ?", count))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errGuardFailed
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errGuardFailed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Release 释放房型在指定日期集合上的占用，整段事务执行
// 已占用量不足时整体回滚并返回 false
func (r *StockRepository) Release(ctx context.Context, roomID int64, dates []string, count int) (bool, error) {
	if len(dates) == 0 || count <= 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, date := range dates {
			result := tx.Model(&models.RoomStock{}).
				Where("room_id = ? AND date = ?", roomID, date).
				Where("booked_count >= ?", count).
				UpdateColumn("booked_count", gorm.Expr("booked_count - ?", count))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errGuardFailed
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errGuardFailed) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateDailyPrice 更新房型某一夜的当日价
func (r *StockRepository) UpdateDailyPrice(ctx context.Context, roomID int64, date string, price float64) error {
	return r.db.WithContext(ctx).Model(&models.RoomStock{}).
		Where("room_id = ? AND date = ?", roomID, date).
		Update("daily_price", price).Error
}

// DeleteByRoom 删除房型的全部库存记录
func (r *StockRepository) DeleteByRoom(ctx context.Context, roomID int64) error {
	return r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Delete(&models.RoomStock{}).Error
}

// CountByRoomFrom 统计房型从指定日期起的库存夜数
func (r *StockRepository) CountByRoomFrom(ctx context.Context, roomID int64, fromDate string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RoomStock{}).
		Where("room_id = ? AND date >= ?", roomID, fromDate).
		Count(&count).Error
	return count, err
}

// ExistsByRoomAndDate 检查房型某一夜是否已铺设库存
func (r *StockRepository) ExistsByRoomAndDate(ctx context.Context, roomID int64, date string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RoomStock{}).
		Where("room_id = ? AND date = ?", roomID, date).
		Count(&count).Error
	return count > 0, err
}
