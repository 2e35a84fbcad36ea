// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
)

// RoomRepository 房型仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房型仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create 创建房型
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID 根据 ID 获取房型
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDWithHotel 根据 ID 获取房型（包含所属酒店）
func (r *RoomRepository) GetByIDWithHotel(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update 更新房型
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// UpdateFields 更新指定字段
func (r *RoomRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatus 更新审核状态和备注
func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status int8, remark string) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"audit_remark": remark,
		}).Error
}

// SetPublished 设置上架状态
func (r *RoomRepository) SetPublished(ctx context.Context, id int64, published bool) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", id).
		Update("is_published", published).Error
}

// Delete 删除房型
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// ListByHotel 获取酒店的房型列表
func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("price ASC").
		Find(&rooms).Error
	return rooms, err
}

// ListSellableByHotel 获取酒店可售的房型列表（已审核通过且上架中）
func (r *RoomRepository) ListSellableByHotel(ctx context.Context, hotelID int64) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Where("status = ?", models.RoomStatusApproved).
		Where("is_published = ?", true).
		Order("price ASC").
		Find(&rooms).Error
	return rooms, err
}

// RoomFilter 可售房型的检索条件
type RoomFilter struct {
	MinGuests int
	MinPrice  *float64
	MaxPrice  *float64
	MinArea   *float64
	MaxArea   *float64
	Breakfast string
}

// ListSellableByHotelIDs 批量获取多个酒店的可售房型
// filter 可为 nil，表示不附加房型条件
func (r *RoomRepository) ListSellableByHotelIDs(ctx context.Context, hotelIDs []int64, filter *RoomFilter) ([]*models.Room, error) {
	if len(hotelIDs) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Where("hotel_id IN ?", hotelIDs).
		Where("status = ?", models.RoomStatusApproved).
		Where("is_published = ?", true)

	if filter != nil {
		if filter.MinGuests > 0 {
			query = query.Where("max_guests >= ?", filter.MinGuests)
		}
		if filter.MinPrice != nil {
			query = query.Where("price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			query = query.Where("price <= ?", *filter.MaxPrice)
		}
		if filter.MinArea != nil {
			query = query.Where("area >= ?", *filter.MinArea)
		}
		if filter.MaxArea != nil {
			query = query.Where("area <= ?", *filter.MaxArea)
		}
		if filter.Breakfast != "" {
			query = query.Where("breakfast = ?", filter.Breakfast)
		}
	}

	var rooms []*models.Room
	err := query.Order("hotel_id ASC, price ASC").Find(&rooms).Error
	return rooms, err
}

// GetMinSellablePrice 获取酒店可售房型中的最低价格
// 没有可售房型时返回 (0, false, nil)
func (r *RoomRepository) GetMinSellablePrice(ctx context.Context, hotelID int64) (float64, bool, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Where("status = ?", models.RoomStatusApproved).
		Where("is_published = ?", true).
		Order("price ASC").
		First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return room.Price, true, nil
}

// ListByStatus 按审核状态获取房型列表
func (r *RoomRepository) ListByStatus(ctx context.Context, status int8, offset, limit int) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Room{}).Where("status = ?", status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Hotel").
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// ListAll 获取全部房型（定时补库存任务使用）
func (r *RoomRepository) ListAll(ctx context.Context) ([]*models.Room, error) {
	var rooms []*models.Room
	err := r.db.WithContext(ctx).Find(&rooms).Error
	return rooms, err
}

// CountByHotel 统计酒店的房型数量
func (r *RoomRepository) CountByHotel(ctx context.Context, hotelID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Room{}).
		Where("hotel_id = ?", hotelID).
		Count(&count).Error
	return count, err
}
