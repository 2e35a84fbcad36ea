// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
)

// HotelRepository 酒店仓储
type HotelRepository struct {
	db *gorm.DB
}

// NewHotelRepository 创建酒店仓储
func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// Create 创建酒店
func (r *HotelRepository) Create(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

// GetByID 根据 ID 获取酒店
func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).First(&hotel, id).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

// GetByIDWithRooms 根据 ID 获取酒店（包含房型列表）
func (r *HotelRepository) GetByIDWithRooms(ctx context.Context, id int64) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).
		Preload("Rooms").
		First(&hotel, id).Error
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

// Update 更新酒店
func (r *HotelRepository) Update(ctx context.Context, hotel *models.Hotel) error {
	return r.db.WithContext(ctx).Save(hotel).Error
}

// UpdateFields 更新指定字段
func (r *HotelRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Hotel{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatus 更新审核状态和备注
func (r *HotelRepository) UpdateStatus(ctx context.Context, id int64, status int8, remark string) error {
	return r.db.WithContext(ctx).Model(&models.Hotel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"audit_remark": remark,
		}).Error
}

// UpdateMinPrice 更新酒店起价
func (r *HotelRepository) UpdateMinPrice(ctx context.Context, id int64, minPrice float64) error {
	return r.db.WithContext(ctx).Model(&models.Hotel{}).
		Where("id = ?", id).
		Update("min_price", minPrice).Error
}

// Delete 删除酒店
func (r *HotelRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Hotel{}, id).Error
}

// ListByMerchant 获取商户名下的酒店列表
func (r *HotelRepository) ListByMerchant(ctx context.Context, merchantID int64, offset, limit int) ([]*models.Hotel, int64, error) {
	var hotels []*models.Hotel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Hotel{}).Where("merchant_id = ?", merchantID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&hotels).Error; err != nil {
		return nil, 0, err
	}

	return hotels, total, nil
}

// ListByStatus 按审核状态获取酒店列表
func (r *HotelRepository) ListByStatus(ctx context.Context, status int8, offset, limit int) ([]*models.Hotel, int64, error) {
	var hotels []*models.Hotel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Hotel{}).Where("status = ?", status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&hotels).Error; err != nil {
		return nil, 0, err
	}

	return hotels, total, nil
}

// SearchFilter 酒店检索的属性过滤条件
// BusinessZone 和 Keyword 一样对名称/商圈/地址做子串匹配；
// 标签和服务的与语义匹配在服务层内存中完成，不在此处过滤
type SearchFilter struct {
	City         string
	BusinessZone string
	Brand        string
	HotelType    string
	RegionType   string
	StarRating   int
	MinScore     float64
	Keyword      string
}

// FindListed 检索已上架的酒店（属性过滤 + 排序 + 扫描上限）
// orderBy 必须是调用方映射后的白名单列表达式
func (r *HotelRepository) FindListed(ctx context.Context, filter *SearchFilter, orderBy string, scanLimit int) ([]*models.Hotel, error) {
	var hotels []*models.Hotel

	query := r.db.WithContext(ctx).Model(&models.Hotel{}).
		Where("status = ?", models.HotelStatusListed)

	if filter != nil {
		if filter.City != "" {
			query = query.Where("city = ?", filter.City)
		}
		if filter.BusinessZone != "" {
			zone := "%" + filter.BusinessZone + "%"
			query = query.Where("name LIKE ? OR business_zone LIKE ? OR address LIKE ?", zone, zone, zone)
		}
		if filter.Brand != "" {
			query = query.Where("brand = ?", filter.Brand)
		}
		if filter.HotelType != "" {
			query = query.Where("hotel_type = ?", filter.HotelType)
		}
		if filter.RegionType != "" {
			query = query.Where("region_type = ?", filter.RegionType)
		}
		if filter.StarRating > 0 {
			query = query.Where("star_rating = ?", filter.StarRating)
		}
		if filter.MinScore > 0 {
			query = query.Where("score >= ?", filter.MinScore)
		}
		if filter.Keyword != "" {
			kw := "%" + filter.Keyword + "%"
			query = query.Where("name LIKE ? OR business_zone LIKE ? OR address LIKE ?", kw, kw, kw)
		}
	}

	err := query.
		Order(orderBy).
		Limit(scanLimit).
		Find(&hotels).Error
	return hotels, err
}

// CountByMerchant 统计商户名下的酒店数量
func (r *HotelRepository) CountByMerchant(ctx context.Context, merchantID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Hotel{}).
		Where("merchant_id = ?", merchantID).
		Count(&count).Error
	return count, err
}
