// Package merchant 提供商户侧的酒店和房型管理服务
package merchant

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/logger"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
)

// HotelService 商户酒店服务
type HotelService struct {
	hotelRepo *repository.HotelRepository
	roomRepo  *repository.RoomRepository
}

// NewHotelService 创建商户酒店服务
func NewHotelService(
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
) *HotelService {
	return &HotelService{
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
	}
}

// CreateHotelRequest 创建酒店请求
type CreateHotelRequest struct {
	Name         string            `json:"name" binding:"required"`
	Brand        string            `json:"brand"`
	HotelType    string            `json:"hotel_type"`
	RegionType   string            `json:"region_type"`
	Country      string            `json:"country"`
	City         string            `json:"city" binding:"required"`
	BusinessZone string            `json:"business_zone"`
	Address      string            `json:"address" binding:"required"`
	Longitude    *float64          `json:"longitude"`
	Latitude     *float64          `json:"latitude"`
	StarRating   int               `json:"star_rating"`
	Discount     *float64          `json:"discount"`
	Tags         models.StringList `json:"tags"`
	Services     models.StringList `json:"services"`
	DetailImages models.StringList `json:"detail_images"`
	CoverImage   string            `json:"cover_image"`
}

// UpdateHotelRequest 更新酒店请求
// 指针字段表示「提供则更新」，白名单之外的字段（审核状态、起价、评分）不可改
type UpdateHotelRequest struct {
	Name         *string            `json:"name"`
	Brand        *string            `json:"brand"`
	HotelType    *string            `json:"hotel_type"`
	RegionType   *string            `json:"region_type"`
	Country      *string            `json:"country"`
	City         *string            `json:"city"`
	BusinessZone *string            `json:"business_zone"`
	Address      *string            `json:"address"`
	Longitude    *float64           `json:"longitude"`
	Latitude     *float64           `json:"latitude"`
	StarRating   *int               `json:"star_rating"`
	Discount     *float64           `json:"discount"`
	Tags         *models.StringList `json:"tags"`
	Services     *models.StringList `json:"services"`
	DetailImages *models.StringList `json:"detail_images"`
	CoverImage   *string            `json:"cover_image"`
}

// CreateHotel 创建酒店，新酒店进入待审核状态
func (s *HotelService) CreateHotel(ctx context.Context, merchantID int64, req *CreateHotelRequest) (*models.Hotel, error) {
	if req.Name == "" || req.City == "" || req.Address == "" {
		return nil, errors.ErrHotelMissingField
	}

	hotel := &models.Hotel{
		MerchantID:   merchantID,
		Name:         req.Name,
		Brand:        req.Brand,
		HotelType:    req.HotelType,
		RegionType:   req.RegionType,
		Country:      req.Country,
		City:         req.City,
		BusinessZone: req.BusinessZone,
		Address:      req.Address,
		Longitude:    req.Longitude,
		Latitude:     req.Latitude,
		StarRating:   req.StarRating,
		Tags:         req.Tags,
		Services:     req.Services,
		DetailImages: req.DetailImages,
		CoverImage:   req.CoverImage,
		Status:       models.HotelStatusPending,
		MinPrice:     0,
	}
	if req.Discount != nil {
		hotel.Discount = *req.Discount
	}

	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("酒店已创建，等待审核",
		logger.MerchantID(merchantID),
		logger.HotelID(hotel.ID),
	)
	return hotel, nil
}

// UpdateHotel 更新酒店资料
// 任何资料变更都会把酒店打回待审核状态
func (s *HotelService) UpdateHotel(ctx context.Context, merchantID, hotelID int64, req *UpdateHotelRequest) (*models.Hotel, error) {
	hotel, err := s.getOwnedHotel(ctx, merchantID, hotelID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Brand != nil {
		fields["brand"] = *req.Brand
	}
	if req.HotelType != nil {
		fields["hotel_type"] = *req.HotelType
	}
	if req.RegionType != nil {
		fields["region_type"] = *req.RegionType
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.BusinessZone != nil {
		fields["business_zone"] = *req.BusinessZone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.StarRating != nil {
		fields["star_rating"] = *req.StarRating
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.Tags != nil {
		fields["tags"] = *req.Tags
	}
	if req.Services != nil {
		fields["services"] = *req.Services
	}
	if req.DetailImages != nil {
		fields["detail_images"] = *req.DetailImages
	}
	if req.CoverImage != nil {
		fields["cover_image"] = *req.CoverImage
	}

	if len(fields) == 0 {
		return hotel, nil
	}

	// 资料变更后重新进入审核流程
	fields["status"] = models.HotelStatusPending
	fields["audit_remark"] = ""

	if err := s.hotelRepo.UpdateFields(ctx, hotelID, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	updated, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("酒店资料已更新，重新进入审核",
		logger.MerchantID(merchantID),
		logger.HotelID(hotelID),
	)
	return updated, nil
}

// GetHotel 获取商户名下的酒店详情（含房型）
func (s *HotelService) GetHotel(ctx context.Context, merchantID, hotelID int64) (*models.Hotel, error) {
	if _, err := s.getOwnedHotel(ctx, merchantID, hotelID); err != nil {
		return nil, err
	}
	hotel, err := s.hotelRepo.GetByIDWithRooms(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return hotel, nil
}

// ListHotels 获取商户名下的酒店列表
func (s *HotelService) ListHotels(ctx context.Context, merchantID int64, offset, limit int) ([]*models.Hotel, int64, error) {
	hotels, total, err := s.hotelRepo.ListByMerchant(ctx, merchantID, offset, limit)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return hotels, total, nil
}

// DeleteHotel 删除酒店，要求名下已无房型
func (s *HotelService) DeleteHotel(ctx context.Context, merchantID, hotelID int64) error {
	if _, err := s.getOwnedHotel(ctx, merchantID, hotelID); err != nil {
		return err
	}

	count, err := s.roomRepo.CountByHotel(ctx, hotelID)
	if err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if count > 0 {
		return errors.ErrInvalidParams.WithMessage("请先删除酒店下的全部房型")
	}

	if err := s.hotelRepo.Delete(ctx, hotelID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("酒店已删除",
		logger.MerchantID(merchantID),
		logger.HotelID(hotelID),
	)
	return nil
}

// getOwnedHotel 获取酒店并校验归属
func (s *HotelService) getOwnedHotel(ctx context.Context, merchantID, hotelID int64) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if hotel.MerchantID != merchantID {
		return nil, errors.ErrNotOwner
	}
	return hotel, nil
}
