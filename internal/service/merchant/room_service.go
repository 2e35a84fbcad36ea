// Package merchant 提供商户侧的酒店和房型管理服务
package merchant

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/logger"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/utils"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
	"github.com/dumeirei/hotel-marketplace-backend/internal/service/inventory"
)

// 房型上下架操作
const (
	RoomActionHide    = "hide"
	RoomActionRecover = "recover"
)

// RoomService 商户房型服务
type RoomService struct {
	roomRepo      *repository.RoomRepository
	hotelRepo     *repository.HotelRepository
	stockService  *inventory.StockService
	priceService  *inventory.PriceService
	horizonNights int
}

// NewRoomService 创建商户房型服务
// horizonNights 是新房型预铺库存的天数
func NewRoomService(
	roomRepo *repository.RoomRepository,
	hotelRepo *repository.HotelRepository,
	stockService *inventory.StockService,
	priceService *inventory.PriceService,
	horizonNights int,
) *RoomService {
	if horizonNights <= 0 {
		horizonNights = 60
	}
	return &RoomService{
		roomRepo:      roomRepo,
		hotelRepo:     hotelRepo,
		stockService:  stockService,
		priceService:  priceService,
		horizonNights: horizonNights,
	}
}

// CreateRoomRequest 创建房型请求
type CreateRoomRequest struct {
	Title         string            `json:"title" binding:"required"`
	Price         float64           `json:"price" binding:"required"`
	OriginalPrice *float64          `json:"original_price"`
	BedType       string            `json:"bed_type"`
	Area          float64           `json:"area"`
	HasBathtub    bool              `json:"has_bathtub"`
	WindowStatus  string            `json:"window_status"`
	Breakfast     string            `json:"breakfast"`
	MaxGuests     int               `json:"max_guests"`
	TotalCount    int               `json:"total_count"`
	Images        models.StringList `json:"images"`
	Facilities    models.StringList `json:"facilities"`
}

// UpdateRoomRequest 更新房型请求
// 指针字段表示「提供则更新」
type UpdateRoomRequest struct {
	Title         *string            `json:"title"`
	Price         *float64           `json:"price"`
	OriginalPrice *float64           `json:"original_price"`
	BedType       *string            `json:"bed_type"`
	Area          *float64           `json:"area"`
	HasBathtub    *bool              `json:"has_bathtub"`
	WindowStatus  *string            `json:"window_status"`
	Breakfast     *string            `json:"breakfast"`
	MaxGuests     *int               `json:"max_guests"`
	TotalCount    *int               `json:"total_count"`
	Images        *models.StringList `json:"images"`
	Facilities    *models.StringList `json:"facilities"`
}

// CreateRoom 在已上架的酒店下创建房型
// 新房型进入待审核状态，同时预铺未来库存
func (s *RoomService) CreateRoom(ctx context.Context, merchantID, hotelID int64, req *CreateRoomRequest) (*models.Room, error) {
	hotel, err := s.getOwnedHotel(ctx, merchantID, hotelID)
	if err != nil {
		return nil, err
	}
	if !hotel.IsListed() {
		return nil, errors.ErrHotelNotListed
	}

	if req.Price <= 0 {
		return nil, errors.ErrRoomInvalidPrice
	}
	totalCount := req.TotalCount
	if totalCount <= 0 {
		totalCount = 1
	}
	maxGuests := req.MaxGuests
	if maxGuests <= 0 {
		maxGuests = 2
	}

	room := &models.Room{
		HotelID:       hotelID,
		Title:         req.Title,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		BedType:       req.BedType,
		Area:          req.Area,
		HasBathtub:    req.HasBathtub,
		WindowStatus:  req.WindowStatus,
		Breakfast:     req.Breakfast,
		MaxGuests:     maxGuests,
		TotalCount:    totalCount,
		Images:        req.Images,
		Facilities:    req.Facilities,
		Status:        models.RoomStatusPending,
		IsPublished:   true,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if err := s.stockService.ProvisionRange(ctx, room, utils.Today(), s.horizonNights, "room_create"); err != nil {
		return nil, err
	}

	if err := s.priceService.SyncMinPrice(ctx, hotelID); err != nil {
		return nil, err
	}

	logger.Info("房型已创建，等待审核",
		logger.MerchantID(merchantID),
		logger.HotelID(hotelID),
		logger.RoomID(room.ID),
	)
	return room, nil
}

// UpdateRoom 更新房型资料
// 要求房型已下架；任何变更都会打回待审核并保持下架，
// 物理房间总数变更会级联调整未来库存
func (s *RoomService) UpdateRoom(ctx context.Context, merchantID, roomID int64, req *UpdateRoomRequest) (*models.Room, error) {
	room, err := s.getOwnedRoom(ctx, merchantID, roomID)
	if err != nil {
		return nil, err
	}
	if room.IsPublished {
		return nil, errors.ErrRoomPublished
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, errors.ErrRoomInvalidPrice
		}
		fields["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		fields["original_price"] = *req.OriginalPrice
	}
	if req.BedType != nil {
		fields["bed_type"] = *req.BedType
	}
	if req.Area != nil {
		fields["area"] = *req.Area
	}
	if req.HasBathtub != nil {
		fields["has_bathtub"] = *req.HasBathtub
	}
	if req.WindowStatus != nil {
		fields["window_status"] = *req.WindowStatus
	}
	if req.Breakfast != nil {
		fields["breakfast"] = *req.Breakfast
	}
	if req.MaxGuests != nil {
		fields["max_guests"] = *req.MaxGuests
	}

	resize := false
	if req.TotalCount != nil && *req.TotalCount != room.TotalCount {
		if *req.TotalCount <= 0 {
			return nil, errors.ErrRoomInvalidCount
		}
		fields["total_count"] = *req.TotalCount
		resize = true
	}
	if req.Images != nil {
		fields["images"] = *req.Images
	}
	if req.Facilities != nil {
		fields["facilities"] = *req.Facilities
	}

	if len(fields) == 0 {
		return room, nil
	}

	// 资料变更后重新进入审核流程并保持下架
	fields["status"] = models.RoomStatusPending
	fields["is_published"] = false
	fields["audit_remark"] = ""

	if err := s.roomRepo.UpdateFields(ctx, roomID, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if resize {
		if err := s.stockService.ResizeCapacity(ctx, roomID, utils.Today(), *req.TotalCount); err != nil {
			return nil, err
		}
	}

	if err := s.priceService.SyncMinPrice(ctx, room.HotelID); err != nil {
		return nil, err
	}

	updated, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return updated, nil
}

// DeleteRoom 删除房型及其全部库存
// 要求房型已下架，删除后重算酒店起价
func (s *RoomService) DeleteRoom(ctx context.Context, merchantID, roomID int64) error {
	room, err := s.getOwnedRoom(ctx, merchantID, roomID)
	if err != nil {
		return err
	}
	if room.IsPublished {
		return errors.ErrRoomPublished
	}

	if err := s.stockService.Destroy(ctx, roomID); err != nil {
		return err
	}
	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if err := s.priceService.SyncMinPrice(ctx, room.HotelID); err != nil {
		return err
	}

	logger.Info("房型已删除",
		logger.MerchantID(merchantID),
		logger.RoomID(roomID),
	)
	return nil
}

// ToggleRoom 上下架房型
// hide 随时可用；recover 要求房型已通过审核
func (s *RoomService) ToggleRoom(ctx context.Context, merchantID, roomID int64, action string) error {
	room, err := s.getOwnedRoom(ctx, merchantID, roomID)
	if err != nil {
		return err
	}

	switch action {
	case RoomActionHide:
		if err := s.roomRepo.SetPublished(ctx, roomID, false); err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
	case RoomActionRecover:
		if room.Status != models.RoomStatusApproved {
			return errors.ErrRoomNotApproved
		}
		if err := s.roomRepo.SetPublished(ctx, roomID, true); err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
	default:
		return errors.ErrRoomToggleAction
	}

	if err := s.priceService.SyncMinPrice(ctx, room.HotelID); err != nil {
		return err
	}

	logger.Info("房型上下架状态已变更",
		logger.MerchantID(merchantID),
		logger.RoomID(roomID),
		logger.Action(action),
	)
	return nil
}

// GetRoom 获取商户名下的房型详情
func (s *RoomService) GetRoom(ctx context.Context, merchantID, roomID int64) (*models.Room, error) {
	return s.getOwnedRoom(ctx, merchantID, roomID)
}

// ListRooms 获取酒店下的房型列表
func (s *RoomService) ListRooms(ctx context.Context, merchantID, hotelID int64) ([]*models.Room, error) {
	if _, err := s.getOwnedHotel(ctx, merchantID, hotelID); err != nil {
		return nil, err
	}
	rooms, err := s.roomRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return rooms, nil
}

// GetStock 获取房型从 fromDate 起的逐夜库存
func (s *RoomService) GetStock(ctx context.Context, merchantID, roomID int64, fromDate string) ([]*inventory.StockInfo, error) {
	if _, err := s.getOwnedRoom(ctx, merchantID, roomID); err != nil {
		return nil, err
	}
	if fromDate == "" {
		fromDate = utils.Today()
	}
	return s.stockService.GetStock(ctx, roomID, fromDate)
}

// SetDailyPrice 设置房型某一夜的当日价
func (s *RoomService) SetDailyPrice(ctx context.Context, merchantID, roomID int64, date string, price float64) error {
	if _, err := s.getOwnedRoom(ctx, merchantID, roomID); err != nil {
		return err
	}
	return s.stockService.SetDailyPrice(ctx, roomID, date, price)
}

// getOwnedHotel 获取酒店并校验归属
func (s *RoomService) getOwnedHotel(ctx context.Context, merchantID, hotelID int64) (*models.Hotel, error) {
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

// getOwnedRoom 获取房型并通过所属酒店校验归属
func (s *RoomService) getOwnedRoom(ctx context.Context, merchantID, roomID int64) (*models.Room, error) {
	room, err := s.roomRepo.GetByIDWithHotel(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if room.Hotel == nil || room.Hotel.MerchantID != merchantID {
		return nil, errors.ErrNotOwner
	}
	return room, nil
}
