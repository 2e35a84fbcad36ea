// Package admin 提供平台侧的审核服务
package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/logger"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
	"github.com/dumeirei/hotel-marketplace-backend/internal/service/inventory"
)

// 审核操作
const (
	AuditActionApprove = "approve"
	AuditActionReject  = "reject"
)

// AuditService 平台审核服务
type AuditService struct {
	hotelRepo    *repository.HotelRepository
	roomRepo     *repository.RoomRepository
	priceService *inventory.PriceService
}

// NewAuditService 创建审核服务
func NewAuditService(
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
	priceService *inventory.PriceService,
) *AuditService {
	return &AuditService{
		hotelRepo:    hotelRepo,
		roomRepo:     roomRepo,
		priceService: priceService,
	}
}

// ListPendingHotels 获取待审核的酒店列表
func (s *AuditService) ListPendingHotels(ctx context.Context, offset, limit int) ([]*models.Hotel, int64, error) {
	hotels, total, err := s.hotelRepo.ListByStatus(ctx, models.HotelStatusPending, offset, limit)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return hotels, total, nil
}

// ListPendingRooms 获取待审核的房型列表
func (s *AuditService) ListPendingRooms(ctx context.Context, offset, limit int) ([]*models.Room, int64, error) {
	rooms, total, err := s.roomRepo.ListByStatus(ctx, models.RoomStatusPending, offset, limit)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return rooms, total, nil
}

// AuditHotel 审核酒店
// approve 上架酒店，reject 驳回并记录原因
func (s *AuditService) AuditHotel(ctx context.Context, adminID, hotelID int64, action, remark string) error {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	var status int8
	switch action {
	case AuditActionApprove:
		status = models.HotelStatusListed
		// 通过审核时清空历史驳回原因
		remark = ""
	case AuditActionReject:
		status = models.HotelStatusRejected
	default:
		return errors.ErrHotelAuditAction
	}

	if err := s.hotelRepo.UpdateStatus(ctx, hotelID, status, remark); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordAudit("hotel", action)
	logger.Info("酒店审核完成",
		logger.Int64("admin_id", adminID),
		logger.HotelID(hotel.ID),
		logger.Action(action),
	)
	return nil
}

// DelistHotel 平台下架酒店
// 已上架的酒店被强制下线，不再参与检索
func (s *AuditService) DelistHotel(ctx context.Context, adminID, hotelID int64, remark string) error {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if !hotel.IsListed() {
		return errors.ErrHotelOffline
	}

	if err := s.hotelRepo.UpdateStatus(ctx, hotelID, models.HotelStatusDelisted, remark); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	logger.Warn("酒店已被平台下架",
		logger.Int64("admin_id", adminID),
		logger.HotelID(hotelID),
		logger.String("remark", remark),
	)
	return nil
}

// AuditRoom 审核房型
// approve 通过审核；reject 驳回、记录原因并强制下架。
// 两种结果都会改变可售集合，因此都要重算酒店起价
func (s *AuditService) AuditRoom(ctx context.Context, adminID, roomID int64, action, remark string) error {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrRoomNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	switch action {
	case AuditActionApprove:
		// 通过审核时清空历史驳回原因
		if err := s.roomRepo.UpdateStatus(ctx, roomID, models.RoomStatusApproved, ""); err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
	case AuditActionReject:
		if err := s.roomRepo.UpdateFields(ctx, roomID, map[string]interface{}{
			"status":       models.RoomStatusRejected,
			"audit_remark": remark,
			"is_published": false,
		}); err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
	default:
		return errors.ErrRoomAuditAction
	}

	if err := s.priceService.SyncMinPrice(ctx, room.HotelID); err != nil {
		return err
	}

	metrics.GetMetrics().RecordAudit("room", action)
	logger.Info("房型审核完成",
		logger.Int64("admin_id", adminID),
		logger.RoomID(roomID),
		logger.Action(action),
	)
	return nil
}
