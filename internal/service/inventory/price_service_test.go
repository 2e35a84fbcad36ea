// Package inventory 起价服务单元测试
package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
)

func setupPriceService(t *testing.T) (*PriceService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.RoomStock{})
	require.NoError(t, err)

	svc := NewPriceService(
		repository.NewHotelRepository(db),
		repository.NewRoomRepository(db),
	)
	return svc, db
}

func createPriceTestRoom(t *testing.T, db *gorm.DB, hotelID int64, price float64, status int8, published bool) *models.Room {
	room := &models.Room{
		HotelID:     hotelID,
		Title:       "测试房型",
		Price:       price,
		TotalCount:  3,
		Status:      status,
		IsPublished: published,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func TestPriceService_SyncMinPrice(t *testing.T) {
	svc, db := setupPriceService(t)
	ctx := context.Background()

	hotel := &models.Hotel{
		MerchantID: 1,
		Name:       "云端假日酒店",
		City:       "深圳市",
		Status:     models.HotelStatusListed,
		MinPrice:   999,
	}
	require.NoError(t, db.Create(hotel).Error)

	t.Run("无可售房型时起价归零", func(t *testing.T) {
		err := svc.SyncMinPrice(ctx, hotel.ID)
		require.NoError(t, err)

		var found models.Hotel
		db.First(&found, hotel.ID)
		assert.Equal(t, float64(0), found.MinPrice)
	})

	t.Run("取可售房型最低价", func(t *testing.T) {
		createPriceTestRoom(t, db, hotel.ID, 800, models.RoomStatusApproved, true)
		createPriceTestRoom(t, db, hotel.ID, 500, models.RoomStatusApproved, true)
		// 隐藏和待审核的房型不参与
		createPriceTestRoom(t, db, hotel.ID, 200, models.RoomStatusApproved, false)
		createPriceTestRoom(t, db, hotel.ID, 100, models.RoomStatusPending, true)

		err := svc.SyncMinPrice(ctx, hotel.ID)
		require.NoError(t, err)

		var found models.Hotel
		db.First(&found, hotel.ID)
		assert.Equal(t, float64(500), found.MinPrice)
	})

	t.Run("最低价房型被驳回后起价上移", func(t *testing.T) {
		db.Model(&models.Room{}).
			Where("hotel_id = ? AND price = ?", hotel.ID, 500).
			Updates(map[string]interface{}{
				"status":       models.RoomStatusRejected,
				"is_published": false,
			})

		err := svc.SyncMinPrice(ctx, hotel.ID)
		require.NoError(t, err)

		var found models.Hotel
		db.First(&found, hotel.ID)
		assert.Equal(t, float64(800), found.MinPrice)
	})

	t.Run("酒店不存在", func(t *testing.T) {
		err := svc.SyncMinPrice(ctx, 99999)
		assert.ErrorIs(t, err, errors.ErrHotelNotFound)
	})
}
