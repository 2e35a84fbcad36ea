// Package merchant 商户房型服务单元测试
package merchant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/errors"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/utils"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
	"github.com/dumeirei/hotel-marketplace-backend/internal/service/inventory"
)

const testHorizonNights = 60

func setupRoomService(t *testing.T) (*RoomService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.RoomStock{})
	require.NoError(t, err)

	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	stockRepo := repository.NewStockRepository(db)

	svc := NewRoomService(
		roomRepo,
		hotelRepo,
		inventory.NewStockService(stockRepo, roomRepo),
		inventory.NewPriceService(hotelRepo, roomRepo),
		testHorizonNights,
	)
	return svc, db
}

func createMerchantHotel(t *testing.T, db *gorm.DB, merchantID int64, status int8) *models.Hotel {
	hotel := &models.Hotel{
		MerchantID: merchantID,
		Name:       "云端假日酒店",
		City:       "深圳市",
		Address:    "南山区科技园1号",
		Status:     status,
	}
	require.NoError(t, db.Create(hotel).Error)
	return hotel
}

func TestRoomService_CreateRoom(t *testing.T) {
	svc, db := setupRoomService(t)
	ctx := context.Background()

	hotel := createMerchantHotel(t, db, 1, models.HotelStatusListed)

	t.Run("创建成功并预铺库存", func(t *testing.T) {
		room, err := svc.CreateRoom(ctx, 1, hotel.ID, &CreateRoomRequest{
			Title:      "高级大床房",
			Price:      388,
			TotalCount: 5,
			MaxGuests:  2,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusPending, room.Status)
		assert.True(t, room.IsPublished)

		var count int64
		db.Model(&models.RoomStock{}).Where("room_id = ?", room.ID).Count(&count)
		assert.Equal(t, int64(testHorizonNights), count)

		var stock models.RoomStock
		db.Where("room_id = ? AND date = ?", room.ID, utils.Today()).First(&stock)
		assert.Equal(t, 5, stock.TotalCount)
	})

	t.Run("待审核房型不影响酒店起价", func(t *testing.T) {
		var found models.Hotel
		db.First(&found, hotel.ID)
		assert.Equal(t, float64(0), found.MinPrice)
	})

	t.Run("未上架酒店不能创建房型", func(t *testing.T) {
		pending := createMerchantHotel(t, db, 1, models.HotelStatusPending)
		_, err := svc.CreateRoom(ctx, 1, pending.ID, &CreateRoomRequest{Title: "房型", Price: 300})
		assert.ErrorIs(t, err, errors.ErrHotelNotListed)
	})

	t.Run("价格非法", func(t *testing.T) {
		_, err := svc.CreateRoom(ctx, 1, hotel.ID, &CreateRoomRequest{Title: "免费房", Price: 0})
		assert.ErrorIs(t, err, errors.ErrRoomInvalidPrice)
	})

	t.Run("非归属商户", func(t *testing.T) {
		_, err := svc.CreateRoom(ctx, 2, hotel.ID, &CreateRoomRequest{Title: "房型", Price: 300})
		assert.ErrorIs(t, err, errors.ErrNotOwner)
	})
}

func TestRoomService_UpdateRoom(t *testing.T) {
	svc, db := setupRoomService(t)
	ctx := context.Background()

	hotel := createMerchantHotel(t, db, 1, models.HotelStatusListed)
	room, err := svc.CreateRoom(ctx, 1, hotel.ID, &CreateRoomRequest{
		Title: "高级大床房", Price: 388, TotalCount: 5,
	})
	require.NoError(t, err)

	t.Run("上架中的房型不能编辑", func(t *testing.T) {
		_, err := svc.UpdateRoom(ctx, 1, room.ID, &UpdateRoomRequest{
			Title: utils.StringPtr("改名"),
		})
		assert.ErrorIs(t, err, errors.ErrRoomPublished)
	})

	// 下架并模拟审核通过
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", room.ID).
		Updates(map[string]interface{}{"is_published": false, "status": models.RoomStatusApproved}).Error)

	t.Run("编辑后打回待审核并保持下架", func(t *testing.T) {
		updated, err := svc.UpdateRoom(ctx, 1, room.ID, &UpdateRoomRequest{
			Title: utils.StringPtr("豪华大床房"),
			Price: utils.Float64Ptr(488),
		})
		require.NoError(t, err)
		assert.Equal(t, "豪华大床房", updated.Title)
		assert.Equal(t, float64(488), updated.Price)
		assert.Equal(t, models.RoomStatusPending, updated.Status)
		assert.False(t, updated.IsPublished)
	})

	t.Run("总间数变更级联调整未来库存", func(t *testing.T) {
		updated, err := svc.UpdateRoom(ctx, 1, room.ID, &UpdateRoomRequest{
			TotalCount: utils.IntPtr(8),
		})
		require.NoError(t, err)
		assert.Equal(t, 8, updated.TotalCount)

		var stock models.RoomStock
		db.Where("room_id = ? AND date = ?", room.ID, utils.Today()).First(&stock)
		assert.Equal(t, 8, stock.TotalCount)
	})

	t.Run("非法总间数", func(t *testing.T) {
		_, err := svc.UpdateRoom(ctx, 1, room.ID, &UpdateRoomRequest{
			TotalCount: utils.IntPtr(0),
		})
		assert.ErrorIs(t, err, errors.ErrRoomInvalidCount)
	})
}

func TestRoomService_ToggleRoom(t *testing.T) {
	svc, db := setupRoomService(t)
	ctx := context.Background()

	hotel := createMerchantHotel(t, db, 1, models.HotelStatusListed)
	room, err := svc.CreateRoom(ctx, 1, hotel.ID, &CreateRoomRequest{
		Title: "高级大床房", Price: 388,
	})
	require.NoError(t, err)

	t.Run("隐藏随时可用", func(t *testing.T) {
		err := svc.ToggleRoom(ctx, 1, room.ID, RoomActionHide)
		require.NoError(t, err)

		var found models.Room
		db.First(&found, room.ID)
		assert.False(t, found.IsPublished)
	})

	t.Run("未审核通过不能恢复上架", func(t *testing.T) {
		err := svc.ToggleRoom(ctx, 1, room.ID, RoomActionRecover)
		assert.ErrorIs(t, err, errors.ErrRoomNotApproved)
	})

	t.Run("审核通过后恢复上架并同步起价", func(t *testing.T) {
		db.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", models.RoomStatusApproved)

		err := svc.ToggleRoom(ctx, 1, room.ID, RoomActionRecover)
		require.NoError(t, err)

		var found models.Room
		db.First(&found, room.ID)
		assert.True(t, found.IsPublished)

		var foundHotel models.Hotel
		db.First(&foundHotel, hotel.ID)
		assert.Equal(t, float64(388), foundHotel.MinPrice)
	})

	t.Run("隐藏后起价重算", func(t *testing.T) {
		err := svc.ToggleRoom(ctx, 1, room.ID, RoomActionHide)
		require.NoError(t, err)

		var foundHotel models.Hotel
		db.First(&foundHotel, hotel.ID)
		assert.Equal(t, float64(0), foundHotel.MinPrice)
	})

	t.Run("未知操作", func(t *testing.T) {
		err := svc.ToggleRoom(ctx, 1, room.ID, "publish")
		assert.ErrorIs(t, err, errors.ErrRoomToggleAction)
	})
}

func TestRoomService_DeleteRoom(t *testing.T) {
	svc, db := setupRoomService(t)
	ctx := context.Background()

	hotel := createMerchantHotel(t, db, 1, models.HotelStatusListed)
	room, err := svc.CreateRoom(ctx, 1, hotel.ID, &CreateRoomRequest{
		Title: "高级大床房", Price: 388,
	})
	require.NoError(t, err)

	t.Run("上架中的房型不能删除", func(t *testing.T) {
		err := svc.DeleteRoom(ctx, 1, room.ID)
		assert.ErrorIs(t, err, errors.ErrRoomPublished)
	})

	t.Run("下架后删除并清除库存", func(t *testing.T) {
		require.NoError(t, svc.ToggleRoom(ctx, 1, room.ID, RoomActionHide))

		err := svc.DeleteRoom(ctx, 1, room.ID)
		require.NoError(t, err)

		var roomCount, stockCount int64
		db.Model(&models.Room{}).Where("id = ?", room.ID).Count(&roomCount)
		db.Model(&models.RoomStock{}).Where("room_id = ?", room.ID).Count(&stockCount)
		assert.Equal(t, int64(0), roomCount)
		assert.Equal(t, int64(0), stockCount)
	})
}

func TestRoomService_GetStock(t *testing.T) {
	svc, db := setupRoomService(t)
	ctx := context.Background()

	hotel := createMerchantHotel(t, db, 1, models.HotelStatusListed)
	room, err := svc.CreateRoom(ctx, 1, hotel.ID, &CreateRoomRequest{
		Title: "高级大床房", Price: 388, TotalCount: 5,
	})
	require.NoError(t, err)

	stocks, err := svc.GetStock(ctx, 1, room.ID, "")
	require.NoError(t, err)
	assert.Len(t, stocks, testHorizonNights)
	assert.Equal(t, 5, stocks[0].AvailableCount)

	_, err = svc.GetStock(ctx, 2, room.ID, "")
	assert.ErrorIs(t, err, errors.ErrNotOwner)
}
