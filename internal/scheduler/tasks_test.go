// Package scheduler 定时任务单元测试
package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/utils"
	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
	"github.com/dumeirei/hotel-marketplace-backend/internal/service/inventory"
)

const testHorizonNights = 60

func setupTaskHandler(t *testing.T, rdb *redislib.Client) (*TaskHandler, *inventory.StockService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.RoomStock{})
	require.NoError(t, err)

	roomRepo := repository.NewRoomRepository(db)
	stockService := inventory.NewStockService(repository.NewStockRepository(db), roomRepo)

	return NewTaskHandler(roomRepo, stockService, rdb, testHorizonNights), stockService, db
}

func createRoomWithStock(t *testing.T, db *gorm.DB, svc *inventory.StockService, totalCount int) *models.Room {
	hotel := &models.Hotel{MerchantID: 1, Name: "酒店", City: "深圳市", Address: "地址", Status: models.HotelStatusListed}
	require.NoError(t, db.Create(hotel).Error)

	room := &models.Room{
		HotelID:     hotel.ID,
		Title:       "大床房",
		Price:       388,
		TotalCount:  totalCount,
		MaxGuests:   2,
		Status:      models.RoomStatusApproved,
		IsPublished: true,
	}
	require.NoError(t, db.Create(room).Error)
	require.NoError(t, svc.ProvisionRange(context.Background(), room, utils.Today(), testHorizonNights, "room_create"))
	return room
}

func TestTaskHandler_ExtendStockHorizon(t *testing.T) {
	handler, svc, db := setupTaskHandler(t, nil)
	ctx := context.Background()

	room := createRoomWithStock(t, db, svc, 5)

	targetDate, err := utils.AddDays(utils.Today(), testHorizonNights-1)
	require.NoError(t, err)

	t.Run("为所有房型补齐窗口末夜", func(t *testing.T) {
		require.NoError(t, handler.ExtendStockHorizon(ctx))

		var stock models.RoomStock
		require.NoError(t, db.Where("room_id = ? AND date = ?", room.ID, targetDate).First(&stock).Error)
		assert.Equal(t, 5, stock.TotalCount)
		assert.Equal(t, 0, stock.BookedCount)
	})

	t.Run("重复执行不重置已有库存", func(t *testing.T) {
		require.NoError(t, db.Model(&models.RoomStock{}).
			Where("room_id = ? AND date = ?", room.ID, targetDate).
			Update("booked_count", 2).Error)

		require.NoError(t, handler.ExtendStockHorizon(ctx))

		var stock models.RoomStock
		require.NoError(t, db.Where("room_id = ? AND date = ?", room.ID, targetDate).First(&stock).Error)
		assert.Equal(t, 2, stock.BookedCount)
	})
}

func TestTaskHandler_ExtendStockHorizon_Lock(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})

	handler, svc, db := setupTaskHandler(t, rdb)
	ctx := context.Background()

	createRoomWithStock(t, db, svc, 5)

	targetDate, err := utils.AddDays(utils.Today(), testHorizonNights-1)
	require.NoError(t, err)

	t.Run("首次执行抢到锁并铺设", func(t *testing.T) {
		require.NoError(t, handler.ExtendStockHorizon(ctx))
		assert.True(t, mr.Exists(horizonLockKeyPrefix+targetDate))
	})

	t.Run("锁被占用时后续房型不再铺设", func(t *testing.T) {
		late := createRoomWithStock(t, db, svc, 3)
		// 新房型自带完整窗口，先删掉末夜模拟缺口
		require.NoError(t, db.Where("room_id = ? AND date = ?", late.ID, targetDate).
			Delete(&models.RoomStock{}).Error)

		require.NoError(t, handler.ExtendStockHorizon(ctx))

		var count int64
		db.Model(&models.RoomStock{}).Where("room_id = ? AND date = ?", late.ID, targetDate).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("锁过期后重新铺设", func(t *testing.T) {
		mr.FastForward(24 * time.Hour)

		require.NoError(t, handler.ExtendStockHorizon(ctx))

		var count int64
		db.Model(&models.RoomStock{}).Where("date = ?", targetDate).Count(&count)
		assert.Equal(t, int64(2), count)
	})
}
