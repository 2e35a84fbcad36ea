// Package repository 库存仓储单元测试
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-marketplace-backend/internal/models"
)

func setupStockTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.RoomStock{})
	require.NoError(t, err)

	return db
}

func newTestStock(roomID int64, date string, total, booked int) *models.RoomStock {
	return &models.RoomStock{
		HotelID:     1,
		RoomID:      roomID,
		Date:        date,
		TotalCount:  total,
		BookedCount: booked,
	}
}

func TestStockRepository_BatchCreate(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	stocks := []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 0),
		newTestStock(1, "2026-03-02", 5, 0),
		newTestStock(1, "2026-03-03", 5, 0),
	}
	err := repo.BatchCreate(ctx, stocks)
	require.NoError(t, err)

	count, err := repo.CountByRoomFrom(ctx, 1, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestStockRepository_BatchCreate_Idempotent(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	first := []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 0),
		newTestStock(1, "2026-03-02", 5, 0),
	}
	require.NoError(t, repo.BatchCreate(ctx, first))

	// 已占用一间后重复铺设，已存在的夜不被覆盖
	_, err := repo.Reserve(ctx, 1, []string{"2026-03-01"}, 1)
	require.NoError(t, err)

	again := []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 0),
		newTestStock(1, "2026-03-02", 5, 0),
		newTestStock(1, "2026-03-03", 5, 0),
	}
	require.NoError(t, repo.BatchCreate(ctx, again))

	count, _ := repo.CountByRoomFrom(ctx, 1, "2026-03-01")
	assert.Equal(t, int64(3), count)

	stock, err := repo.GetByRoomAndDate(ctx, 1, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, stock.BookedCount, "重复铺设不应重置已占用量")
}

func TestStockRepository_ListByRoomDates(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 0),
		newTestStock(1, "2026-03-03", 5, 0),
	}))

	// 缺 03-02 那一夜
	stocks, err := repo.ListByRoomDates(ctx, 1, []string{"2026-03-01", "2026-03-02", "2026-03-03"})
	require.NoError(t, err)
	assert.Len(t, stocks, 2)

	stocks, err = repo.ListByRoomDates(ctx, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, stocks)
}

func TestStockRepository_ListByRoomsDates(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 0),
		newTestStock(2, "2026-03-01", 3, 0),
		newTestStock(2, "2026-03-02", 3, 0),
	}))

	stocks, err := repo.ListByRoomsDates(ctx, []int64{1, 2}, []string{"2026-03-01", "2026-03-02"})
	require.NoError(t, err)
	assert.Len(t, stocks, 3)
}

func TestStockRepository_ResizeFrom(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 2),
		newTestStock(1, "2026-03-02", 5, 0),
		newTestStock(1, "2026-03-03", 5, 0),
	}))

	// 从 03-02 起调整为 8 间，03-01 保持原值
	err := repo.ResizeFrom(ctx, 1, "2026-03-02", 8)
	require.NoError(t, err)

	s1, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-01")
	assert.Equal(t, 5, s1.TotalCount)

	s2, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-02")
	assert.Equal(t, 8, s2.TotalCount)

	s3, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-03")
	assert.Equal(t, 8, s3.TotalCount)
}

func TestStockRepository_Reserve(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 0),
		newTestStock(1, "2026-03-02", 5, 4),
	}))

	t.Run("库存充足时占用成功", func(t *testing.T) {
		ok, err := repo.Reserve(ctx, 1, []string{"2026-03-01"}, 2)
		require.NoError(t, err)
		assert.True(t, ok)

		stock, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-01")
		assert.Equal(t, 2, stock.BookedCount)
	})

	t.Run("任一夜不足则整段回滚", func(t *testing.T) {
		// 03-02 只剩 1 间，要 2 间失败，03-01 不应被改动
		ok, err := repo.Reserve(ctx, 1, []string{"2026-03-01", "2026-03-02"}, 2)
		require.NoError(t, err)
		assert.False(t, ok)

		s1, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-01")
		assert.Equal(t, 2, s1.BookedCount)
		s2, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-02")
		assert.Equal(t, 4, s2.BookedCount)
	})

	t.Run("缺失的夜视为不足", func(t *testing.T) {
		ok, err := repo.Reserve(ctx, 1, []string{"2026-03-01", "2026-03-09"}, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("非法参数", func(t *testing.T) {
		ok, err := repo.Reserve(ctx, 1, nil, 1)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.Reserve(ctx, 1, []string{"2026-03-01"}, 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStockRepository_Release(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 3),
		newTestStock(1, "2026-03-02", 5, 1),
	}))

	t.Run("释放成功", func(t *testing.T) {
		ok, err := repo.Release(ctx, 1, []string{"2026-03-01", "2026-03-02"}, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		s1, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-01")
		assert.Equal(t, 2, s1.BookedCount)
		s2, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-02")
		assert.Equal(t, 0, s2.BookedCount)
	})

	t.Run("占用量不足则整段回滚", func(t *testing.T) {
		ok, err := repo.Release(ctx, 1, []string{"2026-03-01", "2026-03-02"}, 1)
		require.NoError(t, err)
		assert.False(t, ok, "03-02 已无占用，释放应失败")

		s1, _ := repo.GetByRoomAndDate(ctx, 1, "2026-03-01")
		assert.Equal(t, 2, s1.BookedCount, "整段回滚后 03-01 不应被改动")
	})
}

func TestStockRepository_DeleteByRoom(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 0),
		newTestStock(1, "2026-03-02", 5, 0),
		newTestStock(2, "2026-03-01", 3, 0),
	}))

	err := repo.DeleteByRoom(ctx, 1)
	require.NoError(t, err)

	count, _ := repo.CountByRoomFrom(ctx, 1, "2026-03-01")
	assert.Equal(t, int64(0), count)

	count, _ = repo.CountByRoomFrom(ctx, 2, "2026-03-01")
	assert.Equal(t, int64(1), count)
}

func TestStockRepository_ExistsByRoomAndDate(t *testing.T) {
	db := setupStockTestDB(t)
	repo := NewStockRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.BatchCreate(ctx, []*models.RoomStock{
		newTestStock(1, "2026-03-01", 5, 0),
	}))

	exists, err := repo.ExistsByRoomAndDate(ctx, 1, "2026-03-01")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByRoomAndDate(ctx, 1, "2026-03-02")
	require.NoError(t, err)
	assert.False(t, exists)
}
