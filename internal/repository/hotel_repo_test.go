// Package repository 酒店仓储单元测试
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

func setupHotelTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.RoomStock{})
	require.NoError(t, err)

	return db
}

func newTestHotel(merchantID int64, name, city string) *models.Hotel {
	return &models.Hotel{
		MerchantID:   merchantID,
		Name:         name,
		City:         city,
		BusinessZone: "科技园",
		Address:      "测试地址1号",
		HotelType:    models.HotelTypeHotel,
		Status:       models.HotelStatusPending,
	}
}

func TestHotelRepository_Create(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := newTestHotel(1, "云端假日酒店", "深圳市")
	err := repo.Create(ctx, hotel)
	require.NoError(t, err)
	assert.NotZero(t, hotel.ID)
	assert.Equal(t, models.HotelStatusPending, hotel.Status)
}

func TestHotelRepository_GetByID(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := newTestHotel(1, "云端假日酒店", "深圳市")
	db.Create(hotel)

	found, err := repo.GetByID(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Equal(t, hotel.ID, found.ID)
	assert.Equal(t, "云端假日酒店", found.Name)

	_, err = repo.GetByID(ctx, 99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHotelRepository_GetByIDWithRooms(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := newTestHotel(1, "云端假日酒店", "深圳市")
	db.Create(hotel)
	db.Create(&models.Room{HotelID: hotel.ID, Title: "高级大床房", Price: 388, TotalCount: 5})
	db.Create(&models.Room{HotelID: hotel.ID, Title: "豪华双床房", Price: 488, TotalCount: 3})

	found, err := repo.GetByIDWithRooms(ctx, hotel.ID)
	require.NoError(t, err)
	assert.Len(t, found.Rooms, 2)
}

func TestHotelRepository_UpdateStatus(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := newTestHotel(1, "云端假日酒店", "深圳市")
	db.Create(hotel)

	err := repo.UpdateStatus(ctx, hotel.ID, models.HotelStatusRejected, "资质材料不全")
	require.NoError(t, err)

	found, _ := repo.GetByID(ctx, hotel.ID)
	assert.Equal(t, models.HotelStatusRejected, found.Status)
	assert.Equal(t, "资质材料不全", found.AuditRemark)
}

func TestHotelRepository_UpdateMinPrice(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	hotel := newTestHotel(1, "云端假日酒店", "深圳市")
	db.Create(hotel)

	err := repo.UpdateMinPrice(ctx, hotel.ID, 388)
	require.NoError(t, err)

	found, _ := repo.GetByID(ctx, hotel.ID)
	assert.Equal(t, float64(388), found.MinPrice)

	// 无可售房型时起价归零
	err = repo.UpdateMinPrice(ctx, hotel.ID, 0)
	require.NoError(t, err)
	found, _ = repo.GetByID(ctx, hotel.ID)
	assert.Equal(t, float64(0), found.MinPrice)
}

func TestHotelRepository_ListByMerchant(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	db.Create(newTestHotel(1, "酒店A", "深圳市"))
	db.Create(newTestHotel(1, "酒店B", "广州市"))
	db.Create(newTestHotel(2, "酒店C", "深圳市"))

	hotels, total, err := repo.ListByMerchant(ctx, 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, hotels, 2)
}

func TestHotelRepository_ListByStatus(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	h1 := newTestHotel(1, "待审酒店", "深圳市")
	db.Create(h1)
	h2 := newTestHotel(1, "已上架酒店", "深圳市")
	h2.Status = models.HotelStatusListed
	db.Create(h2)

	pending, total, err := repo.ListByStatus(ctx, models.HotelStatusPending, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "待审酒店", pending[0].Name)
}

func TestHotelRepository_FindListed(t *testing.T) {
	db := setupHotelTestDB(t)
	repo := NewHotelRepository(db)
	ctx := context.Background()

	h1 := newTestHotel(1, "南山海景酒店", "深圳市")
	h1.Status = models.HotelStatusListed
	h1.MinPrice = 500
	h1.Score = 4.8
	db.Create(h1)

	h2 := newTestHotel(1, "福田商务酒店", "深圳市")
	h2.Status = models.HotelStatusListed
	h2.BusinessZone = "会展中心"
	h2.MinPrice = 300
	h2.Score = 4.2
	db.Create(h2)

	h3 := newTestHotel(2, "广州花园酒店", "广州市")
	h3.Status = models.HotelStatusListed
	h3.MinPrice = 400
	db.Create(h3)

	// 未上架的酒店不应出现
	h4 := newTestHotel(2, "待审酒店", "深圳市")
	db.Create(h4)

	t.Run("按城市过滤", func(t *testing.T) {
		hotels, err := repo.FindListed(ctx, &SearchFilter{City: "深圳市"}, "created_at DESC", 100)
		require.NoError(t, err)
		assert.Len(t, hotels, 2)
	})

	t.Run("按价格升序排序", func(t *testing.T) {
		hotels, err := repo.FindListed(ctx, &SearchFilter{City: "深圳市"}, "min_price ASC", 100)
		require.NoError(t, err)
		require.Len(t, hotels, 2)
		assert.Equal(t, "福田商务酒店", hotels[0].Name)
	})

	t.Run("商圈子串匹配", func(t *testing.T) {
		hotels, err := repo.FindListed(ctx, &SearchFilter{BusinessZone: "会展"}, "created_at DESC", 100)
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "福田商务酒店", hotels[0].Name)
	})

	t.Run("按最低评分过滤", func(t *testing.T) {
		hotels, err := repo.FindListed(ctx, &SearchFilter{MinScore: 4.5}, "created_at DESC", 100)
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "南山海景酒店", hotels[0].Name)
	})

	t.Run("关键字匹配名称和商圈", func(t *testing.T) {
		hotels, err := repo.FindListed(ctx, &SearchFilter{Keyword: "会展"}, "created_at DESC", 100)
		require.NoError(t, err)
		require.Len(t, hotels, 1)
		assert.Equal(t, "福田商务酒店", hotels[0].Name)
	})

	t.Run("扫描上限生效", func(t *testing.T) {
		hotels, err := repo.FindListed(ctx, nil, "created_at DESC", 2)
		require.NoError(t, err)
		assert.Len(t, hotels, 2)
	})
}
