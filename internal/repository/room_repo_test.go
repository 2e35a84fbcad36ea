// Package repository 房型仓储单元测试
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

func setupRoomTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.RoomStock{})
	require.NoError(t, err)

	return db
}

func newTestRoom(hotelID int64, title string, price float64, status int8, published bool) *models.Room {
	return &models.Room{
		HotelID:     hotelID,
		Title:       title,
		Price:       price,
		MaxGuests:   2,
		TotalCount:  5,
		Status:      status,
		IsPublished: published,
	}
}

func TestRoomRepository_Create(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	room := newTestRoom(1, "高级大床房", 388, models.RoomStatusPending, true)
	err := repo.Create(ctx, room)
	require.NoError(t, err)
	assert.NotZero(t, room.ID)
}

func TestRoomRepository_GetByIDWithHotel(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{MerchantID: 1, Name: "云端假日酒店", City: "深圳市", Status: models.HotelStatusListed}
	db.Create(hotel)
	room := newTestRoom(hotel.ID, "高级大床房", 388, models.RoomStatusApproved, true)
	db.Create(room)

	found, err := repo.GetByIDWithHotel(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Hotel)
	assert.Equal(t, "云端假日酒店", found.Hotel.Name)
}

func TestRoomRepository_UpdateStatus(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	room := newTestRoom(1, "高级大床房", 388, models.RoomStatusPending, true)
	db.Create(room)

	err := repo.UpdateStatus(ctx, room.ID, models.RoomStatusRejected, "图片模糊")
	require.NoError(t, err)

	found, _ := repo.GetByID(ctx, room.ID)
	assert.Equal(t, models.RoomStatusRejected, found.Status)
	assert.Equal(t, "图片模糊", found.AuditRemark)
}

func TestRoomRepository_SetPublished(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	room := newTestRoom(1, "高级大床房", 388, models.RoomStatusApproved, true)
	db.Create(room)

	err := repo.SetPublished(ctx, room.ID, false)
	require.NoError(t, err)

	found, _ := repo.GetByID(ctx, room.ID)
	assert.False(t, found.IsPublished)
}

func TestRoomRepository_ListSellableByHotel(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	db.Create(newTestRoom(1, "可售A", 500, models.RoomStatusApproved, true))
	db.Create(newTestRoom(1, "可售B", 300, models.RoomStatusApproved, true))
	db.Create(newTestRoom(1, "已隐藏", 200, models.RoomStatusApproved, false))
	db.Create(newTestRoom(1, "待审核", 100, models.RoomStatusPending, true))

	rooms, err := repo.ListSellableByHotel(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	// 价格升序
	assert.Equal(t, "可售B", rooms[0].Title)
	assert.Equal(t, "可售A", rooms[1].Title)
}

func TestRoomRepository_ListSellableByHotelIDs(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	roomA := newTestRoom(1, "双人房", 300, models.RoomStatusApproved, true)
	roomA.MaxGuests = 2
	roomA.Area = 22
	roomA.Breakfast = models.BreakfastNone
	db.Create(roomA)

	roomB := newTestRoom(1, "家庭房", 600, models.RoomStatusApproved, true)
	roomB.MaxGuests = 4
	roomB.Area = 45
	roomB.Breakfast = models.BreakfastDouble
	db.Create(roomB)

	roomC := newTestRoom(2, "大床房", 400, models.RoomStatusApproved, true)
	roomC.Area = 30
	roomC.Breakfast = models.BreakfastDouble
	db.Create(roomC)

	t.Run("无附加条件", func(t *testing.T) {
		rooms, err := repo.ListSellableByHotelIDs(ctx, []int64{1, 2}, nil)
		require.NoError(t, err)
		assert.Len(t, rooms, 3)
	})

	t.Run("按可容纳人数过滤", func(t *testing.T) {
		rooms, err := repo.ListSellableByHotelIDs(ctx, []int64{1, 2}, &RoomFilter{MinGuests: 3})
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "家庭房", rooms[0].Title)
	})

	t.Run("按价格区间过滤", func(t *testing.T) {
		minPrice, maxPrice := 350.0, 500.0
		rooms, err := repo.ListSellableByHotelIDs(ctx, []int64{1, 2}, &RoomFilter{MinPrice: &minPrice, MaxPrice: &maxPrice})
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, "大床房", rooms[0].Title)
	})

	t.Run("按面积和早餐过滤", func(t *testing.T) {
		minArea := 25.0
		rooms, err := repo.ListSellableByHotelIDs(ctx, []int64{1, 2}, &RoomFilter{MinArea: &minArea, Breakfast: models.BreakfastDouble})
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	})

	t.Run("空酒店列表返回空", func(t *testing.T) {
		rooms, err := repo.ListSellableByHotelIDs(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, rooms)
	})
}

func TestRoomRepository_GetMinSellablePrice(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	t.Run("无可售房型", func(t *testing.T) {
		price, found, err := repo.GetMinSellablePrice(ctx, 1)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, float64(0), price)
	})

	t.Run("取可售房型最低价", func(t *testing.T) {
		db.Create(newTestRoom(1, "贵的", 800, models.RoomStatusApproved, true))
		db.Create(newTestRoom(1, "便宜的", 500, models.RoomStatusApproved, true))
		db.Create(newTestRoom(1, "更便宜但隐藏", 300, models.RoomStatusApproved, false))

		price, found, err := repo.GetMinSellablePrice(ctx, 1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, float64(500), price)
	})
}

func TestRoomRepository_ListByStatus(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{MerchantID: 1, Name: "云端假日酒店", City: "深圳市"}
	db.Create(hotel)
	db.Create(newTestRoom(hotel.ID, "待审房型", 388, models.RoomStatusPending, true))
	db.Create(newTestRoom(hotel.ID, "已通过房型", 488, models.RoomStatusApproved, true))

	rooms, total, err := repo.ListByStatus(ctx, models.RoomStatusPending, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rooms, 1)
	assert.Equal(t, "待审房型", rooms[0].Title)
	require.NotNil(t, rooms[0].Hotel)
	assert.Equal(t, "云端假日酒店", rooms[0].Hotel.Name)
}

func TestRoomRepository_Delete(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	room := newTestRoom(1, "待删除", 388, models.RoomStatusApproved, false)
	db.Create(room)

	err := repo.Delete(ctx, room.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, room.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
