package models

import (
	"time"
)

// StockDateFormat 库存日历日期格式
// 全链路使用 YYYY-MM-DD 字符串，不携带时分秒和时区，规避日期运算的时区问题。
const StockDateFormat = "2006-01-02"

// RoomStock 每日库存记录
// (room_id, date) 联合唯一：同一房型同一天绝不允许出现两条记录，
// 并发补库存时冲突的插入在数据层被吸收为无操作。
type RoomStock struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID     int64     `gorm:"index;not null" json:"hotel_id"`
	RoomID      int64     `gorm:"not null;uniqueIndex:idx_stock_room_date" json:"room_id"`
	Date        string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_stock_room_date" json:"date"`
	TotalCount  int       `gorm:"not null" json:"total_count"`
	BookedCount int       `gorm:"not null;default:0" json:"booked_count"`
	DailyPrice  *float64  `gorm:"type:decimal(10,2)" json:"daily_price,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (RoomStock) TableName() string {
	return "room_stocks"
}

// AvailableCount 当天剩余可订间数
func (s *RoomStock) AvailableCount() int {
	return s.TotalCount - s.BookedCount
}
