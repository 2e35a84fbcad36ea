package models

import (
	"time"
)

// Room 房型模型
// 一个房型属于一家酒店，TotalCount 是该房型的物理房间总数，
// 每日库存在 room_stocks 表按天展开。
type Room struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID       int64      `gorm:"index;not null" json:"hotel_id"`
	Title         string     `gorm:"type:varchar(100);not null" json:"title"`
	Price         float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice *float64   `gorm:"type:decimal(10,2)" json:"original_price,omitempty"`
	BedType       string     `gorm:"type:varchar(50);not null" json:"bed_type"`
	Area          float64    `gorm:"type:decimal(6,2);not null" json:"area"`
	HasBathtub    bool       `gorm:"not null;default:false" json:"has_bathtub"`
	WindowStatus  string     `gorm:"type:varchar(20);not null;default:有窗" json:"window_status"`
	Breakfast     string     `gorm:"type:varchar(10);not null;default:双早" json:"breakfast"`
	MaxGuests     int        `gorm:"not null;default:2" json:"max_guests"`
	Images        StringList `gorm:"type:text" json:"images,omitempty"`
	Facilities    StringList `gorm:"type:text" json:"facilities,omitempty"`
	TotalCount    int        `gorm:"not null;default:1" json:"total_count"`
	Status        int8       `gorm:"type:smallint;not null;default:0;index" json:"status"`
	AuditRemark   string     `gorm:"type:varchar(255);not null;default:''" json:"audit_remark"`
	IsPublished   bool       `gorm:"not null;default:true" json:"is_published"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// RoomStatus 房型审核状态字典
const (
	RoomStatusPending  int8 = 0 // 待审核
	RoomStatusApproved int8 = 1 // 审核通过
	RoomStatusHidden   int8 = 2 // 商户下架
	RoomStatusRejected int8 = 3 // 被驳回
)

// IsSellable 房型是否可售：平台审核通过且商户未隐藏
func (r *Room) IsSellable() bool {
	return r.Status == RoomStatusApproved && r.IsPublished
}

// Breakfast 早餐类型
const (
	BreakfastNone   = "无早"
	BreakfastSingle = "单早"
	BreakfastDouble = "双早"
	BreakfastMulti  = "多早"
)

// WindowStatus 窗户情况
const (
	WindowYes     = "有窗"
	WindowNo      = "无窗"
	WindowPartial = "部分有窗"
)
