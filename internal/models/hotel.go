package models

import (
	"time"
)

// Hotel 酒店模型
// MinPrice 为派生字段，唯一写入方是价格聚合器（SyncMinPrice），
// 0 表示当前没有可售房型，展示层不得把 0 当作真实售价。
type Hotel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID   int64      `gorm:"index;not null" json:"merchant_id"`
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Brand        string     `gorm:"type:varchar(50);not null;default:独立品牌" json:"brand"`
	HotelType    string     `gorm:"type:varchar(20);not null;default:酒店" json:"hotel_type"`
	RegionType   string     `gorm:"type:varchar(20);not null;default:国内" json:"region_type"`
	Country      string     `gorm:"type:varchar(50);not null;default:中国" json:"country"`
	City         string     `gorm:"type:varchar(50);not null;index:idx_hotels_city_zone" json:"city"`
	District     string     `gorm:"type:varchar(50)" json:"district"`
	BusinessZone string     `gorm:"type:varchar(50);index:idx_hotels_city_zone" json:"business_zone"`
	Address      string     `gorm:"type:varchar(255);not null" json:"address"`
	Longitude    *float64   `gorm:"type:decimal(10,7)" json:"longitude,omitempty"`
	Latitude     *float64   `gorm:"type:decimal(10,7)" json:"latitude,omitempty"`
	MinPrice     float64    `gorm:"type:decimal(10,2);not null;default:0" json:"min_price"`
	Discount     float64    `gorm:"type:decimal(4,2);not null;default:1" json:"discount"`
	StarRating   int        `gorm:"not null;default:0" json:"star_rating"`
	Tags         StringList `gorm:"type:text" json:"tags,omitempty"`
	Services     StringList `gorm:"type:text" json:"services,omitempty"`
	CoverImage   string     `gorm:"type:varchar(255);not null" json:"cover_image"`
	DetailImages StringList `gorm:"type:text" json:"detail_images,omitempty"`
	Score        float64    `gorm:"type:decimal(3,1);not null;default:0" json:"score"`
	ReviewCount  int        `gorm:"not null;default:0" json:"review_count"`
	ReviewTags   StringList `gorm:"type:text" json:"review_tags,omitempty"`
	Status       int8       `gorm:"type:smallint;not null;default:0;index" json:"status"`
	AuditRemark  string     `gorm:"type:varchar(255);not null;default:''" json:"audit_remark"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联（弱引用，酒店删除不级联房型生命周期）
	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}

// TableName 表名
func (Hotel) TableName() string {
	return "hotels"
}

// HotelStatus 酒店状态字典
const (
	HotelStatusPending  int8 = 0 // 待审核
	HotelStatusListed   int8 = 1 // 已上架
	HotelStatusDelisted int8 = 2 // 已下架
	HotelStatusRejected int8 = 3 // 被驳回
)

// IsListed 酒店是否处于可售状态
func (h *Hotel) IsListed() bool {
	return h.Status == HotelStatusListed
}

// HotelType 酒店类型
const (
	HotelTypeHotel  = "酒店"
	HotelTypeHomest = "民宿"
	HotelTypeHostel = "青年旅舍"
	HotelTypeInn    = "客栈"
)
