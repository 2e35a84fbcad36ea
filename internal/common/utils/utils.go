// Package utils 提供通用工具函数
package utils

import (
	"time"
)

// DateLayout 库存日期统一使用 YYYY-MM-DD 字符串
const DateLayout = "2006-01-02"

// Today 返回今天的日期字符串
func Today() string {
	return time.Now().Format(DateLayout)
}

// AddDays 在日期字符串上加减天数
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(DateLayout), nil
}

// NightsBetween 计算 [checkIn, checkOut) 之间的夜数
// checkOut 当天不计入，日期非法或范围倒置时返回 0
func NightsBetween(checkIn, checkOut string) int {
	start, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return 0
	}
	nights := int(end.Sub(start).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

// DateRange 展开 [checkIn, checkOut) 为逐夜日期字符串列表
// 范围非法时返回空切片
func DateRange(checkIn, checkOut string) []string {
	nights := NightsBetween(checkIn, checkOut)
	if nights == 0 {
		return nil
	}
	start, _ := time.Parse(DateLayout, checkIn)
	dates := make([]string, 0, nights)
	for i := 0; i < nights; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

// CeilDiv 整数除法向上取整
// 用于按人数和房间数推算每间房需容纳的最少人数
func CeilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}

// IntPtr 返回整数指针
func IntPtr(i int) *int {
	return &i
}

// Int64Ptr 返回 int64 指针
func Int64Ptr(i int64) *int64 {
	return &i
}

// Float64Ptr 返回 float64 指针
func Float64Ptr(f float64) *float64 {
	return &f
}

// SafeString 安全获取字符串指针的值
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeFloat64 安全获取 float64 指针的值
func SafeFloat64(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// Contains 判断切片是否包含元素
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// Unique 切片去重
func Unique[T comparable](slice []T) []T {
	seen := make(map[T]struct{})
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}

// Max 返回两个数中的较大值
func Max[T int | int64 | float64](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min 返回两个数中的较小值
func Min[T int | int64 | float64](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Pagination 分页参数
type Pagination struct {
	Page     int   `json:"page" form:"page"`
	PageSize int   `json:"page_size" form:"page_size"`
	Total    int64 `json:"total"`
}

// GetOffset 获取偏移量
func (p *Pagination) GetOffset() int {
	return (p.Page - 1) * p.PageSize
}

// GetLimit 获取限制数
func (p *Pagination) GetLimit() int {
	return p.PageSize
}

// Normalize 规范化分页参数
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// GetTotalPages 获取总页数
func (p *Pagination) GetTotalPages() int {
	if p.Total == 0 {
		return 0
	}
	pages := int(p.Total) / p.PageSize
	if int(p.Total)%p.PageSize > 0 {
		pages++
	}
	return pages
}
