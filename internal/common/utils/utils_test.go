// Package utils 通用工具函数单元测试
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==================== 日期工具测试 ====================

func TestAddDays(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		days    int
		want    string
		wantErr bool
	}{
		{"加一天", "2026-03-01", 1, "2026-03-02", false},
		{"跨月", "2026-03-31", 1, "2026-04-01", false},
		{"跨年", "2026-12-31", 1, "2027-01-01", false},
		{"闰年二月", "2028-02-28", 1, "2028-02-29", false},
		{"减一天", "2026-03-01", -1, "2026-02-28", false},
		{"加60天", "2026-03-01", 60, "2026-04-30", false},
		{"非法日期", "2026/03/01", 1, "", true},
		{"空字符串", "", 1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddDays(tt.date, tt.days)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNightsBetween(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"一晚", "2026-03-01", "2026-03-02", 1},
		{"三晚", "2026-03-01", "2026-03-04", 3},
		{"同一天", "2026-03-01", "2026-03-01", 0},
		{"范围倒置", "2026-03-04", "2026-03-01", 0},
		{"跨月", "2026-03-30", "2026-04-02", 3},
		{"非法入住日期", "bad", "2026-03-02", 0},
		{"非法离店日期", "2026-03-01", "bad", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NightsBetween(tt.checkIn, tt.checkOut))
		})
	}
}

func TestDateRange(t *testing.T) {
	t.Run("三晚展开", func(t *testing.T) {
		dates := DateRange("2026-03-01", "2026-03-04")
		assert.Equal(t, []string{"2026-03-01", "2026-03-02", "2026-03-03"}, dates)
	})

	t.Run("离店当天不计入", func(t *testing.T) {
		dates := DateRange("2026-03-01", "2026-03-02")
		assert.Equal(t, []string{"2026-03-01"}, dates)
	})

	t.Run("同一天返回空", func(t *testing.T) {
		assert.Empty(t, DateRange("2026-03-01", "2026-03-01"))
	})

	t.Run("范围倒置返回空", func(t *testing.T) {
		assert.Empty(t, DateRange("2026-03-04", "2026-03-01"))
	})
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{4, 2, 2},
		{5, 2, 3},
		{1, 2, 1},
		{0, 2, 0},
		{7, 3, 3},
		{6, 3, 2},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CeilDiv(tt.a, tt.b))
	}
}

// ==================== 指针函数测试 ====================

func TestStringPtr(t *testing.T) {
	s := "test"
	ptr := StringPtr(s)
	assert.NotNil(t, ptr)
	assert.Equal(t, s, *ptr)
}

func TestFloat64Ptr(t *testing.T) {
	f := 123.45
	ptr := Float64Ptr(f)
	assert.NotNil(t, ptr)
	assert.Equal(t, f, *ptr)
}

func TestSafeString(t *testing.T) {
	s := "test"
	assert.Equal(t, s, SafeString(&s))
	assert.Equal(t, "", SafeString(nil))
}

func TestSafeFloat64(t *testing.T) {
	f := 88.8
	assert.Equal(t, f, SafeFloat64(&f))
	assert.Equal(t, float64(0), SafeFloat64(nil))
}

// ==================== 泛型函数测试 ====================

func TestContains(t *testing.T) {
	t.Run("String slice", func(t *testing.T) {
		slice := []string{"a", "b", "c"}
		assert.True(t, Contains(slice, "a"))
		assert.False(t, Contains(slice, "d"))
	})

	t.Run("Int slice", func(t *testing.T) {
		slice := []int{1, 2, 3}
		assert.True(t, Contains(slice, 1))
		assert.False(t, Contains(slice, 4))
	})

	t.Run("Empty slice", func(t *testing.T) {
		assert.False(t, Contains([]string{}, "a"))
	})
}

func TestUnique(t *testing.T) {
	t.Run("String slice", func(t *testing.T) {
		slice := []string{"a", "b", "a", "c", "b"}
		result := Unique(slice)
		assert.Len(t, result, 3)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, result)
	})

	t.Run("No duplicates", func(t *testing.T) {
		slice := []int{1, 2, 3}
		assert.Equal(t, slice, Unique(slice))
	})
}

func TestMaxMin(t *testing.T) {
	assert.Equal(t, 5, Max(5, 3))
	assert.Equal(t, 3, Min(5, 3))
	assert.Equal(t, 10.5, Max(10.5, 8.2))
	assert.Equal(t, int64(50), Min(int64(100), int64(50)))
}

// ==================== Pagination 测试 ====================

func TestPagination_GetOffset(t *testing.T) {
	tests := []struct {
		page     int
		pageSize int
		want     int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{3, 10, 20},
		{5, 15, 60},
	}

	for _, tt := range tests {
		p := &Pagination{Page: tt.page, PageSize: tt.pageSize}
		assert.Equal(t, tt.want, p.GetOffset())
	}
}

func TestPagination_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		expectedPage int
		expectedSize int
	}{
		{"Normal", 2, 20, 2, 20},
		{"Page too small", 0, 20, 1, 20},
		{"Page negative", -1, 20, 1, 20},
		{"PageSize too small", 1, 0, 1, 10},
		{"PageSize too large", 1, 200, 1, 100},
		{"Both invalid", 0, 0, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pagination{Page: tt.page, PageSize: tt.pageSize}
			p.Normalize()
			assert.Equal(t, tt.expectedPage, p.Page)
			assert.Equal(t, tt.expectedSize, p.PageSize)
		})
	}
}

func TestPagination_GetTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{100, 10, 10},
		{95, 10, 10},
		{0, 10, 0},
		{5, 10, 1},
		{100, 20, 5},
	}

	for _, tt := range tests {
		p := &Pagination{Total: tt.total, PageSize: tt.pageSize}
		assert.Equal(t, tt.want, p.GetTotalPages())
	}
}
