// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown       = New(1000, "未知错误")
	ErrInvalidParams = New(1001, "参数错误")
	ErrNotFound      = New(1002, "资源不存在")
	ErrDatabaseError = New(1004, "数据库错误")
	ErrCacheError    = New(1005, "缓存错误")
	ErrInternalError = New(1006, "内部错误")
)

// 认证错误码 (2000-2999)
// 登录注册由外部系统负责，这里只保留身份上下文相关的错误
var (
	ErrUnauthorized     = New(2000, "未登录")
	ErrTokenExpired     = New(2001, "登录已过期")
	ErrTokenInvalid     = New(2002, "无效的令牌")
	ErrPermissionDenied = New(2004, "权限不足")
	ErrNotOwner         = New(2005, "无权操作：只能操作您自己名下的资源")
)

// 酒店错误码 (4000-4999)
var (
	ErrHotelNotFound     = New(4000, "找不到指定的酒店")
	ErrHotelNotListed    = New(4001, "该酒店尚未通过平台审核，暂不能进行此操作")
	ErrHotelOffline      = New(4002, "该酒店已下架或暂停营业")
	ErrHotelAuditAction  = New(4003, "未知的审核操作")
	ErrHotelMissingField = New(4004, "酒店必填信息不完整")
)

// 房型错误码 (5000-5999)
var (
	ErrRoomNotFound       = New(5000, "找不到该房型")
	ErrRoomPublished      = New(5001, "该房型正在上架售卖中，请先将其下架后再操作")
	ErrRoomNotApproved    = New(5002, "该房型尚未通过平台审核或已被驳回，无法上架售卖")
	ErrRoomAuditAction    = New(5003, "未知的审核操作")
	ErrRoomToggleAction   = New(5004, "未知的操作类型")
	ErrRoomInvalidPrice   = New(5005, "房型价格不合法")
	ErrRoomInvalidCount   = New(5006, "房型物理房间总数不合法")
)

// 库存错误码 (6000-6999)
var (
	ErrStockNotFound     = New(6000, "库存记录不存在")
	ErrStockInsufficient = New(6001, "库存不足")
	ErrStockPastDate     = New(6002, "不能操作过去日期的库存")
	ErrStockInvalidRange = New(6003, "入住日期必须早于离店日期")
	ErrStockInvalidCount = New(6004, "库存数量不合法")
)

// 检索错误码 (7000-7999)
var (
	ErrSearchInvalidDate = New(7000, "无效的入住/离店日期")
	ErrSearchInvalidPage = New(7001, "无效的分页参数")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
