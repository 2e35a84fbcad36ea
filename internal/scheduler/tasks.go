// Package scheduler 提供定时任务
package scheduler

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/logger"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/utils"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
	"github.com/dumeirei/hotel-marketplace-backend/internal/service/inventory"
)

// 同一目标日的滚动任务在多实例间只需执行一次
const horizonLockKeyPrefix = "job:extend_horizon:"

// TaskHandler 任务处理器
type TaskHandler struct {
	roomRepo      *repository.RoomRepository
	stockService  *inventory.StockService
	rdb           *redis.Client
	horizonNights int
}

// NewTaskHandler 创建任务处理器
// rdb 可为 nil，此时跳过分布式抢锁，适用于单实例部署
func NewTaskHandler(
	roomRepo *repository.RoomRepository,
	stockService *inventory.StockService,
	rdb *redis.Client,
	horizonNights int,
) *TaskHandler {
	if horizonNights <= 0 {
		horizonNights = 60
	}
	return &TaskHandler{
		roomRepo:      roomRepo,
		stockService:  stockService,
		rdb:           rdb,
		horizonNights: horizonNights,
	}
}

// ExtendStockHorizon 滚动铺设库存窗口
// 每天为所有房型补上进入窗口的最后一夜，铺设是幂等的，
// 单个房型失败不阻断其余房型
func (h *TaskHandler) ExtendStockHorizon(ctx context.Context) error {
	targetDate, err := utils.AddDays(utils.Today(), h.horizonNights-1)
	if err != nil {
		return err
	}

	if h.rdb != nil {
		locked, err := h.rdb.SetNX(ctx, horizonLockKeyPrefix+targetDate, "1", 23*time.Hour).Result()
		if err != nil {
			// 抢锁失败按未锁处理，靠铺设幂等性兜底
			logger.Warn("库存滚动任务抢锁失败", logger.Err(err))
		} else if !locked {
			return nil
		}
	}

	rooms, err := h.roomRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, room := range rooms {
		if err := h.stockService.ProvisionNight(ctx, room, targetDate, "horizon_job"); err != nil {
			failed++
			logger.Error("房型库存滚动失败",
				logger.RoomID(room.ID),
				logger.StockDate(targetDate),
				logger.Err(err),
			)
		}
	}

	logger.Info("库存窗口已滚动",
		logger.StockDate(targetDate),
		logger.Int("rooms", len(rooms)),
		logger.Int("failed", failed),
	)
	return nil
}
