package consumer

import (
	"context"
	"time"

	"elderguard/internal/config"

	"go.uber.org/zap"
)

// Evaluator 评估器接口（由 service 层实现）
type Evaluator interface {
	EvaluateElder(ctx context.Context, elderID string) error
}

// PollConsumer 周期性地对所有有数据的老人执行评估
type PollConsumer struct {
	config *config.Config
	cache  *CacheManager
	logger *zap.Logger
}

// NewPollConsumer 创建轮询消费者
func NewPollConsumer(cfg *config.Config, cache *CacheManager, logger *zap.Logger) *PollConsumer {
	return &PollConsumer{
		config: cfg,
		cache:  cache,
		logger: logger,
	}
}

// Start 启动轮询循环（阻塞直到 ctx 取消）
func (p *PollConsumer) Start(ctx context.Context, evaluator Evaluator) error {
	interval := time.Duration(p.config.PollInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	p.logger.Info("Poll consumer started",
		zap.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Poll consumer stopped")
			return nil
		case <-ticker.C:
			p.evaluateAll(ctx, evaluator)
		}
	}
}

// evaluateAll 评估所有老人；单个失败不中断整轮
func (p *PollConsumer) evaluateAll(ctx context.Context, evaluator Evaluator) {
	elderIDs, err := p.cache.GetAllElderIDs(ctx)
	if err != nil {
		p.logger.Error("Failed to list elder IDs",
			zap.Error(err),
		)
		return
	}

	for _, elderID := range elderIDs {
		if err := evaluator.EvaluateElder(ctx, elderID); err != nil {
			p.logger.Error("Failed to evaluate elder",
				zap.String("elder_id", elderID),
				zap.Error(err),
			)
		}
	}
}
