package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"elderguard/internal/config"
	"elderguard/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Modalities 支持的模态名称
var Modalities = []string{"chat", "mood", "vision", "activity", "health"}

// CacheManager Redis 缓存管理器
// 保存各分析服务发布的模态摘要和最近一次评估结果
type CacheManager struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewCacheManager 创建缓存管理器
func NewCacheManager(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) *CacheManager {
	return &CacheManager{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// summaryKey 模态摘要缓存键，如 "elderguard:elder:elder-1:vision"
func (c *CacheManager) summaryKey(elderID, modality string) string {
	return fmt.Sprintf("%s%s:%s", c.config.Cache.KeyPrefix, elderID, modality)
}

// SetSummary 写入单个模态摘要
func (c *CacheManager) SetSummary(ctx context.Context, elderID, modality string, payload []byte) error {
	key := c.summaryKey(elderID, modality)
	ttl := time.Duration(c.config.Cache.SummaryTTL) * time.Second

	if err := c.redisClient.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set summary cache: %w", err)
	}

	c.logger.Debug("Summary cached",
		zap.String("elder_id", elderID),
		zap.String("modality", modality),
	)
	return nil
}

// GetSummaries 读取某个老人的全部模态摘要
// 缺失的模态为 nil；内容损坏的模态记录警告后按缺失处理（不中断评估）
func (c *CacheManager) GetSummaries(ctx context.Context, elderID string) (*models.Summaries, error) {
	s := &models.Summaries{}

	for _, modality := range Modalities {
		key := c.summaryKey(elderID, modality)
		val, err := c.redisClient.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get summary cache: %w", err)
		}

		var fields models.Fields
		if err := json.Unmarshal([]byte(val), &fields); err != nil {
			c.logger.Warn("Corrupt summary cache entry, treating as missing",
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}

		switch modality {
		case "chat":
			s.Chat = fields
		case "mood":
			s.Mood = fields
		case "vision":
			s.Vision = fields
		case "activity":
			s.Activity = fields
		case "health":
			s.Health = fields
		}
	}

	return s, nil
}

// UpdateAssessmentCache 写入最近一次评估结果（短 TTL，供前端读取）
func (c *CacheManager) UpdateAssessmentCache(ctx context.Context, elderID string, assessment *models.RiskAssessment) error {
	key := fmt.Sprintf("%s%s:assessment", c.config.Cache.KeyPrefix, elderID)

	jsonData, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	ttl := time.Duration(c.config.Cache.AssessmentTTL) * time.Second
	if err := c.redisClient.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set assessment cache: %w", err)
	}

	return nil
}

// GetAllElderIDs 扫描缓存键获取当前有数据的老人 ID 列表
func (c *CacheManager) GetAllElderIDs(ctx context.Context) ([]string, error) {
	pattern := c.config.Cache.KeyPrefix + "*"

	seen := make(map[string]bool)
	var elderIDs []string

	iter := c.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		// 键格式：{prefix}{elderID}:{modality}
		rest := key[len(c.config.Cache.KeyPrefix):]
		idx := strings.LastIndex(rest, ":")
		if idx <= 0 {
			continue
		}
		elderID := rest[:idx]
		if !seen[elderID] {
			seen[elderID] = true
			elderIDs = append(elderIDs, elderID)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}

	return elderIDs, nil
}
