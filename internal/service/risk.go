package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"elderguard/internal/alert"
	"elderguard/internal/config"
	"elderguard/internal/consumer"
	"elderguard/internal/emergency"
	"elderguard/internal/models"
	"elderguard/internal/predictor"
	"elderguard/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	_ "github.com/lib/pq"
)

// RiskService 风险评估服务（整合各层）
// 预测器和检测器是纯函数组件，可被任意并发请求使用；
// 可选依赖（数据库、Redis、MQTT）不可用时按能力降级，不阻止服务启动
type RiskService struct {
	config      *config.Config
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger

	predictor  *predictor.Predictor
	detector   *emergency.Detector
	dispatcher *alert.Dispatcher

	cacheManager   *consumer.CacheManager
	mqttConsumer   *consumer.MQTTConsumer
	pollConsumer   *consumer.PollConsumer
	alertLogRepo   *repository.AlertLogRepository
	recipientsRepo *repository.RecipientsRepository
}

// NewRiskService 创建风险评估服务
func NewRiskService(cfg *config.Config, logger *zap.Logger) (*RiskService, error) {
	s := &RiskService{
		config: cfg,
		logger: logger,
	}

	// 1. 连接数据库（审计和接收人查询；不可用时降级）
	db, err := sql.Open("postgres", buildDSN(cfg))
	if err == nil {
		err = db.Ping()
	}
	if err != nil {
		logger.Warn("Database unavailable, audit log and recipient lookup disabled",
			zap.Error(err),
		)
	} else {
		s.db = db
		s.alertLogRepo = repository.NewAlertLogRepository(db, logger)
		s.recipientsRepo = repository.NewRecipientsRepository(db, logger)
	}

	// 2. 连接 Redis（模态摘要缓存；不可用时禁用消费者）
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unavailable, summary cache and poll loop disabled",
			zap.Error(err),
		)
		_ = redisClient.Close()
	} else {
		s.redisClient = redisClient
		s.cacheManager = consumer.NewCacheManager(cfg, redisClient, logger)
		s.pollConsumer = consumer.NewPollConsumer(cfg, s.cacheManager, logger)
	}

	// 3. 核心组件
	s.predictor = predictor.New(cfg.Model.Path, logger)
	s.detector = emergency.NewDetector(logger)

	// 4. 报警分发器
	channelTimeout := time.Duration(cfg.Alert.ChannelTimeout) * time.Second
	limiter := alert.NewRateLimiter(
		time.Duration(cfg.Alert.CooldownMinutes)*time.Minute,
		time.Duration(cfg.Alert.WindowMinutes)*time.Minute,
		cfg.Alert.MaxPerHour,
		alert.NewRealClock(),
	)
	push := alert.NewFCMClient(cfg.Alert.FCM.Endpoint, cfg.Alert.FCM.ServerKey, channelTimeout, logger)
	sms := alert.NewTwilioClient(
		cfg.Alert.Twilio.Endpoint,
		cfg.Alert.Twilio.AccountSID,
		cfg.Alert.Twilio.AuthToken,
		cfg.Alert.Twilio.FromPhone,
		channelTimeout,
		logger,
	)

	var audit alert.AuditSink
	if s.alertLogRepo != nil {
		audit = s.alertLogRepo
	}
	s.dispatcher = alert.NewDispatcher(limiter, push, sms, audit, channelTimeout, alert.NewRealClock(), logger)

	return s, nil
}

// Start 启动消费者（阻塞直到 ctx 取消）
func (s *RiskService) Start(ctx context.Context) error {
	if s.cacheManager == nil {
		s.logger.Info("No cache available, running in API-only mode")
		<-ctx.Done()
		return nil
	}

	// MQTT 摘要订阅（不可用时仅轮询已有缓存）
	mqttConsumer, err := consumer.NewMQTTConsumer(s.config, s.logger)
	if err != nil {
		s.logger.Warn("MQTT unavailable, summary ingest disabled",
			zap.Error(err),
		)
	} else {
		s.mqttConsumer = mqttConsumer
		if err := mqttConsumer.Start(ctx, s.handleSummary); err != nil {
			return fmt.Errorf("failed to start mqtt consumer: %w", err)
		}
	}

	return s.pollConsumer.Start(ctx, s)
}

// Stop 停止服务
func (s *RiskService) Stop() error {
	s.logger.Info("Stopping risk service")

	if s.mqttConsumer != nil {
		s.mqttConsumer.Stop()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database",
				zap.Error(err),
			)
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis",
				zap.Error(err),
			)
		}
	}

	return nil
}

// ModelLoaded 风险模型是否可用
func (s *RiskService) ModelLoaded() bool {
	return s.predictor.ModelLoaded()
}

// AssessRisk 风险评估：特征提取 → 评分 → 因素识别 → 建议生成
func (s *RiskService) AssessRisk(ctx context.Context, summaries *models.Summaries) *models.RiskAssessment {
	return s.predictor.PredictRisk(summaries)
}

// CheckEmergency 紧急情况检测
func (s *RiskService) CheckEmergency(ctx context.Context, summaries *models.Summaries) *models.EmergencyResult {
	return s.detector.Detect(summaries)
}

// FeatureImportance 特征重要度
func (s *RiskService) FeatureImportance() map[string]float64 {
	return s.predictor.FeatureImportance()
}

// SendAlert 分发紧急报警
// recipients 为空时尝试从数据库查询家属联系人
func (s *RiskService) SendAlert(
	ctx context.Context,
	elderID string,
	elderName string,
	emergencyResult *models.EmergencyResult,
	recipients []models.Recipient,
) (*models.DispatchResult, error) {
	if elderID == "" {
		return nil, &models.ValidationError{Field: "elder_id", Reason: "is required"}
	}

	if len(recipients) == 0 && s.recipientsRepo != nil {
		fetched, err := s.recipientsRepo.GetRecipients(ctx, elderID)
		if err != nil {
			s.logger.Error("Failed to fetch recipients",
				zap.String("elder_id", elderID),
				zap.Error(err),
			)
		} else {
			recipients = fetched
		}
	}

	return s.dispatcher.SendEmergencyAlert(ctx, elderID, elderName, emergencyResult, recipients), nil
}

// handleSummary MQTT 摘要消息入缓存
func (s *RiskService) handleSummary(elderID, modality string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.cacheManager.SetSummary(ctx, elderID, modality, payload)
}

// EvaluateElder 轮询管线：读摘要 → 评估入缓存 → 紧急检测 → 必要时报警
func (s *RiskService) EvaluateElder(ctx context.Context, elderID string) error {
	summaries, err := s.cacheManager.GetSummaries(ctx, elderID)
	if err != nil {
		return fmt.Errorf("failed to load summaries: %w", err)
	}

	assessment := s.AssessRisk(ctx, summaries)
	if err := s.cacheManager.UpdateAssessmentCache(ctx, elderID, assessment); err != nil {
		// 缓存失败不中断紧急检测
		s.logger.Error("Failed to cache assessment",
			zap.String("elder_id", elderID),
			zap.Error(err),
		)
	}

	emergencyResult := s.CheckEmergency(ctx, summaries)
	if !emergencyResult.Emergency {
		return nil
	}

	s.logger.Warn("Emergency detected during poll",
		zap.String("elder_id", elderID),
		zap.String("severity", emergencyResult.Severity),
		zap.Int("priority", emergency.PriorityScore(emergencyResult)),
	)

	result, err := s.SendAlert(ctx, elderID, elderID, emergencyResult, nil)
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	if !result.Sent {
		s.logger.Info("Alert suppressed",
			zap.String("elder_id", elderID),
			zap.String("reason", result.Reason),
		)
	}

	return nil
}

// buildDSN 构建数据库连接字符串
func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.SSLMode,
	)
}
