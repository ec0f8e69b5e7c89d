package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"elderguard/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditSink 报警审计记录的写入能力（仅追加；不可用时不影响分发）
type AuditSink interface {
	LogAlert(ctx context.Context, log *models.AlertLog) error
}

// Dispatcher 报警分发器
// 频率判定和记录在锁内同步完成（commit-then-send），
// 实际通道 I/O 在记录提交后进行：发送失败不回滚冷却记录，避免重试风暴
type Dispatcher struct {
	limiter        *RateLimiter
	push           PushSender
	sms            SMSSender
	audit          AuditSink
	logger         *zap.Logger
	clock          Clock
	channelTimeout time.Duration
}

// NewDispatcher 创建分发器；audit 可为 nil（跳过审计）
func NewDispatcher(
	limiter *RateLimiter,
	push PushSender,
	sms SMSSender,
	audit AuditSink,
	channelTimeout time.Duration,
	clock Clock,
	logger *zap.Logger,
) *Dispatcher {
	if clock == nil {
		clock = NewRealClock()
	}
	return &Dispatcher{
		limiter:        limiter,
		push:           push,
		sms:            sms,
		audit:          audit,
		logger:         logger,
		clock:          clock,
		channelTimeout: channelTimeout,
	}
}

// SendEmergencyAlert 向全部家属分发紧急报警
// 被频率限制时不调用任何通道；单个通道失败不影响其他接收人，部分送达也算成功
func (d *Dispatcher) SendEmergencyAlert(
	ctx context.Context,
	elderID string,
	elderName string,
	emergency *models.EmergencyResult,
	recipients []models.Recipient,
) *models.DispatchResult {
	alertType := "unknown"
	if emergency.EmergencyType != nil {
		alertType = *emergency.EmergencyType
	}

	// 频率判定与记录是一个原子操作
	if !d.limiter.Allow(elderID, alertType) {
		d.logger.Info("Alert rate limited",
			zap.String("elder_id", elderID),
			zap.String("alert_type", alertType),
		)
		return &models.DispatchResult{
			Sent:      false,
			Reason:    "rate_limited",
			Notified:  []models.NotifiedRecipient{},
			Timestamp: d.clock.Now(),
		}
	}

	severity := emergency.Severity
	message := "Alert from ElderGuard"
	if emergency.AlertMessage != nil {
		message = *emergency.AlertMessage
	}
	action := ""
	if emergency.RecommendedAction != nil {
		action = *emergency.RecommendedAction
	}

	title := formatTitle(elderName, severity)
	body := message
	if action != "" {
		body = message + "\n\n" + action
	}

	result := &models.DispatchResult{
		Sent:      true,
		Notified:  []models.NotifiedRecipient{},
		Timestamp: d.clock.Now(),
	}

	for _, recipient := range recipients {
		// 推送通道
		if recipient.FCMToken != "" {
			sendCtx, cancel := context.WithTimeout(ctx, d.channelTimeout)
			err := d.push.Send(sendCtx, recipient.FCMToken, title, body, map[string]string{
				"elder_id":       elderID,
				"emergency_type": alertType,
				"severity":       severity,
				"timestamp":      d.clock.Now().Format(time.RFC3339),
				"screen":         "emergency",
			})
			cancel()
			if err != nil {
				result.Failed++
				d.logger.Error("Push send failed",
					zap.String("recipient", recipient.ID),
					zap.Error(err),
				)
			} else {
				result.FCMSent++
			}
		}

		// 危急级别额外发送短信
		smsEligible := severity == models.SeverityCritical && recipient.Phone != ""
		if smsEligible {
			smsText := fmt.Sprintf("🚨 ElderGuard EMERGENCY 🚨\n\n%s\n\n%s\n\n%s", title, message, action)
			sendCtx, cancel := context.WithTimeout(ctx, d.channelTimeout)
			err := d.sms.Send(sendCtx, recipient.Phone, smsText)
			cancel()
			if err != nil {
				result.Failed++
				d.logger.Error("SMS send failed",
					zap.String("recipient", recipient.ID),
					zap.Error(err),
				)
			} else {
				result.SMSSent++
			}
		}

		result.Notified = append(result.Notified, models.NotifiedRecipient{
			Name: recipient.Name,
			FCM:  recipient.FCMToken != "",
			SMS:  smsEligible,
		})
	}

	// 审计记录：fire-and-forget，不阻塞也不影响分发结果
	d.logAlert(elderID, alertType, severity, message, action, recipients, result)

	d.logger.Info("Emergency alert sent",
		zap.String("elder_id", elderID),
		zap.String("alert_type", alertType),
		zap.Int("fcm_sent", result.FCMSent),
		zap.Int("sms_sent", result.SMSSent),
		zap.Int("failed", result.Failed),
	)

	return result
}

// DailySummary 每日健康摘要
type DailySummary struct {
	RiskLevel string
	MoodAvg   float64
	Concerns  []string
}

// SendDailySummary 向家属推送每日摘要（仅推送通道，不计入紧急冷却）
func (d *Dispatcher) SendDailySummary(
	ctx context.Context,
	elderID string,
	elderName string,
	summary DailySummary,
	recipients []models.Recipient,
) *models.DispatchResult {
	var emoji string
	switch summary.RiskLevel {
	case models.RiskSafe:
		emoji = "✅"
	case models.RiskMonitor:
		emoji = "⚠️"
	default:
		emoji = "🔴"
	}
	title := fmt.Sprintf("%s Daily Update: %s", emoji, elderName)

	bodyParts := []string{"Status: " + summary.RiskLevel}
	if summary.MoodAvg > 0 {
		bodyParts = append(bodyParts, fmt.Sprintf("Mood: %.1f/5", summary.MoodAvg))
	}
	if len(summary.Concerns) > 0 {
		bodyParts = append(bodyParts, fmt.Sprintf("Concerns: %d", len(summary.Concerns)))
	}
	body := strings.Join(bodyParts, " | ")

	result := &models.DispatchResult{
		Sent:      true,
		Notified:  []models.NotifiedRecipient{},
		Timestamp: d.clock.Now(),
	}

	for _, recipient := range recipients {
		if recipient.FCMToken == "" {
			continue
		}
		sendCtx, cancel := context.WithTimeout(ctx, d.channelTimeout)
		err := d.push.Send(sendCtx, recipient.FCMToken, title, body, map[string]string{
			"type":       "daily_summary",
			"elder_id":   elderID,
			"risk_level": summary.RiskLevel,
			"screen":     "dashboard",
		})
		cancel()
		if err != nil {
			result.Failed++
		} else {
			result.FCMSent++
		}
		result.Notified = append(result.Notified, models.NotifiedRecipient{
			Name: recipient.Name,
			FCM:  true,
		})
	}

	return result
}

// formatTitle 按严重级别格式化通知标题
func formatTitle(elderName, severity string) string {
	switch severity {
	case models.SeverityCritical:
		return "‼️ CRITICAL EMERGENCY: " + elderName
	case models.SeverityHigh:
		return "🚨 URGENT: " + elderName
	case models.SeverityMedium:
		return "⚠️ Alert: " + elderName
	default:
		return "ℹ️ Notice: " + elderName
	}
}

func (d *Dispatcher) logAlert(
	elderID, alertType, severity, message, action string,
	recipients []models.Recipient,
	result *models.DispatchResult,
) {
	if d.audit == nil {
		return
	}

	recipientIDs := make([]string, 0, len(recipients))
	for _, r := range recipients {
		recipientIDs = append(recipientIDs, r.ID)
	}
	recipientsJSON, err := json.Marshal(recipientIDs)
	if err != nil {
		recipientsJSON = []byte("[]")
	}

	entry := &models.AlertLog{
		LogID:      uuid.New().String(),
		ElderID:    elderID,
		AlertType:  alertType,
		Severity:   severity,
		Message:    message,
		Action:     action,
		Recipients: string(recipientsJSON),
		FCMSent:    result.FCMSent,
		SMSSent:    result.SMSSent,
		Failed:     result.Failed,
		CreatedAt:  d.clock.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.audit.LogAlert(ctx, entry); err != nil {
			d.logger.Error("Failed to log alert",
				zap.String("log_id", entry.LogID),
				zap.Error(err),
			)
		}
	}()
}
