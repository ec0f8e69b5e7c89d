package emergency

import (
	"fmt"
	"time"

	"elderguard/internal/models"

	"go.uber.org/zap"
)

// checkFall 检查1：跌倒
// 每次调用最多产生一个跌倒候选：有时间戳且超过阈值 → fall_no_movement，
// 否则 → fall_detected（刚检测到跌倒，立即报警）
func (d *Detector) checkFall(vision models.Fields) *models.EmergencyCandidate {
	if !vision.Bool("fall_detected") {
		return nil
	}

	if ts := vision.Str("fall_timestamp", ""); ts != "" {
		fallTime, err := parseTimestamp(ts)
		if err != nil {
			d.logger.Warn("Could not parse fall timestamp",
				zap.String("fall_timestamp", ts),
				zap.Error(err),
			)
		} else {
			minutesSinceFall := d.now().Sub(fallTime).Minutes()
			if minutesSinceFall >= fallNoMovementMinutes {
				return &models.EmergencyCandidate{
					Type:     models.EmergencyFallNoMovement,
					Severity: models.SeverityCritical,
					Message: fmt.Sprintf("🚨 URGENT: Fall detected %d minutes ago with no movement detected!",
						int(minutesSinceFall)),
					Action: "Call immediately or contact emergency services (911). " +
						"Elder may be unable to get up or be unconscious.",
				}
			}
		}
	}

	return &models.EmergencyCandidate{
		Type:     models.EmergencyFallDetected,
		Severity: models.SeverityCritical,
		Message:  "🚨 FALL DETECTED! Elder appears to have fallen.",
		Action: "Contact immediately to verify safety. " +
			"Be prepared to call emergency services if no response.",
	}
}

// parseTimestamp 解析 ISO-8601 时间戳（带或不带时区）
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
}
