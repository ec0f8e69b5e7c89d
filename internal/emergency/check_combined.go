package emergency

import (
	"fmt"
	"strings"

	"elderguard/internal/models"
)

// checkEmergencyButton 检查6：紧急按钮
// 只要按过就是 critical，不受其他字段影响
func (d *Detector) checkEmergencyButton(health models.Fields) *models.EmergencyCandidate {
	presses := health.Int("emergency_button_presses", 0)
	if presses <= 0 {
		return nil
	}

	return &models.EmergencyCandidate{
		Type:     models.EmergencyButton,
		Severity: models.SeverityCritical,
		Message:  fmt.Sprintf("🚨 EMERGENCY BUTTON PRESSED (%d times)!", presses),
		Action: "Contact IMMEDIATELY or call emergency services. " +
			"Elder has actively requested help.",
	}
}

// checkCombinedRisks 检查7：组合风险因素
// 独立统计跨模态的布尔风险指标，达到 3 项时触发 high 候选；
// 消息中最多列出 5 项，超出用省略号标记
func (d *Detector) checkCombinedRisks(vision, activity, health models.Fields) *models.EmergencyCandidate {
	var riskFactors []string

	// 视觉指标
	if level := vision.Str("distress_level", ""); level == "high" || level == "critical" {
		riskFactors = append(riskFactors, "emotional distress")
	}
	if vision.Bool("pain_detected") {
		riskFactors = append(riskFactors, "pain expressions")
	}
	if vision.Bool("unusual_posture") {
		riskFactors = append(riskFactors, "unusual posture")
	}

	// 活动指标
	if activity.Bool("prolonged_inactivity") {
		riskFactors = append(riskFactors, "prolonged inactivity")
	}
	if activity.Bool("concerning") {
		riskFactors = append(riskFactors, "concerning activity patterns")
	}
	if activity.Int("days_without_eating", 0) > 0 {
		riskFactors = append(riskFactors, "missed meals")
	}

	// 健康指标
	if health.Int("health_complaints", 0) > 3 {
		riskFactors = append(riskFactors, "multiple health complaints")
	}
	if health.Int("medicine_missed", 0) > 3 {
		riskFactors = append(riskFactors, "missed medications")
	}

	if len(riskFactors) < combinedRiskFactors {
		return nil
	}

	listed := riskFactors
	ellipsis := ""
	if len(riskFactors) > 5 {
		listed = riskFactors[:5]
		ellipsis = "..."
	}

	return &models.EmergencyCandidate{
		Type:     models.EmergencyMultipleRisks,
		Severity: models.SeverityHigh,
		Message: fmt.Sprintf("Multiple concerning signals detected: %s%s",
			strings.Join(listed, ", "), ellipsis),
		Action: "Schedule urgent check-in or visit. " +
			"Multiple indicators suggest declining wellbeing.",
		RiskFactors: riskFactors,
	}
}
