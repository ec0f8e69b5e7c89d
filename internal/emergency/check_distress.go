package emergency

import (
	"fmt"

	"elderguard/internal/models"
)

// checkDistress 检查2：极端情绪困扰
func (d *Detector) checkDistress(vision models.Fields) *models.EmergencyCandidate {
	switch vision.Str("distress_level", "low") {
	case "critical":
		return &models.EmergencyCandidate{
			Type:     models.EmergencyExtremeDistress,
			Severity: models.SeverityCritical,
			Message: "🚨 URGENT: Extreme emotional distress detected! " +
				"Facial expressions indicate severe distress.",
			Action: "Contact immediately to check on wellbeing and provide support.",
		}
	case "high":
		return &models.EmergencyCandidate{
			Type:     models.EmergencyHighDistress,
			Severity: models.SeverityHigh,
			Message:  "High emotional distress detected in facial expressions.",
			Action:   "Schedule immediate check-in call or visit.",
		}
	}
	return nil
}

// checkPain 检查3：严重疼痛
// 先检查更具体的高严重度条件（检出疼痛且分值超阈值）；
// 未命中时再检查多项疼痛指征的中等严重度条件，两者不会同时触发
func (d *Detector) checkPain(vision, health models.Fields) *models.EmergencyCandidate {
	painDetected := vision.Bool("pain_detected")
	painScore := health.Float("pain_score", 0)
	painExpressions := vision.Int("pain_expression_count", 0)
	healthComplaints := health.Int("health_complaints", 0)

	if painDetected && painScore > painScoreThreshold {
		return &models.EmergencyCandidate{
			Type:     models.EmergencySeverePain,
			Severity: models.SeverityHigh,
			Message: fmt.Sprintf("Severe pain detected (score: %.1f). Visible pain expressions count: %d",
				painScore, painExpressions),
			Action: "Contact to assess pain level. " +
				"Consider arranging medical consultation if persistent.",
		}
	}

	if painExpressions > 3 && healthComplaints > 2 {
		return &models.EmergencyCandidate{
			Type:     models.EmergencyPainIndicators,
			Severity: models.SeverityMedium,
			Message: fmt.Sprintf("Multiple pain indicators: %d pain expressions, %d health complaints.",
				painExpressions, healthComplaints),
			Action: "Monitor closely and check in about health status.",
		}
	}

	return nil
}
