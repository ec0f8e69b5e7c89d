package models

import "time"

// 紧急事件严重级别
const (
	SeverityNone     = "none"
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// severityRank 严重级别排序权重
var severityRank = map[string]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// SeverityRank 返回严重级别的排序权重（未知级别为 0）
func SeverityRank(severity string) int {
	return severityRank[severity]
}

// 紧急事件类型
const (
	EmergencyFallDetected    = "fall_detected"
	EmergencyFallNoMovement  = "fall_no_movement"
	EmergencyExtremeDistress = "extreme_distress"
	EmergencyHighDistress    = "high_distress"
	EmergencySeverePain      = "severe_pain"
	EmergencyPainIndicators  = "pain_indicators"
	EmergencyNoEating        = "no_eating"
	EmergencyMissedMeals     = "missed_meals"
	EmergencyProlongedInact  = "prolonged_inactivity"
	EmergencyExtendedInact   = "extended_inactivity"
	EmergencyButton          = "emergency_button"
	EmergencyMultipleRisks   = "multiple_risk_factors"
)

// EmergencyCandidate 单项检查触发的候选紧急事件（产生后不再修改）
type EmergencyCandidate struct {
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	Action      string   `json:"action"`
	RiskFactors []string `json:"risk_factors,omitempty"`
}

// EmergencyResult 紧急检测结果
// 没有任何候选时仍返回完整结构（emergency=false, severity="none"）
type EmergencyResult struct {
	Emergency         bool                 `json:"emergency"`
	EmergencyType     *string              `json:"emergency_type"`
	Severity          string               `json:"severity"`
	AlertMessage      *string              `json:"alert_message"`
	RecommendedAction *string              `json:"recommended_action"`
	AllConcerns       []EmergencyCandidate `json:"all_concerns"`
	TotalEmergencies  int                  `json:"total_emergencies"`
	Timestamp         time.Time            `json:"timestamp"`
}
