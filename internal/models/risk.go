package models

import "time"

// 风险等级
const (
	RiskSafe     = "SAFE"
	RiskMonitor  = "MONITOR"
	RiskHighRisk = "HIGH_RISK"
)

// RiskLabels 风险等级（按模型类别索引顺序）
var RiskLabels = [3]string{RiskSafe, RiskMonitor, RiskHighRisk}

// 评分路径标识
const (
	ModelUsedForest    = "random_forest"
	ModelUsedRuleBased = "rule_based"
)

// RiskProbability 三个等级的概率分布（和为 1）
type RiskProbability struct {
	Safe     float64 `json:"safe"`
	Monitor  float64 `json:"monitor"`
	HighRisk float64 `json:"high_risk"`
}

// RiskAssessment 风险评估结果（一次请求产生，产生后不再修改）
type RiskAssessment struct {
	RiskLevel           string             `json:"risk_level"`
	RiskScore           float64            `json:"risk_score"`
	RiskProbability     RiskProbability    `json:"risk_probability"`
	ContributingFactors []string           `json:"contributing_factors"`
	Recommendations     []string           `json:"recommendations"`
	Features            map[string]float64 `json:"features"`
	DataSourcesUsed     map[string]bool    `json:"data_sources_used"`
	ModelUsed           string             `json:"model_used"`
	Timestamp           time.Time          `json:"timestamp"`
}
