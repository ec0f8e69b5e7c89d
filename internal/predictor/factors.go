package predictor

import (
	"fmt"
	"strings"

	"elderguard/internal/models"
)

// NoConcernsFactor 没有任何阈值触发时的占位因素（因素列表永不为空）
const NoConcernsFactor = "No major concerns detected"

// IdentifyFactors 从特征向量识别风险因素，返回可读描述列表
// 所有阈值未触发时返回单个占位项
func IdentifyFactors(v models.FeatureVector) []string {
	var factors []string

	if v[models.FeatAvgSentiment7Days] < -0.3 {
		factors = append(factors, "Persistent negative mood in conversations")
	}
	if v[models.FeatSadMoodCount] > 4 {
		factors = append(factors, fmt.Sprintf("Frequent sad moods (%d times)", int(v[models.FeatSadMoodCount])))
	}
	if v[models.FeatLonelyMentions] > 3 {
		factors = append(factors, "Repeated mentions of loneliness")
	}
	if v[models.FeatHealthComplaints] > 2 {
		factors = append(factors, fmt.Sprintf("%d health complaints reported", int(v[models.FeatHealthComplaints])))
	}
	if v[models.FeatMedicineMissed] > 2 {
		factors = append(factors, fmt.Sprintf("%d missed medications", int(v[models.FeatMedicineMissed])))
	}
	if v[models.FeatFallDetectedCount] > 0 {
		factors = append(factors, fmt.Sprintf("⚠️ %d fall(s) detected", int(v[models.FeatFallDetectedCount])))
	}
	if v[models.FeatDistressEpisodes] > 0 {
		factors = append(factors, fmt.Sprintf("⚠️ %d distress episode(s)", int(v[models.FeatDistressEpisodes])))
	}
	if v[models.FeatPainExpressionCount] > 2 {
		factors = append(factors, "Frequent pain expressions detected")
	}
	if v[models.FeatDaysWithoutEating] > 0 {
		factors = append(factors, fmt.Sprintf("⚠️ No meals for %d day(s)", int(v[models.FeatDaysWithoutEating])))
	}
	if v[models.FeatCameraInactivityHours] > 12 {
		factors = append(factors, fmt.Sprintf("Prolonged inactivity (%.1f hours)", v[models.FeatCameraInactivityHours]))
	}
	if v[models.FeatSleepQualityScore] < 0.5 {
		factors = append(factors, "Poor sleep quality")
	}
	if v[models.FeatEatingIrregularity] > 0.5 {
		factors = append(factors, "Irregular eating patterns")
	}
	if v[models.FeatInactiveDays] > 3 {
		factors = append(factors, fmt.Sprintf("%d inactive days", int(v[models.FeatInactiveDays])))
	}
	if v[models.FeatAvgFacialEmotionScore] < -0.3 {
		factors = append(factors, "Consistently negative facial expressions")
	}
	if v[models.FeatEmergencyButtonPresses] > 0 {
		factors = append(factors, fmt.Sprintf("🚨 Emergency button pressed %d time(s)", int(v[models.FeatEmergencyButtonPresses])))
	}

	if len(factors) == 0 {
		return []string{NoConcernsFactor}
	}
	return factors
}

// GenerateRecommendations 按风险等级生成建议列表
// 关键词匹配基于渲染后的因素文本（与因素措辞保持一致）
func GenerateRecommendations(riskLevel string, factors []string) []string {
	switch riskLevel {
	case models.RiskSafe:
		return []string{
			"✅ Continue regular monitoring",
			"Maintain current care routine",
			"Encourage social activities and engagement",
		}

	case models.RiskMonitor:
		recs := []string{"📊 Increase check-in frequency"}
		factorsLower := strings.ToLower(strings.Join(factors, " "))

		if strings.Contains(factorsLower, "lonely") {
			recs = append(recs, "💬 Arrange family visit or video call")
		}
		if strings.Contains(factorsLower, "health") || strings.Contains(factorsLower, "pain") {
			recs = append(recs, "🏥 Schedule medical consultation")
		}
		if strings.Contains(factorsLower, "eating") || strings.Contains(factorsLower, "meal") {
			recs = append(recs, "🍽️ Verify food availability and appetite")
		}
		if strings.Contains(factorsLower, "medicine") || strings.Contains(factorsLower, "medication") {
			recs = append(recs, "💊 Set up medication reminders or assistance")
		}
		if strings.Contains(factorsLower, "sleep") {
			recs = append(recs, "😴 Assess sleep environment and habits")
		}
		if strings.Contains(factorsLower, "inactive") {
			recs = append(recs, "🚶 Encourage light physical activity")
		}

		if len(recs) > 5 {
			recs = recs[:5]
		}
		return recs

	default: // HIGH_RISK
		recs := []string{"⚠️ IMMEDIATE ACTION REQUIRED"}
		factorsLower := strings.ToLower(strings.Join(factors, " "))

		if strings.Contains(factorsLower, "fall") {
			recs = append(recs, "🚨 Contact IMMEDIATELY to verify safety after fall")
		}
		if strings.Contains(factorsLower, "eating") && strings.Contains(factorsLower, "day") {
			recs = append(recs, "🚨 URGENT: Check food situation immediately")
		}
		if strings.Contains(factorsLower, "distress") {
			recs = append(recs, "🚨 Contact immediately - emotional distress detected")
		}
		if strings.Contains(factorsLower, "inactivity") {
			recs = append(recs, "🚨 Verify wellbeing - prolonged inactivity detected")
		}
		if strings.Contains(factorsLower, "emergency") {
			recs = append(recs, "🚨 RESPOND TO EMERGENCY BUTTON - contact now")
		}

		recs = append(recs,
			"📞 Schedule immediate check-in or visit",
			"📋 Evaluate need for increased care level",
			"📊 Monitor closely for next 24-48 hours",
		)

		if len(recs) > 7 {
			recs = recs[:7]
		}
		return recs
	}
}
