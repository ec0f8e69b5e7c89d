package features

import (
	"elderguard/internal/models"
)

// Extract 从五个模态摘要提取 15 维特征向量
// 模态或字段缺失时使用"无异常"默认值（sentiment=0、sleep_quality=1、计数=0），
// 不会因数据缺失失败
func Extract(s *models.Summaries) models.FeatureVector {
	if s == nil {
		s = &models.Summaries{}
	}

	var v models.FeatureVector

	// 聊天摘要
	v[models.FeatAvgSentiment7Days] = s.Chat.Float("avg_sentiment", 0.0)
	v[models.FeatLonelyMentions] = float64(s.Chat.Int("lonely_mentions", 0))
	v[models.FeatHealthComplaints] = float64(s.Chat.Int("health_complaints", 0))

	// 情绪打卡摘要
	v[models.FeatSadMoodCount] = float64(s.Mood.Int("sad_count", 0))
	v[models.FeatInactiveDays] = float64(s.Mood.Int("inactive_days", 0))

	// 视觉/摄像头摘要
	v[models.FeatAvgFacialEmotionScore] = s.Vision.Float("emotion_score", 0.0)
	v[models.FeatFallDetectedCount] = float64(s.Vision.Int("fall_count", 0))
	v[models.FeatDistressEpisodes] = float64(s.Vision.Int("distress_count", 0))
	v[models.FeatPainExpressionCount] = float64(s.Vision.Int("pain_count", 0))
	v[models.FeatCameraInactivityHours] = s.Vision.Float("inactivity_hours", 0.0)

	// 活动摘要
	v[models.FeatEatingIrregularity] = s.Activity.Float("eating_irregularity", 0.0)
	v[models.FeatSleepQualityScore] = s.Activity.Float("sleep_quality", 1.0)
	v[models.FeatDaysWithoutEating] = float64(s.Activity.Int("days_without_eating", 0))

	// 健康摘要
	v[models.FeatMedicineMissed] = float64(s.Health.Int("medicine_missed", 0))
	v[models.FeatEmergencyButtonPresses] = float64(s.Health.Int("emergency_button_presses", 0))

	return v
}

// DataSourcesUsed 记录哪些模态实际提供了数据
func DataSourcesUsed(s *models.Summaries) map[string]bool {
	if s == nil {
		s = &models.Summaries{}
	}
	return map[string]bool{
		"chat":     s.Chat != nil,
		"mood":     s.Mood != nil,
		"vision":   s.Vision != nil,
		"activity": s.Activity != nil,
		"health":   s.Health != nil,
	}
}
