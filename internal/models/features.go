package models

// 特征槽位索引（顺序与训练时一致，不可调整）
const (
	FeatAvgSentiment7Days = iota
	FeatSadMoodCount
	FeatLonelyMentions
	FeatHealthComplaints
	FeatInactiveDays
	FeatMedicineMissed
	FeatAvgFacialEmotionScore
	FeatFallDetectedCount
	FeatDistressEpisodes
	FeatEatingIrregularity
	FeatSleepQualityScore
	FeatDaysWithoutEating
	FeatEmergencyButtonPresses
	FeatCameraInactivityHours
	FeatPainExpressionCount

	FeatureCount = 15
)

// FeatureNames 特征名称（按槽位顺序）
var FeatureNames = [FeatureCount]string{
	"avg_sentiment_7days",
	"sad_mood_count",
	"lonely_mentions",
	"health_complaints",
	"inactive_days",
	"medicine_missed",
	"avg_facial_emotion_score",
	"fall_detected_count",
	"distress_episodes",
	"eating_irregularity",
	"sleep_quality_score",
	"days_without_eating",
	"emergency_button_presses",
	"camera_inactivity_hours",
	"pain_expression_count",
}

// FeatureVector 固定 15 维特征向量（槽位顺序即模型输入顺序）
type FeatureVector [FeatureCount]float64

// ToMap 转换为按特征名索引的 map（用于 API 响应）
func (v FeatureVector) ToMap() map[string]float64 {
	m := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames {
		m[name] = v[i]
	}
	return m
}
