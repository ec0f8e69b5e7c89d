package predictor

import (
	"math"

	"elderguard/internal/models"
)

// ScoreResult 评分结果（两种评分路径共用的契约）
type ScoreResult struct {
	Label         string
	Score         float64
	Probabilities models.RiskProbability
}

// 规则回退评分的特征权重（与训练管线的兼容契约，调整需同步下游）
const (
	weightFall            = 3.0
	weightEmergencyButton = 4.0
	weightDaysNoEating    = 2.5
	weightDistress        = 1.5
	weightInactivityFlat  = 2.0
	weightPainExcess      = 1.0
	weightSentiment       = 1.5
	weightSadMood         = 0.3
	weightLonely          = 0.2
	weightComplaints      = 0.3
	weightMedicineMissed  = 0.4
	weightInactiveDays    = 0.3
	weightFacialEmotion   = 0.5
	weightEatingIrreg     = 0.5
	weightSleepQuality    = 0.5
)

// 归一化分数的等级边界
const (
	safeThreshold    = 0.3
	monitorThreshold = 0.6
)

// scoreWithRules 规则回退评分：15 个特征的加权线性组合
// 原始分数经 clamp((score+2)/12, 0, 1) 归一化后分级
func scoreWithRules(v models.FeatureVector) ScoreResult {
	score := 0.0

	// 关键特征（高权重，随计数线性增长）
	score += weightFall * v[models.FeatFallDetectedCount]
	score += weightEmergencyButton * v[models.FeatEmergencyButtonPresses]
	score += weightDaysNoEating * v[models.FeatDaysWithoutEating]

	// 高重要度特征
	score += weightDistress * v[models.FeatDistressEpisodes]
	if v[models.FeatCameraInactivityHours] > 12 {
		score += weightInactivityFlat
	}
	if v[models.FeatPainExpressionCount] > 2 {
		score += weightPainExcess * (v[models.FeatPainExpressionCount] - 2)
	}

	// 中等重要度特征
	score += -v[models.FeatAvgSentiment7Days] * weightSentiment
	score += v[models.FeatSadMoodCount] * weightSadMood
	score += v[models.FeatLonelyMentions] * weightLonely
	score += v[models.FeatHealthComplaints] * weightComplaints
	score += v[models.FeatMedicineMissed] * weightMedicineMissed
	score += v[models.FeatInactiveDays] * weightInactiveDays

	// 低重要度特征
	score += -v[models.FeatAvgFacialEmotionScore] * weightFacialEmotion
	score += v[models.FeatEatingIrregularity] * weightEatingIrreg
	score += (1 - v[models.FeatSleepQualityScore]) * weightSleepQuality

	// 原始分数典型范围 -2 到 10+
	normalized := math.Min(1.0, math.Max(0.0, (score+2)/12))

	var label string
	var probs models.RiskProbability

	switch {
	case normalized < safeThreshold:
		label = models.RiskSafe
		probs = models.RiskProbability{
			Safe:     1 - normalized,
			Monitor:  normalized * 0.7,
			HighRisk: normalized * 0.3,
		}
	case normalized < monitorThreshold:
		label = models.RiskMonitor
		probs = models.RiskProbability{
			Safe:     (1 - normalized) * 0.5,
			HighRisk: normalized * 0.3,
		}
		probs.Monitor = 1 - probs.Safe - probs.HighRisk
	default:
		label = models.RiskHighRisk
		probs = models.RiskProbability{
			Safe:     (1 - normalized) * 0.3,
			HighRisk: normalized,
		}
		probs.Monitor = 1 - probs.Safe - probs.HighRisk
	}

	return ScoreResult{
		Label:         label,
		Score:         round3(normalized),
		Probabilities: probs,
	}
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
