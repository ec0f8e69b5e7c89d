package predictor

import (
	"testing"

	"elderguard/internal/models"

	"github.com/stretchr/testify/assert"
)

// healthyVector 无异常基线（sleep_quality=1，其余为 0）
func healthyVector() models.FeatureVector {
	var v models.FeatureVector
	v[models.FeatSleepQualityScore] = 1.0
	return v
}

func TestScoreWithRules_HealthyBaseline(t *testing.T) {
	result := scoreWithRules(healthyVector())

	// 原始分数 0 → 归一化 2/12 ≈ 0.167 → SAFE
	assert.Equal(t, models.RiskSafe, result.Label)
	assert.InDelta(t, 0.167, result.Score, 0.001)
}

func TestScoreWithRules_PositiveSignalsLowerScore(t *testing.T) {
	v := healthyVector()
	v[models.FeatAvgSentiment7Days] = 0.8
	v[models.FeatAvgFacialEmotionScore] = 0.6

	result := scoreWithRules(v)

	baseline := scoreWithRules(healthyVector())
	assert.Equal(t, models.RiskSafe, result.Label)
	assert.Less(t, result.Score, baseline.Score)
}

func TestScoreWithRules_FallDrivesHighRisk(t *testing.T) {
	v := healthyVector()
	v[models.FeatFallDetectedCount] = 2
	v[models.FeatDistressEpisodes] = 1

	// 原始分数 3*2 + 1.5 = 7.5 → 归一化 9.5/12 ≈ 0.79
	result := scoreWithRules(v)

	assert.Equal(t, models.RiskHighRisk, result.Label)
	assert.Greater(t, result.Score, 0.6)
}

func TestScoreWithRules_EmergencyButtonDrivesHighRisk(t *testing.T) {
	v := healthyVector()
	v[models.FeatEmergencyButtonPresses] = 2

	// 原始分数 8 → 归一化 10/12 ≈ 0.83
	result := scoreWithRules(v)
	assert.Equal(t, models.RiskHighRisk, result.Label)
}

func TestScoreWithRules_ModerateSignalsMonitor(t *testing.T) {
	v := healthyVector()
	v[models.FeatDistressEpisodes] = 2
	v[models.FeatSadMoodCount] = 3

	// 原始分数 3 + 0.9 = 3.9 → 归一化 5.9/12 ≈ 0.49 → MONITOR
	result := scoreWithRules(v)
	assert.Equal(t, models.RiskMonitor, result.Label)
}

func TestScoreWithRules_BoundaryBelongsToHigherBand(t *testing.T) {
	// 归一化分数恰好 0.3 属于 MONITOR
	v := healthyVector()
	v[models.FeatMedicineMissed] = 4 // 原始分数 1.6 → (1.6+2)/12 = 0.3
	assert.Equal(t, models.RiskMonitor, scoreWithRules(v).Label)

	// 归一化分数恰好 0.6 属于 HIGH_RISK
	v = healthyVector()
	v[models.FeatMedicineMissed] = 13 // 原始分数 5.2 → (5.2+2)/12 = 0.6
	assert.Equal(t, models.RiskHighRisk, scoreWithRules(v).Label)
}

func TestScoreWithRules_ScoreClampedToUnitRange(t *testing.T) {
	// 极端负向信号：原始分数低于 -2
	v := healthyVector()
	v[models.FeatAvgSentiment7Days] = 1.0
	v[models.FeatAvgFacialEmotionScore] = 1.0

	result := scoreWithRules(v)
	assert.GreaterOrEqual(t, result.Score, 0.0)

	// 极端正向风险：原始分数远超 10
	v = healthyVector()
	v[models.FeatFallDetectedCount] = 10
	v[models.FeatEmergencyButtonPresses] = 10

	result = scoreWithRules(v)
	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, models.RiskHighRisk, result.Label)
}

func TestScoreWithRules_ProbabilitiesSumToOne(t *testing.T) {
	vectors := []models.FeatureVector{
		healthyVector(),
		func() models.FeatureVector {
			v := healthyVector()
			v[models.FeatDistressEpisodes] = 2
			return v
		}(),
		func() models.FeatureVector {
			v := healthyVector()
			v[models.FeatFallDetectedCount] = 3
			v[models.FeatEmergencyButtonPresses] = 1
			return v
		}(),
		func() models.FeatureVector {
			v := healthyVector()
			v[models.FeatSadMoodCount] = 5
			v[models.FeatLonelyMentions] = 4
			v[models.FeatCameraInactivityHours] = 15
			return v
		}(),
	}

	for _, v := range vectors {
		probs := scoreWithRules(v).Probabilities
		sum := probs.Safe + probs.Monitor + probs.HighRisk
		assert.InDelta(t, 1.0, sum, 1e-6)
		assert.GreaterOrEqual(t, probs.Safe, 0.0)
		assert.GreaterOrEqual(t, probs.Monitor, 0.0)
		assert.GreaterOrEqual(t, probs.HighRisk, 0.0)
	}
}

func TestScoreWithRules_InactivityFlatBonus(t *testing.T) {
	below := healthyVector()
	below[models.FeatCameraInactivityHours] = 12.0 // 不超过阈值

	above := healthyVector()
	above[models.FeatCameraInactivityHours] = 12.1

	// 超过 12 小时加固定分，不随小时数增长
	assert.Greater(t, scoreWithRules(above).Score, scoreWithRules(below).Score)

	far := healthyVector()
	far[models.FeatCameraInactivityHours] = 24.0
	assert.Equal(t, scoreWithRules(above).Score, scoreWithRules(far).Score)
}

func TestScoreWithRules_PainCountedBeyondThreshold(t *testing.T) {
	atThreshold := healthyVector()
	atThreshold[models.FeatPainExpressionCount] = 2

	assert.Equal(t, scoreWithRules(healthyVector()).Score, scoreWithRules(atThreshold).Score)

	above := healthyVector()
	above[models.FeatPainExpressionCount] = 4 // 超出部分 2 计分
	assert.Greater(t, scoreWithRules(above).Score, scoreWithRules(atThreshold).Score)
}
