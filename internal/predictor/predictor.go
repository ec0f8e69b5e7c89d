package predictor

import (
	"time"

	"elderguard/internal/features"
	"elderguard/internal/models"

	"go.uber.org/zap"
)

// Predictor 多模态风险预测器
// 构造时选定评分路径（模型或规则回退），进程生命周期内不再切换；
// 调用方只能通过结果中的 model_used 标识区分路径
type Predictor struct {
	model  *ModelArtifact
	logger *zap.Logger
	now    func() time.Time
}

// New 创建预测器；模型加载失败时透明回退到规则评分
func New(modelPath string, logger *zap.Logger) *Predictor {
	p := &Predictor{
		logger: logger,
		now:    time.Now,
	}

	if modelPath != "" {
		model, err := LoadModel(modelPath)
		if err != nil {
			logger.Warn("No usable trained model, using rule-based fallback",
				zap.String("path", modelPath),
				zap.Error(err),
			)
		} else {
			p.model = model
			logger.Info("Risk model loaded",
				zap.String("path", modelPath),
				zap.Int("trees", len(model.Trees)),
			)
		}
	} else {
		logger.Info("No model path configured, using rule-based scoring")
	}

	return p
}

// ModelLoaded 模型是否可用
func (p *Predictor) ModelLoaded() bool {
	return p.model != nil
}

// Score 评分：两种路径的统一契约
func (p *Predictor) Score(v models.FeatureVector) ScoreResult {
	if p.model == nil {
		return scoreWithRules(v)
	}

	probs := p.model.PredictProba(v)
	idx := p.model.Predict(v)

	return ScoreResult{
		Label: models.RiskLabels[idx],
		Score: round3(probs[idx]),
		Probabilities: models.RiskProbability{
			Safe:     probs[0],
			Monitor:  probs[1],
			HighRisk: probs[2],
		},
	}
}

// PredictRisk 完整的风险评估：特征提取 → 评分 → 因素识别 → 建议生成
func (p *Predictor) PredictRisk(s *models.Summaries) *models.RiskAssessment {
	v := features.Extract(s)

	result := p.Score(v)
	factors := IdentifyFactors(v)
	recommendations := GenerateRecommendations(result.Label, factors)

	modelUsed := models.ModelUsedRuleBased
	if p.model != nil {
		modelUsed = models.ModelUsedForest
	}

	return &models.RiskAssessment{
		RiskLevel:           result.Label,
		RiskScore:           result.Score,
		RiskProbability:     result.Probabilities,
		ContributingFactors: factors,
		Recommendations:     recommendations,
		Features:            v.ToMap(),
		DataSourcesUsed:     features.DataSourcesUsed(s),
		ModelUsed:           modelUsed,
		Timestamp:           p.now(),
	}
}

// FeatureImportance 特征重要度
// 模型可用时读取训练产物，否则返回基于领域知识的静态重要度
func (p *Predictor) FeatureImportance() map[string]float64 {
	if p.model != nil && len(p.model.Importances) == models.FeatureCount {
		m := make(map[string]float64, models.FeatureCount)
		for i, name := range models.FeatureNames {
			m[name] = round3(p.model.Importances[i])
		}
		return m
	}

	return map[string]float64{
		"fall_detected_count":      0.15,
		"emergency_button_presses": 0.14,
		"days_without_eating":      0.12,
		"distress_episodes":        0.10,
		"camera_inactivity_hours":  0.09,
		"pain_expression_count":    0.08,
		"medicine_missed":          0.07,
		"avg_sentiment_7days":      0.06,
		"sad_mood_count":           0.05,
		"avg_facial_emotion_score": 0.04,
		"sleep_quality_score":      0.03,
		"eating_irregularity":      0.03,
		"health_complaints":        0.02,
		"inactive_days":            0.01,
		"lonely_mentions":          0.01,
	}
}
