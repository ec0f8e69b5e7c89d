package emergency

import (
	"sort"
	"strings"
	"time"

	"elderguard/internal/models"

	"go.uber.org/zap"
)

// 紧急检测阈值（偏向误报而不是漏报）
const (
	fallNoMovementMinutes  = 5    // 跌倒后无移动判定为危急的分钟数
	daysWithoutEatingLimit = 2    // 断食天数的医疗紧急阈值
	inactivityHoursHigh    = 18.0 // 长时间无活动（高）
	inactivityHoursMedium  = 12.0 // 长时间无活动（中）
	painScoreThreshold     = 0.7  // 高疼痛指征
	combinedRiskFactors    = 3    // 组合风险因素触发数量
)

// Detector 紧急情况检测器
// 每次调用无状态；七项检查按固定顺序评估，收集全部触发项后按严重级别选出首要事件
type Detector struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewDetector 创建紧急检测器
func NewDetector(logger *zap.Logger) *Detector {
	return &Detector{
		logger: logger,
		now:    time.Now,
	}
}

// Detect 评估全部紧急条件
// 模态或字段缺失视为"条件未满足"，不会因缺数据失败；
// 没有任何触发项时返回完整的"无紧急"结果
func (d *Detector) Detect(s *models.Summaries) *models.EmergencyResult {
	if s == nil {
		s = &models.Summaries{}
	}

	var candidates []models.EmergencyCandidate

	// 检查1：跌倒
	if c := d.checkFall(s.Vision); c != nil {
		candidates = append(candidates, *c)
	}

	// 检查2：极端情绪困扰
	if c := d.checkDistress(s.Vision); c != nil {
		candidates = append(candidates, *c)
	}

	// 检查3：严重疼痛
	if c := d.checkPain(s.Vision, s.Health); c != nil {
		candidates = append(candidates, *c)
	}

	// 检查4：长时间未进食
	if c := d.checkEating(s.Activity); c != nil {
		candidates = append(candidates, *c)
	}

	// 检查5：长时间无活动
	if c := d.checkInactivity(s.Activity); c != nil {
		candidates = append(candidates, *c)
	}

	// 检查6：紧急按钮
	if c := d.checkEmergencyButton(s.Health); c != nil {
		candidates = append(candidates, *c)
	}

	// 检查7：组合风险因素
	if c := d.checkCombinedRisks(s.Vision, s.Activity, s.Health); c != nil {
		candidates = append(candidates, *c)
	}

	if len(candidates) == 0 {
		return &models.EmergencyResult{
			Emergency:   false,
			Severity:    models.SeverityNone,
			AllConcerns: []models.EmergencyCandidate{},
			Timestamp:   d.now(),
		}
	}

	// 按严重级别降序（稳定排序，同级保持检查顺序）
	sort.SliceStable(candidates, func(i, j int) bool {
		return models.SeverityRank(candidates[i].Severity) > models.SeverityRank(candidates[j].Severity)
	})

	top := candidates[0]

	d.logger.Error("EMERGENCY DETECTED",
		zap.String("type", top.Type),
		zap.String("severity", top.Severity),
		zap.Int("total_concerns", len(candidates)),
	)

	return &models.EmergencyResult{
		Emergency:         true,
		EmergencyType:     &top.Type,
		Severity:          top.Severity,
		AlertMessage:      &top.Message,
		RecommendedAction: &top.Action,
		AllConcerns:       candidates,
		TotalEmergencies:  len(candidates),
		Timestamp:         d.now(),
	}
}

// PriorityScore 紧急事件的路由优先级（0-100，越高越紧急）
func PriorityScore(result *models.EmergencyResult) int {
	if result == nil || !result.Emergency {
		return 0
	}

	score := 0
	switch result.Severity {
	case models.SeverityCritical:
		score = 100
	case models.SeverityHigh:
		score = 75
	case models.SeverityMedium:
		score = 50
	case models.SeverityLow:
		score = 25
	}

	if result.EmergencyType != nil {
		emergencyType := *result.EmergencyType
		if strings.Contains(emergencyType, "fall") || strings.Contains(emergencyType, "emergency_button") {
			score += 10
		} else if strings.Contains(emergencyType, "no_eating") {
			score += 5
		}
		if score > 100 {
			score = 100
		}
	}

	return score
}
