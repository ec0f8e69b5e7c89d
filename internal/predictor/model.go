package predictor

import (
	"encoding/json"
	"fmt"
	"os"

	"elderguard/internal/models"
)

// TreeNode 决策树节点；Feature 为 -1 时是叶子节点
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"` // 叶子节点的类别概率分布
}

// ModelArtifact 训练产物（随机森林的 JSON 导出）
// 特征顺序必须与训练时一致，加载时校验
type ModelArtifact struct {
	Classes      []string     `json:"classes"`
	FeatureNames []string     `json:"feature_names"`
	Trees        [][]TreeNode `json:"trees"`
	Importances  []float64    `json:"feature_importances,omitempty"`
}

// LoadModel 从文件加载模型产物并校验结构
func LoadModel(path string) (*ModelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var m ModelArtifact
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model file: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	return &m, nil
}

// validate 校验类别顺序和特征顺序（顺序错误会静默破坏预测结果）
func (m *ModelArtifact) validate() error {
	if len(m.Classes) != len(models.RiskLabels) {
		return fmt.Errorf("expected %d classes, got %d", len(models.RiskLabels), len(m.Classes))
	}
	for i, label := range models.RiskLabels {
		if m.Classes[i] != label {
			return fmt.Errorf("class order mismatch at index %d: expected %s, got %s", i, label, m.Classes[i])
		}
	}

	if len(m.FeatureNames) != models.FeatureCount {
		return fmt.Errorf("expected %d features, got %d", models.FeatureCount, len(m.FeatureNames))
	}
	for i, name := range models.FeatureNames {
		if m.FeatureNames[i] != name {
			return fmt.Errorf("feature order mismatch at index %d: expected %s, got %s", i, name, m.FeatureNames[i])
		}
	}

	if len(m.Trees) == 0 {
		return fmt.Errorf("model has no trees")
	}
	return nil
}

// PredictProba 返回各类别的概率分布（所有树叶子分布的平均）
func (m *ModelArtifact) PredictProba(v models.FeatureVector) []float64 {
	probs := make([]float64, len(m.Classes))

	for _, tree := range m.Trees {
		leaf := m.walkTree(tree, v)
		for i := range probs {
			if i < len(leaf) {
				probs[i] += leaf[i]
			}
		}
	}

	n := float64(len(m.Trees))
	for i := range probs {
		probs[i] /= n
	}
	return probs
}

// Predict 返回预测的类别索引
func (m *ModelArtifact) Predict(v models.FeatureVector) int {
	probs := m.PredictProba(v)
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return best
}

func (m *ModelArtifact) walkTree(tree []TreeNode, v models.FeatureVector) []float64 {
	idx := 0
	for {
		node := tree[idx]
		if node.Feature < 0 {
			return node.Value
		}
		if v[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
