package predictor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"elderguard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArtifact 单棵树的最小可用模型：fall_count > 0.5 → HIGH_RISK
func testArtifact() *ModelArtifact {
	return &ModelArtifact{
		Classes:      models.RiskLabels[:],
		FeatureNames: models.FeatureNames[:],
		Trees: [][]TreeNode{
			{
				{Feature: models.FeatFallDetectedCount, Threshold: 0.5, Left: 1, Right: 2},
				{Feature: -1, Value: []float64{0.8, 0.15, 0.05}},
				{Feature: -1, Value: []float64{0.05, 0.15, 0.8}},
			},
		},
	}
}

func writeArtifact(t *testing.T, m *ModelArtifact) string {
	t.Helper()
	data, err := json.Marshal(m)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "risk_model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadModel(t *testing.T) {
	path := writeArtifact(t, testArtifact())

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Len(t, m.Trees, 1)
}

func TestLoadModel_FileMissing(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nonexistent.json"))
	assert.Error(t, err)
}

func TestLoadModel_ClassOrderMismatch(t *testing.T) {
	m := testArtifact()
	m.Classes = []string{"MONITOR", "SAFE", "HIGH_RISK"}

	_, err := LoadModel(writeArtifact(t, m))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class order mismatch")
}

func TestLoadModel_FeatureCountMismatch(t *testing.T) {
	m := testArtifact()
	m.FeatureNames = m.FeatureNames[:10]

	_, err := LoadModel(writeArtifact(t, m))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 15 features")
}

func TestLoadModel_NoTrees(t *testing.T) {
	m := testArtifact()
	m.Trees = nil

	_, err := LoadModel(writeArtifact(t, m))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no trees")
}

func TestModelArtifact_PredictProba(t *testing.T) {
	m := testArtifact()

	v := healthyVector()
	probs := m.PredictProba(v)
	assert.Equal(t, []float64{0.8, 0.15, 0.05}, probs)
	assert.Equal(t, 0, m.Predict(v))

	v[models.FeatFallDetectedCount] = 1
	probs = m.PredictProba(v)
	assert.Equal(t, []float64{0.05, 0.15, 0.8}, probs)
	assert.Equal(t, 2, m.Predict(v))
}

func TestModelArtifact_PredictProbaAveragesTrees(t *testing.T) {
	m := testArtifact()
	// 第二棵树无条件返回 SAFE
	m.Trees = append(m.Trees, []TreeNode{
		{Feature: -1, Value: []float64{1.0, 0.0, 0.0}},
	})

	v := healthyVector()
	v[models.FeatFallDetectedCount] = 1

	probs := m.PredictProba(v)
	assert.InDelta(t, 0.525, probs[0], 1e-9)
	assert.InDelta(t, 0.075, probs[1], 1e-9)
	assert.InDelta(t, 0.4, probs[2], 1e-9)
}
