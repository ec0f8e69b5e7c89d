package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_Accessors(t *testing.T) {
	f := Fields{
		"float_val":  3.5,
		"int_val":    float64(7), // JSON 数字解码为 float64
		"bool_val":   true,
		"string_val": "high",
	}

	assert.Equal(t, 3.5, f.Float("float_val", 0))
	assert.Equal(t, 7, f.Int("int_val", 0))
	assert.True(t, f.Bool("bool_val"))
	assert.Equal(t, "high", f.Str("string_val", "low"))
	assert.True(t, f.Has("float_val"))
	assert.False(t, f.Has("missing"))
}

func TestFields_MissingKeysReturnDefaults(t *testing.T) {
	f := Fields{}

	assert.Equal(t, 1.0, f.Float("missing", 1.0))
	assert.Equal(t, 5, f.Int("missing", 5))
	assert.False(t, f.Bool("missing"))
	assert.Equal(t, "low", f.Str("missing", "low"))
}

func TestFields_WrongTypesReturnDefaults(t *testing.T) {
	// 字段存在但类型错误时不报错，返回默认值
	f := Fields{
		"count":    "not a number",
		"flag":     "yes",
		"level":    12,
		"fraction": true,
	}

	assert.Equal(t, 0, f.Int("count", 0))
	assert.False(t, f.Bool("flag"))
	assert.Equal(t, "low", f.Str("level", "low"))
	assert.Equal(t, 0.5, f.Float("fraction", 0.5))
}

func TestFields_NilMap(t *testing.T) {
	var f Fields

	assert.Equal(t, 0.0, f.Float("key", 0.0))
	assert.Equal(t, 0, f.Int("key", 0))
	assert.False(t, f.Bool("key"))
	assert.False(t, f.Has("key"))
}

func TestDecodeSummaries(t *testing.T) {
	raw := map[string]json.RawMessage{
		"chat_data":   json.RawMessage(`{"avg_sentiment": -0.5, "lonely_mentions": 4}`),
		"vision_data": json.RawMessage(`{"fall_detected": true}`),
	}

	s, err := DecodeSummaries(raw)
	require.NoError(t, err)

	assert.Equal(t, -0.5, s.Chat.Float("avg_sentiment", 0))
	assert.Equal(t, 4, s.Chat.Int("lonely_mentions", 0))
	assert.True(t, s.Vision.Bool("fall_detected"))

	// 缺失的模态为 nil
	assert.Nil(t, s.Mood)
	assert.Nil(t, s.Activity)
	assert.Nil(t, s.Health)
}

func TestDecodeSummaries_NonObjectModality(t *testing.T) {
	raw := map[string]json.RawMessage{
		"mood_data": json.RawMessage(`"not an object"`),
	}

	_, err := DecodeSummaries(raw)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "mood_data", validationErr.Field)
}

func TestDecodeSummaries_NullModality(t *testing.T) {
	// null 按缺失处理，不报错
	raw := map[string]json.RawMessage{
		"health_data": json.RawMessage(`null`),
	}

	s, err := DecodeSummaries(raw)
	require.NoError(t, err)
	assert.Nil(t, s.Health)
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 4, SeverityRank(SeverityCritical))
	assert.Equal(t, 3, SeverityRank(SeverityHigh))
	assert.Equal(t, 2, SeverityRank(SeverityMedium))
	assert.Equal(t, 1, SeverityRank(SeverityLow))
	assert.Equal(t, 0, SeverityRank("unknown"))
}

func TestFeatureVector_ToMap(t *testing.T) {
	var v FeatureVector
	v[FeatFallDetectedCount] = 2
	v[FeatSleepQualityScore] = 0.8

	m := v.ToMap()
	require.Len(t, m, FeatureCount)
	assert.Equal(t, 2.0, m["fall_detected_count"])
	assert.Equal(t, 0.8, m["sleep_quality_score"])
	assert.Equal(t, 0.0, m["lonely_mentions"])
}
