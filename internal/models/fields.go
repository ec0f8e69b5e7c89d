package models

import (
	"encoding/json"
	"fmt"
)

// Fields 单个模态的原始摘要（来自外部分析服务的 JSON 对象）
// 字段缺失或类型错误时，访问器返回默认值，不报错
type Fields map[string]interface{}

// Float 读取浮点字段，缺失或类型错误时返回 def
func (f Fields) Float(key string, def float64) float64 {
	if f == nil {
		return def
	}
	switch v := f[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if n, err := v.Float64(); err == nil {
			return n
		}
	}
	return def
}

// Int 读取整数字段，缺失或类型错误时返回 def
func (f Fields) Int(key string, def int) int {
	if f == nil {
		return def
	}
	switch v := f[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return def
}

// Bool 读取布尔字段，缺失或类型错误时返回 false
func (f Fields) Bool(key string) bool {
	if f == nil {
		return false
	}
	if v, ok := f[key].(bool); ok {
		return v
	}
	return false
}

// Str 读取字符串字段，缺失或类型错误时返回 def
func (f Fields) Str(key string, def string) string {
	if f == nil {
		return def
	}
	if v, ok := f[key].(string); ok {
		return v
	}
	return def
}

// Has 字段是否存在
func (f Fields) Has(key string) bool {
	if f == nil {
		return false
	}
	_, ok := f[key]
	return ok
}

// Summaries 五个模态的摘要集合；任一模态可为 nil（整体缺失）
type Summaries struct {
	Chat     Fields `json:"chat_data,omitempty"`
	Mood     Fields `json:"mood_data,omitempty"`
	Vision   Fields `json:"vision_data,omitempty"`
	Activity Fields `json:"activity_data,omitempty"`
	Health   Fields `json:"health_data,omitempty"`
}

// ValidationError 结构性非法输入（模态不是 JSON 对象等）
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DecodeSummaries 从原始 JSON 解码模态摘要
// 模态缺失 → nil（正常降级）；模态存在但不是对象 → ValidationError
func DecodeSummaries(raw map[string]json.RawMessage) (*Summaries, error) {
	s := &Summaries{}

	decode := func(key string, dst *Fields) error {
		data, ok := raw[key]
		if !ok || string(data) == "null" {
			return nil
		}
		var fields Fields
		if err := json.Unmarshal(data, &fields); err != nil {
			return &ValidationError{Field: key, Reason: "must be a JSON object"}
		}
		*dst = fields
		return nil
	}

	if err := decode("chat_data", &s.Chat); err != nil {
		return nil, err
	}
	if err := decode("mood_data", &s.Mood); err != nil {
		return nil, err
	}
	if err := decode("vision_data", &s.Vision); err != nil {
		return nil, err
	}
	if err := decode("activity_data", &s.Activity); err != nil {
		return nil, err
	}
	if err := decode("health_data", &s.Health); err != nil {
		return nil, err
	}

	return s, nil
}
