package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"elderguard/internal/models"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// RiskService 处理器依赖的服务能力
type RiskService interface {
	AssessRisk(ctx context.Context, summaries *models.Summaries) *models.RiskAssessment
	CheckEmergency(ctx context.Context, summaries *models.Summaries) *models.EmergencyResult
	SendAlert(ctx context.Context, elderID, elderName string, emergency *models.EmergencyResult, recipients []models.Recipient) (*models.DispatchResult, error)
	FeatureImportance() map[string]float64
	ModelLoaded() bool
}

// RiskHandler 风险评估与报警 API
type RiskHandler struct {
	service RiskService
	logger  *zap.Logger
}

// NewRiskHandler 创建风险评估处理器
func NewRiskHandler(svc RiskService, logger *zap.Logger) *RiskHandler {
	return &RiskHandler{
		service: svc,
		logger:  logger,
	}
}

// decodeAssessBody 解析评估请求：elder_id + 五个模态摘要
func decodeAssessBody(r *http.Request) (string, *models.Summaries, error) {
	var raw map[string]json.RawMessage
	if err := readBodyJSON(r, maxBodyBytes, &raw); err != nil {
		return "", nil, &models.ValidationError{Field: "body", Reason: "must be a JSON object"}
	}

	var elderID string
	if data, ok := raw["elder_id"]; ok {
		if err := json.Unmarshal(data, &elderID); err != nil {
			return "", nil, &models.ValidationError{Field: "elder_id", Reason: "must be a string"}
		}
	}
	if elderID == "" {
		return "", nil, &models.ValidationError{Field: "elder_id", Reason: "is required"}
	}

	summaries, err := models.DecodeSummaries(raw)
	if err != nil {
		return "", nil, err
	}
	return elderID, summaries, nil
}

// PredictRisk POST /api/v1/predict-risk
func (h *RiskHandler) PredictRisk(w http.ResponseWriter, r *http.Request) {
	elderID, summaries, err := decodeAssessBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	assessment := h.service.AssessRisk(r.Context(), summaries)

	h.logger.Info("Risk assessed",
		zap.String("elder_id", elderID),
		zap.String("risk_level", assessment.RiskLevel),
		zap.Float64("risk_score", assessment.RiskScore),
	)
	writeJSON(w, http.StatusOK, Ok(assessment))
}

// CheckEmergency POST /api/v1/check-emergency
func (h *RiskHandler) CheckEmergency(w http.ResponseWriter, r *http.Request) {
	elderID, summaries, err := decodeAssessBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	result := h.service.CheckEmergency(r.Context(), summaries)

	if result.Emergency {
		h.logger.Warn("Emergency reported via API",
			zap.String("elder_id", elderID),
			zap.String("severity", result.Severity),
		)
	}
	writeJSON(w, http.StatusOK, Ok(result))
}

// sendAlertRequest 报警分发请求
type sendAlertRequest struct {
	ElderID    string                  `json:"elder_id"`
	ElderName  string                  `json:"elder_name"`
	Emergency  *models.EmergencyResult `json:"emergency"`
	Recipients []models.Recipient      `json:"recipients"`
}

// SendAlert POST /api/v1/send-alert
func (h *RiskHandler) SendAlert(w http.ResponseWriter, r *http.Request) {
	var req sendAlertRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body: must be a JSON object"))
		return
	}
	if req.ElderID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("invalid elder_id: is required"))
		return
	}
	if req.Emergency == nil || !req.Emergency.Emergency {
		writeJSON(w, http.StatusBadRequest, Fail("invalid emergency: no active emergency to dispatch"))
		return
	}
	if req.ElderName == "" {
		req.ElderName = req.ElderID
	}

	result, err := h.service.SendAlert(r.Context(), req.ElderID, req.ElderName, req.Emergency, req.Recipients)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(result))
}

// FeatureImportance GET /api/v1/feature-importance
func (h *RiskHandler) FeatureImportance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.service.FeatureImportance()))
}

// Health GET /health
func (h *RiskHandler) Health(w http.ResponseWriter, r *http.Request) {
	modelStatus := "rule_based_fallback"
	if h.service.ModelLoaded() {
		modelStatus = "loaded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"model":  modelStatus,
	})
}
