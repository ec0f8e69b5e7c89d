package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"elderguard/internal/models"

	"go.uber.org/zap"
)

// AlertLogRepository 报警审计记录仓库（alert_log 表，仅追加）
type AlertLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAlertLogRepository 创建报警审计仓库
func NewAlertLogRepository(db *sql.DB, logger *zap.Logger) *AlertLogRepository {
	return &AlertLogRepository{
		db:     db,
		logger: logger,
	}
}

// LogAlert 追加一条报警审计记录
func (r *AlertLogRepository) LogAlert(ctx context.Context, entry *models.AlertLog) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	if entry.ElderID == "" {
		return fmt.Errorf("elder_id is required")
	}

	query := `
		INSERT INTO alert_log (
			log_id,
			elder_id,
			alert_type,
			severity,
			message,
			action,
			recipients,
			fcm_sent,
			sms_sent,
			failed,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.ExecContext(ctx,
		query,
		entry.LogID,
		entry.ElderID,
		entry.AlertType,
		entry.Severity,
		entry.Message,
		entry.Action,
		entry.Recipients,
		entry.FCMSent,
		entry.SMSSent,
		entry.Failed,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert log: %w", err)
	}

	return nil
}

// GetRecentAlerts 查询某个老人最近的报警记录（审计/前端展示用）
func (r *AlertLogRepository) GetRecentAlerts(ctx context.Context, elderID string, since time.Time, limit int) ([]models.AlertLog, error) {
	if elderID == "" {
		return nil, fmt.Errorf("elder_id is required")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			log_id,
			elder_id,
			alert_type,
			severity,
			message,
			action,
			recipients,
			fcm_sent,
			sms_sent,
			failed,
			created_at
		FROM alert_log
		WHERE elder_id = $1
		  AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, query, elderID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alert log: %w", err)
	}
	defer rows.Close()

	var logs []models.AlertLog
	for rows.Next() {
		var entry models.AlertLog
		if err := rows.Scan(
			&entry.LogID,
			&entry.ElderID,
			&entry.AlertType,
			&entry.Severity,
			&entry.Message,
			&entry.Action,
			&entry.Recipients,
			&entry.FCMSent,
			&entry.SMSSent,
			&entry.Failed,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan alert log row: %w", err)
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alert log rows: %w", err)
	}

	return logs, nil
}
