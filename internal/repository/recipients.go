package repository

import (
	"context"
	"database/sql"
	"fmt"

	"elderguard/internal/models"

	"go.uber.org/zap"
)

// RecipientsRepository 报警接收人（家属）仓库
type RecipientsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRecipientsRepository 创建接收人仓库
func NewRecipientsRepository(db *sql.DB, logger *zap.Logger) *RecipientsRepository {
	return &RecipientsRepository{
		db:     db,
		logger: logger,
	}
}

// GetRecipients 查询某个老人的全部家属联系人
func (r *RecipientsRepository) GetRecipients(ctx context.Context, elderID string) ([]models.Recipient, error) {
	if elderID == "" {
		return nil, fmt.Errorf("elder_id is required")
	}

	query := `
		SELECT
			member_id,
			member_name,
			fcm_token,
			phone
		FROM family_members
		WHERE elder_id = $1
		ORDER BY member_name
	`

	rows, err := r.db.QueryContext(ctx, query, elderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	var recipients []models.Recipient
	for rows.Next() {
		var recipient models.Recipient
		var fcmToken, phone sql.NullString
		if err := rows.Scan(
			&recipient.ID,
			&recipient.Name,
			&fcmToken,
			&phone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan family member row: %w", err)
		}
		if fcmToken.Valid {
			recipient.FCMToken = fcmToken.String
		}
		if phone.Valid {
			recipient.Phone = phone.String
		}
		recipients = append(recipients, recipient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate family member rows: %w", err)
	}

	return recipients, nil
}
