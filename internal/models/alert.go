package models

import "time"

// Recipient 报警接收人（家属）
type Recipient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FCMToken string `json:"fcm_token,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// NotifiedRecipient 单个接收人的通知情况
type NotifiedRecipient struct {
	Name string `json:"name"`
	FCM  bool   `json:"fcm"`
	SMS  bool   `json:"sms"`
}

// DispatchResult 一次报警分发的结果
type DispatchResult struct {
	Sent      bool                `json:"sent"`
	Reason    string              `json:"reason,omitempty"` // "rate_limited" 等；成功时为空
	FCMSent   int                 `json:"fcm_sent"`
	SMSSent   int                 `json:"sms_sent"`
	Failed    int                 `json:"failed"`
	Notified  []NotifiedRecipient `json:"family_notified"`
	Timestamp time.Time           `json:"timestamp"`
}

// AlertLog 报警审计记录（对应 alert_log 表，仅追加）
type AlertLog struct {
	LogID      string    `json:"log_id" db:"log_id"`
	ElderID    string    `json:"elder_id" db:"elder_id"`
	AlertType  string    `json:"alert_type" db:"alert_type"`
	Severity   string    `json:"severity" db:"severity"`
	Message    string    `json:"message" db:"message"`
	Action     string    `json:"action" db:"action"`
	Recipients string    `json:"recipients" db:"recipients"` // JSONB：接收人 ID 列表
	FCMSent    int       `json:"fcm_sent" db:"fcm_sent"`
	SMSSent    int       `json:"sms_sent" db:"sms_sent"`
	Failed     int       `json:"failed" db:"failed"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
