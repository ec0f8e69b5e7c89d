package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FCM 通知正文的长度上限
const fcmBodyLimit = 500

// PushSender 推送通知发送能力
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FCMClient Firebase Cloud Messaging 推送客户端
// 未配置 server key 时进入 mock 模式：同样的接口，确定性地返回成功
type FCMClient struct {
	httpClient *resty.Client
	serverKey  string
	logger     *zap.Logger
}

// NewFCMClient 创建 FCM 客户端
func NewFCMClient(endpoint, serverKey string, timeout time.Duration, logger *zap.Logger) *FCMClient {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	if serverKey != "" {
		client.SetHeader("Authorization", "key="+serverKey)
	} else {
		logger.Warn("FCM server key not configured, push channel running in mock mode")
	}

	return &FCMClient{
		httpClient: client,
		serverKey:  serverKey,
		logger:     logger,
	}
}

// fcmMessage FCM 下行消息
type fcmMessage struct {
	To           string            `json:"to"`
	Priority     string            `json:"priority"`
	Notification fcmNotification   `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

// Send 发送推送通知
func (c *FCMClient) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if c.serverKey == "" {
		// mock 模式：记录并视为成功
		c.logger.Debug("FCM mock send",
			zap.String("title", title),
		)
		return nil
	}

	if len(body) > fcmBodyLimit {
		body = body[:fcmBodyLimit]
	}

	msg := fcmMessage{
		To:       token,
		Priority: "high",
		Notification: fcmNotification{
			Title: title,
			Body:  body,
			Sound: "default",
		},
		Data: data,
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(msg).
		Post("")
	if err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("fcm send failed: status %d", resp.StatusCode())
	}

	c.logger.Debug("FCM sent",
		zap.Int("status", resp.StatusCode()),
	)
	return nil
}
