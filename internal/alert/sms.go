package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SMS 正文的长度上限
const smsBodyLimit = 1600

// SMSSender 短信发送能力
type SMSSender interface {
	Send(ctx context.Context, phone, body string) error
}

// TwilioClient Twilio 短信客户端
// 未配置凭证时进入 mock 模式：同样的接口，确定性地返回成功
type TwilioClient struct {
	httpClient *resty.Client
	accountSID string
	fromPhone  string
	enabled    bool
	logger     *zap.Logger
}

// NewTwilioClient 创建 Twilio 客户端
func NewTwilioClient(endpoint, accountSID, authToken, fromPhone string, timeout time.Duration, logger *zap.Logger) *TwilioClient {
	enabled := accountSID != "" && authToken != "" && fromPhone != ""
	if !enabled {
		logger.Warn("Twilio credentials not configured, SMS channel running in mock mode")
	}

	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(timeout)
	if enabled {
		client.SetBasicAuth(accountSID, authToken)
	}

	return &TwilioClient{
		httpClient: client,
		accountSID: accountSID,
		fromPhone:  fromPhone,
		enabled:    enabled,
		logger:     logger,
	}
}

// Send 发送短信
func (c *TwilioClient) Send(ctx context.Context, phone, body string) error {
	if !c.enabled {
		// mock 模式：记录并视为成功
		c.logger.Debug("SMS mock send",
			zap.String("to", phone),
		)
		return nil
	}

	if len(body) > smsBodyLimit {
		body = body[:smsBodyLimit]
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   phone,
			"From": c.fromPhone,
			"Body": body,
		}).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", c.accountSID))
	if err != nil {
		return fmt.Errorf("sms send failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms send failed: status %d", resp.StatusCode())
	}

	c.logger.Info("SMS sent",
		zap.String("to", phone),
	)
	return nil
}
