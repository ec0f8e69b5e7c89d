package consumer

import (
	"context"
	"fmt"
	"strings"

	"elderguard/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// SummaryHandler 模态摘要消息处理函数
type SummaryHandler func(elderID, modality string, payload []byte) error

// MQTTConsumer 订阅分析服务发布的模态摘要
// 主题格式：elderguard/{elderID}/{modality}
type MQTTConsumer struct {
	config *config.Config
	client mqtt.Client
	logger *zap.Logger
}

// NewMQTTConsumer 创建并连接 MQTT 消费者
func NewMQTTConsumer(cfg *config.Config, logger *zap.Logger) (*MQTTConsumer, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTT.Broker)
	opts.SetClientID(cfg.MQTT.ClientID)

	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
	}
	if cfg.MQTT.Password != "" {
		opts.SetPassword(cfg.MQTT.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTConsumer{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

// Start 订阅摘要主题
func (c *MQTTConsumer) Start(ctx context.Context, handler SummaryHandler) error {
	topic := c.config.MQTT.Topic

	token := c.client.Subscribe(topic, c.config.MQTT.QoS, func(client mqtt.Client, msg mqtt.Message) {
		elderID, modality, err := parseTopic(msg.Topic())
		if err != nil {
			c.logger.Warn("Ignoring message on unexpected topic",
				zap.String("topic", msg.Topic()),
				zap.Error(err),
			)
			return
		}

		if err := handler(elderID, modality, msg.Payload()); err != nil {
			// 记录错误，不中断订阅
			c.logger.Error("Failed to handle summary message",
				zap.String("elder_id", elderID),
				zap.String("modality", modality),
				zap.Error(err),
			)
		}
	})

	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to subscribe to topic %s: %w", topic, token.Error())
	}

	c.logger.Info("MQTT consumer started",
		zap.String("topic", topic),
	)
	return nil
}

// Stop 断开 MQTT 连接
func (c *MQTTConsumer) Stop() {
	c.client.Disconnect(250)
}

// parseTopic 解析主题中的 elderID 和模态名
func parseTopic(topic string) (string, string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 {
		return "", "", fmt.Errorf("expected 3 topic segments, got %d", len(parts))
	}

	elderID := parts[1]
	modality := parts[2]
	if elderID == "" {
		return "", "", fmt.Errorf("empty elder id")
	}

	valid := false
	for _, m := range Modalities {
		if modality == m {
			valid = true
			break
		}
	}
	if !valid {
		return "", "", fmt.Errorf("unknown modality: %s", modality)
	}

	return elderID, modality, nil
}
