package config

import (
	"os"
	"strconv"
)

// Config 风险评估服务配置
type Config struct {
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Database string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	MQTT struct {
		Broker   string
		ClientID string
		Username string
		Password string
		Topic    string // 分析服务发布摘要的主题，如 "elderguard/+/+"
		QoS      byte
	}

	HTTP struct {
		Addr string
	}

	// 风险模型配置
	Model struct {
		Path string // 模型文件路径，为空或加载失败时使用规则回退
	}

	// 报警配置
	Alert struct {
		CooldownMinutes int // 同一 (elder, alert_type) 的最小间隔，默认 30分钟
		WindowMinutes   int // 发送记录保留窗口，默认 60分钟
		MaxPerHour      int // 每个老人每小时最多报警次数，默认 10
		ChannelTimeout  int // 单个通知通道的超时（秒），默认 10秒

		FCM struct {
			ServerKey string // 为空时推送通道进入 mock 模式
			Endpoint  string
		}

		Twilio struct {
			AccountSID string
			AuthToken  string
			FromPhone  string
			Endpoint   string
		}
	}

	// Redis 缓存配置
	Cache struct {
		KeyPrefix     string // 模态摘要缓存键前缀，如 "elderguard:elder:"
		SummaryTTL    int    // 模态摘要 TTL（秒），默认 24小时
		AssessmentTTL int    // 评估结果 TTL（秒），默认 30秒
	}

	// 轮询评估配置
	PollInterval int // 轮询间隔（秒），默认 60秒

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	// 从环境变量加载（带默认值）
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "elderguard")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "elderguard-risk")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "elderguard/+/+")
	cfg.MQTT.QoS = 1

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8000")

	cfg.Model.Path = getEnv("MODEL_PATH", "trained_models/risk_model.json")

	cfg.Alert.CooldownMinutes = getEnvInt("ALERT_COOLDOWN_MINUTES", 30)
	cfg.Alert.WindowMinutes = getEnvInt("ALERT_WINDOW_MINUTES", 60)
	cfg.Alert.MaxPerHour = getEnvInt("ALERT_MAX_PER_HOUR", 10)
	cfg.Alert.ChannelTimeout = getEnvInt("ALERT_CHANNEL_TIMEOUT", 10)
	cfg.Alert.FCM.ServerKey = getEnv("FCM_SERVER_KEY", "")
	cfg.Alert.FCM.Endpoint = getEnv("FCM_ENDPOINT", "https://fcm.googleapis.com/fcm/send")
	cfg.Alert.Twilio.AccountSID = getEnv("TWILIO_ACCOUNT_SID", "")
	cfg.Alert.Twilio.AuthToken = getEnv("TWILIO_AUTH_TOKEN", "")
	cfg.Alert.Twilio.FromPhone = getEnv("TWILIO_PHONE_NUMBER", "")
	cfg.Alert.Twilio.Endpoint = getEnv("TWILIO_ENDPOINT", "https://api.twilio.com")

	cfg.Cache.KeyPrefix = getEnv("CACHE_KEY_PREFIX", "elderguard:elder:")
	cfg.Cache.SummaryTTL = getEnvInt("CACHE_SUMMARY_TTL", 86400)
	cfg.Cache.AssessmentTTL = getEnvInt("CACHE_ASSESSMENT_TTL", 30)

	cfg.PollInterval = getEnvInt("POLL_INTERVAL", 60)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
