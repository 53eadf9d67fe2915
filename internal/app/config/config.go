package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	AWS      AWSConfig      `mapstructure:"aws"`
	S3       S3Config       `mapstructure:"s3"`
	SNS      SNSConfig      `mapstructure:"sns"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig 关系型数据库配置，driver 支持 postgres / mysql
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	RelayChannel string `mapstructure:"relay_channel"`
}

// AWSConfig AWS 公共配置，endpoint_url 用于 LocalStack 等兼容环境
type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	EndpointURL     string `mapstructure:"endpoint_url"`
}

type S3Config struct {
	Bucket string `mapstructure:"bucket"`
}

type SNSConfig struct {
	TopicARN string `mapstructure:"topic_arn"`
}

// QueueConfig 队列配置，provider 支持 sqs / lmstfy / rabbitmq
type QueueConfig struct {
	Provider string         `mapstructure:"provider"`
	URL      string         `mapstructure:"url"`
	FIFO     *bool          `mapstructure:"fifo"` // 为空时根据 URL 后缀 .fifo 判断
	Lmstfy   LmstfyConfig   `mapstructure:"lmstfy"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type RabbitMQConfig struct {
	URL   string `mapstructure:"url"`
	Queue string `mapstructure:"queue"`
}

type LmstfyConfig struct {
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Namespace string        `mapstructure:"namespace"`
	Queue     string        `mapstructure:"queue"`
	Token     string        `mapstructure:"token"`
	TTR       time.Duration `mapstructure:"ttr"`
	TTL       time.Duration `mapstructure:"ttl"`
	Tries     uint16        `mapstructure:"tries"`
}

// ConsumerConfig 后台消费者配置
type ConsumerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxMessages     int           `mapstructure:"max_messages"`
	WaitTime        time.Duration `mapstructure:"wait_time"`
	ErrorBackoff    time.Duration `mapstructure:"error_backoff"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Processor       string        `mapstructure:"processor"` // log / redis
}

const (
	ProviderSQS      = "sqs"
	ProviderLmstfy   = "lmstfy"
	ProviderRabbitMQ = "rabbitmq"

	ProcessorLog   = "log"
	ProcessorRedis = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "aws-s3-service")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.relay_channel", "queue:messages")

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.access_key_id", "")
	v.SetDefault("aws.secret_access_key", "")
	v.SetDefault("aws.endpoint_url", "")

	v.SetDefault("s3.bucket", "")
	v.SetDefault("sns.topic_arn", "")

	v.SetDefault("queue.provider", ProviderSQS)
	v.SetDefault("queue.url", "")
	v.SetDefault("queue.lmstfy.host", "")
	v.SetDefault("queue.lmstfy.namespace", "")
	v.SetDefault("queue.lmstfy.queue", "")
	v.SetDefault("queue.lmstfy.token", "")
	v.SetDefault("queue.lmstfy.port", 7777)
	v.SetDefault("queue.lmstfy.ttr", 30*time.Second)
	v.SetDefault("queue.lmstfy.ttl", time.Hour)
	v.SetDefault("queue.lmstfy.tries", 3)
	v.SetDefault("queue.rabbitmq.url", "")
	v.SetDefault("queue.rabbitmq.queue", "")

	v.SetDefault("consumer.enabled", true)
	v.SetDefault("consumer.max_messages", 10)
	v.SetDefault("consumer.wait_time", 20*time.Second)
	v.SetDefault("consumer.error_backoff", 5*time.Second)
	v.SetDefault("consumer.shutdown_timeout", 30*time.Second)
	v.SetDefault("consumer.processor", ProcessorLog)
}

// Load 从配置文件加载配置，环境变量可覆盖（如 QUEUE_URL、AWS_REGION）
// configPath 为空或文件不存在时只使用默认值和环境变量
// 注意：只有设置过默认值的 key 才能被环境变量覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config failed: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.S3.Bucket == "" {
		return fmt.Errorf("s3 bucket is required")
	}
	if c.SNS.TopicARN == "" {
		return fmt.Errorf("sns topic_arn is required")
	}

	switch c.Queue.Provider {
	case ProviderSQS:
		if c.Queue.URL == "" {
			return fmt.Errorf("queue url is required")
		}
	case ProviderLmstfy:
		if c.Queue.Lmstfy.Host == "" || c.Queue.Lmstfy.Queue == "" {
			return fmt.Errorf("lmstfy host and queue are required")
		}
	case ProviderRabbitMQ:
		if c.Queue.RabbitMQ.URL == "" || c.Queue.RabbitMQ.Queue == "" {
			return fmt.Errorf("rabbitmq url and queue are required")
		}
	default:
		return fmt.Errorf("unsupported queue provider: %q", c.Queue.Provider)
	}

	switch c.Consumer.Processor {
	case ProcessorLog:
	case ProcessorRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for redis processor")
		}
	default:
		return fmt.Errorf("unsupported consumer processor: %q", c.Consumer.Processor)
	}
	return nil
}

// IsFIFOQueue 判断队列是否支持 MessageGroupId / MessageDeduplicationId
func (q QueueConfig) IsFIFOQueue() bool {
	if q.Provider != ProviderSQS {
		return false
	}
	if q.FIFO != nil {
		return *q.FIFO
	}
	return strings.HasSuffix(q.URL, ".fifo")
}
