package config

import "github.com/caarlos0/env/v11"

// Config 全部运行配置从环境变量读取，避免散落的硬编码密钥
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	MySQLDSN string `env:"MYSQL_DSN" envDefault:"user:password@tcp(127.0.0.1:3306)/orbit?charset=utf8mb4&parseTime=True"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AccessSecret  string `env:"JWT_ACCESS_SECRET" envDefault:"dev-access-secret"`
	RefreshSecret string `env:"JWT_REFRESH_SECRET" envDefault:"dev-refresh-secret"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"127.0.0.1"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME" envDefault:""`
	SMTPPassword string `env:"SMTP_PASSWORD" envDefault:""`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"NoReply <no-reply@example.com>"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"127.0.0.1:9092"`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"membership-events"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
