package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Credential store backends.
const (
	StoreRedis  = "redis"
	StoreDynamo = "dynamo"
)

// Notification bus backends.
const (
	BusKafka = "kafka"
	BusSNS   = "sns"
	BusLog   = "log"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string `env:"APP_PORT" envDefault:"3000"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	OTPLength           int           `env:"OTP_LENGTH" envDefault:"6"`
	CredentialTTL       time.Duration `env:"CREDENTIAL_TTL" envDefault:"15m"`
	EmailCredentialTTL  time.Duration `env:"EMAIL_CREDENTIAL_TTL"`
	MobileCredentialTTL time.Duration `env:"MOBILE_CREDENTIAL_TTL"`
	VerifyLinkBaseURL   string        `env:"VERIFY_LINK_BASE_URL" envDefault:"http://localhost:3000/v1"`

	CredentialStore string `env:"CREDENTIAL_STORE" envDefault:"redis"`
	RedisURL        string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	NotificationBus    string            `env:"NOTIFICATION_BUS" envDefault:"log"`
	KafkaBrokers       []string          `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaConsumerGroup string            `env:"KAFKA_CONSUMER_GROUP" envDefault:"user"`
	SNSTopicARNs       map[string]string `env:"SNS_TOPIC_ARNS" envSeparator:"," envKeyValSeparator:"="`
	EmailTopic         string            `env:"EMAIL_TOPIC" envDefault:"email.send"`
	MobileTopic        string            `env:"MOBILE_TOPIC" envDefault:"mobile.send"`

	AWSRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSEndpointURL string `env:"AWS_ENDPOINT_URL"` // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey   string `env:"AWS_SECRET_ACCESS_KEY"`
	DynamoTables   DynamoTables

	JWTPrivateKeyPath string        `env:"JWT_PRIVATE_KEY_PATH" envDefault:"./private_key.pem"`
	JWTPublicKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH" envDefault:"./public_key.pem"`
	JWTExpiry         time.Duration `env:"JWT_EXPIRY" envDefault:"168h"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"` // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users             string `env:"DYNAMO_TABLE_USERS" envDefault:"users"`
	UserVerifications string `env:"DYNAMO_TABLE_USER_VERIFICATIONS" envDefault:"user_verifications"`
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.OTPLength < 1 || c.OTPLength > 18 {
		return fmt.Errorf("OTP_LENGTH must be between 1 and 18, got %d", c.OTPLength)
	}
	if c.CredentialTTL <= 0 {
		return fmt.Errorf("CREDENTIAL_TTL must be positive")
	}
	if c.EmailCredentialTTL < 0 || c.MobileCredentialTTL < 0 {
		return fmt.Errorf("per-channel credential TTLs must not be negative")
	}
	switch c.CredentialStore {
	case StoreRedis, StoreDynamo:
	default:
		return fmt.Errorf("unknown CREDENTIAL_STORE %q", c.CredentialStore)
	}
	switch c.NotificationBus {
	case BusLog, BusSNS:
	case BusKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS must be set when NOTIFICATION_BUS=kafka")
		}
	default:
		return fmt.Errorf("unknown NOTIFICATION_BUS %q", c.NotificationBus)
	}
	return nil
}

// EmailTTL is the lifetime of an email credential.
func (c *Config) EmailTTL() time.Duration {
	if c.EmailCredentialTTL > 0 {
		return c.EmailCredentialTTL
	}
	return c.CredentialTTL
}

// MobileTTL is the lifetime of a mobile credential.
func (c *Config) MobileTTL() time.Duration {
	if c.MobileCredentialTTL > 0 {
		return c.MobileCredentialTTL
	}
	return c.CredentialTTL
}

// Address returns the HTTP listen address.
func (c *Config) Address() string {
	return ":" + c.AppPort
}
