package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, 6, cfg.OTPLength)
	assert.Equal(t, 15*time.Minute, cfg.CredentialTTL)
	assert.Equal(t, StoreRedis, cfg.CredentialStore)
	assert.Equal(t, BusLog, cfg.NotificationBus)
	assert.Equal(t, "email.send", cfg.EmailTopic)
	assert.Equal(t, "mobile.send", cfg.MobileTopic)
	assert.Equal(t, "user_verifications", cfg.DynamoTables.UserVerifications)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, ":3000", cfg.Address())
}

func TestLoad_PerChannelTTLFallsBackToShared(t *testing.T) {
	t.Setenv("CREDENTIAL_TTL", "10m")
	t.Setenv("MOBILE_CREDENTIAL_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.EmailTTL())
	assert.Equal(t, 2*time.Minute, cfg.MobileTTL())
}

func TestLoad_SNSTopicARNs(t *testing.T) {
	t.Setenv("NOTIFICATION_BUS", BusSNS)
	t.Setenv("SNS_TOPIC_ARNS", "email.send=arn:aws:sns:us-east-1:000000000000:email,mobile.send=arn:aws:sns:us-east-1:000000000000:sms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:email", cfg.SNSTopicARNs["email.send"])
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:sms", cfg.SNSTopicARNs["mobile.send"])
}

func TestLoad_RejectsInvalidOTPLength(t *testing.T) {
	t.Setenv("OTP_LENGTH", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "OTP_LENGTH")
}

func TestLoad_RejectsUnknownStore(t *testing.T) {
	t.Setenv("CREDENTIAL_STORE", "memcached")
	_, err := Load()
	assert.ErrorContains(t, err, "CREDENTIAL_STORE")
}

func TestLoad_KafkaRequiresBrokers(t *testing.T) {
	t.Setenv("NOTIFICATION_BUS", BusKafka)
	_, err := Load()
	assert.ErrorContains(t, err, "KAFKA_BROKERS")

	t.Setenv("KAFKA_BROKERS", "localhost:9092,localhost:9093")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, cfg.KafkaBrokers)
}
