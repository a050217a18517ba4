package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	S3BucketName     string
	KnowledgeBaseKey string // S3 key of the chat knowledge-base document

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string

	ActivityBackend string // "sns" | "kafka" | "none"
	SNSTopicARN     string
	KafkaBrokers    []string
	KafkaTopic      string

	VerificationCodeTTL time.Duration
	ChallengePrefix     string

	CodeforcesBaseURL  string
	CodeforcesInterval time.Duration // minimum gap between Codeforces API calls

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Accounts         string
	AccountEmails    string
	ExternalAccounts string
	RatingHistory    string
	Events           string
	Info             string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Accounts:         getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
			AccountEmails:    getEnv("DYNAMO_TABLE_ACCOUNT_EMAILS", "account_emails"),
			ExternalAccounts: getEnv("DYNAMO_TABLE_EXTERNAL_ACCOUNTS", "external_accounts"),
			RatingHistory:    getEnv("DYNAMO_TABLE_RATING_HISTORY", "rating_history"),
			Events:           getEnv("DYNAMO_TABLE_EVENTS", "events"),
			Info:             getEnv("DYNAMO_TABLE_INFO", "info"),
		},

		S3BucketName:     getEnv("S3_BUCKET_NAME", "cp-portal-kb"),
		KnowledgeBaseKey: getEnv("S3_KNOWLEDGE_BASE_KEY", "knowledge/base.json"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "CP Portal"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		ActivityBackend: getEnv("ACTIVITY_BACKEND", "none"),
		SNSTopicARN:     getEnv("SNS_TOPIC_ARN", ""),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "portal.activity"),

		VerificationCodeTTL: getEnvDuration("VERIFICATION_CODE_TTL", time.Hour),
		ChallengePrefix:     getEnv("CHALLENGE_PREFIX", "CF-VERIFY"),

		CodeforcesBaseURL:  getEnv("CODEFORCES_BASE_URL", "https://codeforces.com/api"),
		CodeforcesInterval: getEnvDuration("CODEFORCES_MIN_INTERVAL", 2*time.Second),

		LLMBaseURL: getEnv("LLM_BASE_URL", "https://api.fireworks.ai/inference/v1"),
		LLMAPIKey:  getEnv("LLM_API_KEY", ""),
		LLMModel:   getEnv("LLM_MODEL", "accounts/fireworks/models/gpt-oss-20b"),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
