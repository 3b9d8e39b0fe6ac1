package config

import (
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/kikoi/portfolio-backend/internal/apperr"
)

// DefaultAllowedOrigins are the frontends permitted to call the API when
// ALLOWED_ORIGINS is not set.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"https://kikoi.vercel.app",
	"https://joshua-portfolio-backend.onrender.com",
}

// Config holds every setting the server reads from the environment.
type Config struct {
	Env  string
	Port string

	// Hosted database
	DatabaseURL        string
	DatabaseServiceKey string

	// Mail
	SMTPHost      string
	SMTPPort      int
	EmailUser     string
	EmailPass     string
	OperatorEmail string
	OwnerName     string
	SMTPTimeout   time.Duration

	MailRetryAttempts int
	MailRetryBackoff  time.Duration

	// Generative AI
	GeminiAPIKey string
	GeminiModel  string

	// Currency rates; empty means the built-in table
	RatesAPIURL string

	AllowedOrigins []string

	RateLimitWindow time.Duration
	RateLimitMax    int
	RedisURL        string

	// TrustedProxyCount is how many reverse proxies append to
	// X-Forwarded-For. Zero keys the rate limit on the peer address only.
	TrustedProxyCount int

	// Optional S3 archive for proposal PDFs
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	OperatorTokenSecret string
}

// Load reads configuration from the environment, seeding it from a .env file
// when one exists. It returns a *apperr.ConfigurationError naming every
// missing credential so the process can refuse to start.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg := &Config{
		Env:  getEnv("APP_ENV", "production"),
		Port: getEnv("PORT", "3000"),

		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DatabaseServiceKey: os.Getenv("DATABASE_SERVICE_KEY"),

		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnvAsInt("SMTP_PORT", 587),
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPass:     os.Getenv("EMAIL_PASS"),
		OperatorEmail: os.Getenv("OPERATOR_EMAIL"),
		OwnerName:     getEnv("OWNER_NAME", "Joshua Mercy"),
		SMTPTimeout:   getEnvAsDuration("SMTP_TIMEOUT", 10*time.Second),

		MailRetryAttempts: getEnvAsInt("MAIL_RETRY_ATTEMPTS", 3),
		MailRetryBackoff:  getEnvAsDuration("MAIL_RETRY_BACKOFF", 500*time.Millisecond),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		RatesAPIURL: os.Getenv("RATES_API_URL"),

		RateLimitWindow: getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitMax:    getEnvAsInt("RATE_LIMIT_MAX", 100),
		RedisURL:        os.Getenv("REDIS_URL"),

		TrustedProxyCount: getEnvAsInt("TRUSTED_PROXY_COUNT", 0),

		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),

		OperatorTokenSecret: os.Getenv("OPERATOR_TOKEN_SECRET"),
	}

	cfg.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	if fe := strings.TrimSpace(os.Getenv("FRONTEND_URL")); fe != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, fe)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every credential the server cannot run without is set.
func (c *Config) Validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"DATABASE_URL", c.DatabaseURL},
		{"DATABASE_SERVICE_KEY", c.DatabaseServiceKey},
		{"EMAIL_USER", c.EmailUser},
		{"EMAIL_PASS", c.EmailPass},
		{"OPERATOR_EMAIL", c.OperatorEmail},
		{"GEMINI_API_KEY", c.GeminiAPIKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if s := c.OperatorTokenSecret; s != "" && len(s) < 32 {
		missing = append(missing, "OPERATOR_TOKEN_SECRET (at least 32 bytes)")
	}
	if len(missing) > 0 {
		return &apperr.ConfigurationError{Missing: missing}
	}

	if c.MailRetryAttempts < 1 {
		c.MailRetryAttempts = 1
	}
	if c.SMTPTimeout <= 0 {
		c.SMTPTimeout = 10 * time.Second
	}
	if c.RateLimitMax < 1 {
		c.RateLimitMax = 100
	}
	if c.TrustedProxyCount < 0 {
		c.TrustedProxyCount = 0
	}
	if c.RateLimitWindow <= 0 {
		c.RateLimitWindow = 15 * time.Minute
	}

	if c.RatesAPIURL == "" {
		slog.Info("RATES_API_URL not set, serving the built-in rate table")
	}
	if c.OperatorTokenSecret == "" {
		slog.Info("OPERATOR_TOKEN_SECRET not set, operator endpoints disabled")
	}
	return nil
}

// IsDevelopment reports whether internal error details may be shown to callers.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// DSN returns the database connection string. The service key is used as the
// password when DATABASE_URL does not carry one.
func (c *Config) DSN() string {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.User == nil || u.Scheme == "" {
		return c.DatabaseURL
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		return c.DatabaseURL
	}
	u.User = url.UserPassword(u.User.Username(), c.DatabaseServiceKey)
	return u.String()
}

// ArchiveEnabled reports whether generated PDFs should be copied to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
