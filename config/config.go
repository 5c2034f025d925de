package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type StoreKind string

const (
	StoreMongo    StoreKind = "mongo"
	StorePostgres StoreKind = "postgres"
	StoreSQLite   StoreKind = "sqlite"
)

type Config struct {
	Environment string `env:"ENVIRONMENT,default=dev"`
	Host        string `env:"HOST,default=0.0.0.0"`
	Port        int    `env:"PORT,default=5000"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	DatabaseURL         string        `env:"DATABASE_URL,required=true"`
	DatabaseName        string        `env:"DATABASE_NAME,default=scholarshipDb"`
	DatabasePingTimeout time.Duration `env:"DATABASE_PING_TIMEOUT,default=10s"`

	AccessSecret string `env:"ACCESS_TOKEN_SECRET,required=true"`

	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	PaymentCurrency string `env:"PAYMENT_CURRENCY,default=usd"`

	KafkaBroker   string `env:"KAFKA_BROKER"`
	KafkaTopic    string `env:"KAFKA_TOPIC,default=scholarship.events"`
	KafkaGroupID  string `env:"KAFKA_GROUP_ID,default=receipt-mailer"`
	KafkaUsername string `env:"KAFKA_USERNAME"`
	KafkaPassword string `env:"KAFKA_PASSWORD"`

	CloudinaryUrl string `env:"CLOUDINARY_URL"`

	AllowedOrigins  string        `env:"ALLOWED_ORIGINS,default=*"`
	RateLimitRPS    int32         `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst  int32         `env:"RATE_LIMIT_BURST,default=200"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	SMTPHost     string `env:"SMTP_HOST,default=smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`
	MailFromName string `env:"MAIL_FROM_NAME,default=Scholarship Management"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

// LoadConfig reads .env outside prod, then the process environment.
func LoadConfig() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "prod" {
		if err := godotenv.Overload(); err != nil && !os.IsNotExist(err) {
			log.Println("Warning: env file could not be loaded:", err)
		}
	}
	return FromEnviron()
}

func FromEnviron() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", c.Environment)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be 0 or greater")
	}
	if strings.TrimSpace(c.AccessSecret) == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if _, err := c.Store(); err != nil {
		return err
	}
	return nil
}

// Store picks the backing store from the DATABASE_URL scheme.
func (c *Config) Store() (StoreKind, error) {
	scheme, _, ok := strings.Cut(c.DatabaseURL, "://")
	if !ok {
		return "", fmt.Errorf("invalid DATABASE_URL: missing scheme")
	}
	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return StoreMongo, nil
	case "postgres", "postgresql":
		return StorePostgres, nil
	case "sqlite":
		return StoreSQLite, nil
	default:
		return "", fmt.Errorf("unsupported DATABASE_URL scheme %q", scheme)
	}
}

// SQLitePath strips the sqlite:// scheme, keeping ":memory:" and file paths.
func (c *Config) SQLitePath() string {
	return strings.TrimPrefix(c.DatabaseURL, "sqlite://")
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) IsProd() bool { return c.Environment == "prod" }
