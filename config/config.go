package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at startup and passed to whoever needs it.
type Config struct {
	Port        string
	Env         string
	CORSOrigin  string
	AppURL      string
	LogLevel    string
	LogFormat   string
	JWTSecret   string
	DBDriver    string // "postgres" | "firestore"
	DBURL       string
	AdminEmails []string

	AdminRefresh time.Duration
	ClaimTTL     time.Duration

	PaymentProvider string // "ghl" | "stripe"
	GHL             GHLConfig
	Stripe          StripeConfig
	Google          GoogleConfig
	Firebase        FirebaseConfig
	SMTP            SMTPConfig

	WebhookRatePerSecond float64
	WebhookBurst         int
}

type GHLConfig struct {
	PaymentURL  string
	LocationID  string
	FormID      string
	RedirectURL string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceIDs      map[string]string // "<plan>:<monthly|yearly>" -> price id
}

type GoogleConfig struct {
	ClientID         string
	ClientSecret     string
	RedirectURL      string
	FrontendRedirect string
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
	StorageBucket   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("APP_ENV", "development"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		AppURL:     getEnv("APP_URL", "http://localhost:5173"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBURL:      os.Getenv("DB_URL"),

		AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),

		PaymentProvider: strings.ToLower(getEnv("PAYMENT_PROVIDER", "ghl")),
		GHL: GHLConfig{
			PaymentURL:  getEnv("GHL_PAYMENT_URL", "https://link.pridenomad.com/payment"),
			LocationID:  os.Getenv("GHL_LOCATION_ID"),
			FormID:      os.Getenv("GHL_FORM_ID"),
			RedirectURL: getEnv("GHL_REDIRECT_URL", getEnv("APP_URL", "http://localhost:5173")+"/payment-success"),
		},
		Stripe: StripeConfig{
			SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
			PriceIDs:      parsePairs(os.Getenv("STRIPE_PRICE_IDS")),
		},
		Google: GoogleConfig{
			ClientID:         os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret:     os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:      os.Getenv("GOOGLE_REDIRECT_URL"),
			FrontendRedirect: os.Getenv("GOOGLE_FRONTEND_REDIRECT"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
			CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
			StorageBucket:   os.Getenv("GCS_BUCKET"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "no-reply@pridenomad.com"),
		},
	}

	var err error
	if cfg.SMTP.Port, err = getInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.AdminRefresh, err = getDuration("ADMIN_REFRESH", time.Minute); err != nil {
		return nil, err
	}
	if cfg.ClaimTTL, err = getDuration("CLAIM_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.WebhookBurst, err = getInt("WEBHOOK_BURST", 10); err != nil {
		return nil, err
	}
	rps, err := strconv.ParseFloat(getEnv("WEBHOOK_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("WEBHOOK_RPS: %w", err)
	}
	cfg.WebhookRatePerSecond = rps

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing required environment variable: JWT_SECRET")
	}
	switch c.DBDriver {
	case "postgres":
		if c.DBURL == "" {
			return fmt.Errorf("missing required environment variable: DB_URL")
		}
	case "firestore":
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("missing required environment variable: FIREBASE_PROJECT_ID")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.PaymentProvider {
	case "ghl":
		if c.GHL.LocationID == "" || c.GHL.FormID == "" {
			return fmt.Errorf("missing required environment variables: GHL_LOCATION_ID, GHL_FORM_ID")
		}
	case "stripe":
		if c.Stripe.SecretKey == "" {
			return fmt.Errorf("missing required environment variable: STRIPE_SECRET_KEY")
		}
	default:
		return fmt.Errorf("unsupported PAYMENT_PROVIDER %q", c.PaymentProvider)
	}
	return nil
}

// GoogleEnabled reports whether Google sign-in is fully configured.
func (c *Config) GoogleEnabled() bool {
	return c.Google.ClientID != "" && c.Google.ClientSecret != "" && c.Google.RedirectURL != ""
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
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

// parsePairs reads "k1=v1,k2=v2".
func parsePairs(s string) map[string]string {
	out := map[string]string{}
	for _, part := range splitList(s) {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
