package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port string

	RazorpayKeyID     string
	RazorpayKeySecret string
	WebhookSecret     string
	Currency          string

	ProductName   string
	GuidePath     string
	GuideFilename string

	// AllowedOrigins empty means any origin is accepted. When set, the
	// list is enforced strictly: unlisted origins are rejected, not
	// logged and waved through.
	AllowedOrigins []string

	// JournalPath is the sqlite file for the payment journal. Empty
	// keeps the journal in memory.
	JournalPath string

	Email EmailConfig
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Configured reports whether enough is present to attempt SMTP sends.
func (e EmailConfig) Configured() bool {
	return e.Host != "" && e.User != ""
}

// Load reads configuration from the environment. Only the gateway
// credentials are mandatory; everything else has a default or is
// optional.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", ":3000")
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("PRODUCT_NAME", "The Ultimate Bridal Makeup Guide")
	v.SetDefault("GUIDE_PATH", "files/makeup-guide.pdf")
	v.SetDefault("GUIDE_FILENAME", "Ultimate-Bridal-Makeup-Guide.pdf")
	v.SetDefault("EMAIL_PORT", 587)

	cfg := &Config{
		Port:              normalizePort(v.GetString("PORT")),
		RazorpayKeyID:     v.GetString("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: v.GetString("RAZORPAY_KEY_SECRET"),
		WebhookSecret:     v.GetString("RAZORPAY_WEBHOOK_SECRET"),
		Currency:          v.GetString("CURRENCY"),
		ProductName:       v.GetString("PRODUCT_NAME"),
		GuidePath:         v.GetString("GUIDE_PATH"),
		GuideFilename:     v.GetString("GUIDE_FILENAME"),
		AllowedOrigins:    splitOrigins(v.GetString("ALLOWED_ORIGINS")),
		JournalPath:       v.GetString("JOURNAL_PATH"),
		Email: EmailConfig{
			Host:     v.GetString("EMAIL_HOST"),
			Port:     v.GetInt("EMAIL_PORT"),
			User:     v.GetString("EMAIL_USER"),
			Password: v.GetString("EMAIL_PASSWORD"),
			From:     v.GetString("EMAIL_FROM"),
		},
	}

	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.User
	}

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return nil, errors.New("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required")
	}

	return cfg, nil
}

// TestMode reports whether the configured gateway key is a test key.
func (c *Config) TestMode() bool {
	return strings.Contains(c.RazorpayKeyID, "test")
}

func normalizePort(port string) string {
	if port == "" {
		return ":3000"
	}
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
