package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":5000"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	JWTSecret    string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"rofl"`
	JWTTTL       time.Duration `env:"JWT_TTL" envDefault:"24h"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"token"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
	AdminEmails  []string      `env:"ADMIN_EMAILS" envSeparator:","`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	OTPTTL         time.Duration `env:"OTP_TTL" envDefault:"10m"`
	OTPMaxSends    int           `env:"OTP_MAX_SENDS" envDefault:"5"`
	OTPSendWindow  time.Duration `env:"OTP_SEND_WINDOW" envDefault:"1h"`
	OTPMaxAttempts int           `env:"OTP_MAX_ATTEMPTS" envDefault:"5"`

	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	MailFrom     string        `env:"MAIL_FROM" envDefault:"no-reply@rofl.local"`
	MailMaxRetry time.Duration `env:"MAIL_MAX_RETRY" envDefault:"30s"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"uploads"`
	UploadBaseURL string `env:"UPLOAD_BASE_URL" envDefault:"/uploads"`
	UploadMaxMB   int    `env:"UPLOAD_MAX_MB" envDefault:"5"`

	AuthRatePerMinute float64 `env:"AUTH_RATE_PER_MINUTE" envDefault:"20"`
	AuthRateBurst     int     `env:"AUTH_RATE_BURST" envDefault:"5"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.AdminEmails = normalizeEmails(cfg.AdminEmails)
	cfg.CORSAllowedOrigins = trimAll(cfg.CORSAllowedOrigins)
	return cfg, nil
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS.
func (c ServerConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

func (c ServerConfig) UploadMaxBytes() int64 {
	if c.UploadMaxMB <= 0 {
		return 5 << 20
	}
	return int64(c.UploadMaxMB) << 20
}

func normalizeEmails(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
