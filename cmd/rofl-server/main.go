package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rofl-backend/internal/app/account"
	"rofl-backend/internal/app/hostitem"
	"rofl-backend/internal/auth"
	"rofl-backend/internal/config"
	"rofl-backend/internal/logging"
	"rofl-backend/internal/mail"
	"rofl-backend/internal/media"
	"rofl-backend/internal/otp"
	"rofl-backend/internal/store"
	httptransport "rofl-backend/internal/transport/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	appCfg, err := config.LoadApp(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(appCfg.Log)
	cfg := appCfg.Server

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	defer rdb.Close()
	if err := waitForRedis(ctx, rdb); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable")
	}

	images, err := media.NewDiskStorage(cfg.UploadDir, cfg.UploadBaseURL, cfg.UploadMaxBytes())
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage init failed")
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	metrics := httptransport.NewMetrics()

	accounts := account.NewService(account.Deps{
		Users: st,
		Codes: otp.NewRedisStore(rdb, otp.Options{
			TTL:         cfg.OTPTTL,
			MaxSends:    cfg.OTPMaxSends,
			SendWindow:  cfg.OTPSendWindow,
			MaxAttempts: cfg.OTPMaxAttempts,
		}),
		Mailer:       newMailer(cfg),
		Images:       images,
		Tokens:       tokens,
		IsAdminEmail: cfg.IsAdminEmail,
	})
	hostItems := hostitem.NewService(st, metrics.ObservePricing)

	r := httptransport.NewRouter(httptransport.RouterDeps{
		Accounts:       accounts,
		HostItems:      hostItems,
		Tokens:         tokens,
		DB:             st,
		Metrics:        metrics,
		Cookie:         httptransport.CookieConfig{Name: cfg.CookieName, Secure: cfg.CookieSecure},
		AuthRate:       httptransport.RateLimit{RequestsPerMinute: cfg.AuthRatePerMinute, Burst: cfg.AuthRateBurst},
		CORS:           httptransport.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		UploadDir:      images.Dir(),
		UploadBaseURL:  cfg.UploadBaseURL,
		MaxUploadBytes: cfg.UploadMaxBytes(),
	})
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

// newMailer falls back to logging messages when SMTP is not configured.
func newMailer(cfg config.ServerConfig) mail.Mailer {
	if cfg.SMTPHost == "" {
		log.Warn().Msg("SMTP_HOST not set; reset codes will be logged instead of emailed")
		return mail.LogMailer{}
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		MaxRetry: cfg.MailMaxRetry,
	})
}

func waitForRedis(ctx context.Context, rdb *redis.Client) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second
	return backoff.RetryNotify(func() error {
		return rdb.Ping(ctx).Err()
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		log.Warn().Err(err).Dur("retry_in", next).Msg("redis ping failed")
	})
}
