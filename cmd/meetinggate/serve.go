package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"meetinggate/config"
	_ "meetinggate/docs"
	"meetinggate/internal/adapters/auth"
	"meetinggate/internal/adapters/email"
	httpdelivery "meetinggate/internal/delivery/http"
	"meetinggate/internal/delivery/http/controllers"
	"meetinggate/internal/repository/postgres"
	"meetinggate/internal/services"

	"golang.org/x/crypto/bcrypt"
)

const (
	requestTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger, _ []string) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	db, err := postgres.Open(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}

	eventRepo := postgres.NewEventRepository(db)
	userRepo := postgres.NewUserRepository(db)
	meetingRepo := postgres.NewMeetingRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.AWSRegion,
			AccessKeyID:     cfg.Mailer.AWSAccessKeyID,
			SecretAccessKey: cfg.Mailer.AWSSecretAccessKey,
		},
	})
	if err != nil {
		return err
	}
	alerts := services.NewAlertService(mailer, email.NewTemplateRenderer())

	eventService := services.NewEventService(eventRepo, meetingRepo, userRepo, alerts, cfg.AdminEmail, logger, requestTimeout)
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.DefaultCost), auth.NewJWTIssuer(cfg.JWTSecret), cfg.JWTExpiry)

	mux := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewAuthController(logger, authService),
		auth.NewJWTVerifier(cfg.JWTSecret),
		logger,
	)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpdelivery.NewHandler(mux, cfg.CORSAllowedOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
