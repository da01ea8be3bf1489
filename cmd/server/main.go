package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventease/config"
	_ "eventease/docs"
	authadapter "eventease/internal/adapters/auth"
	emailadapter "eventease/internal/adapters/email"
	httpdelivery "eventease/internal/delivery/http"
	"eventease/internal/delivery/http/controllers"
	"eventease/internal/delivery/http/middleware"
	"eventease/internal/repository/postgres"
	"eventease/internal/services"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title EventEase API
// @version 1.0
// @description Event creation, public RSVP collection, attendee management, and role-based administration.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), serviceTimeout)
	if err := db.PingContext(pingCtx); err != nil {
		// The schema may not be provisioned yet; the API degrades gracefully,
		// so an unreachable database at boot is a warning, not a fatal error.
		logger.Warn("database unreachable at startup", "err", err)
	}
	cancel()

	eventRepo := postgres.NewEventRepository(db)
	rsvpRepo := postgres.NewRSVPRepository(db)
	userRepo := postgres.NewProfileRepository(db)

	tokenIssuer, tokenVerifier := authadapter.NewJWTCodec(cfg.JWTSecret)
	hasher := authadapter.NewBcryptHasher(0)

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, cfg.JWTExpiry)
	eventService := services.NewEventService(eventRepo, serviceTimeout)
	rsvpService := services.NewRSVPService(rsvpRepo, eventRepo, emailService, logger, serviceTimeout)
	userService := services.NewUserService(userRepo, authService, serviceTimeout)

	authController := controllers.NewAuthController(logger, authService)
	eventController := controllers.NewEventController(logger, eventService)
	rsvpController := controllers.NewRSVPController(logger, rsvpService, eventService)
	userController := controllers.NewUserController(logger, userService)

	mux := httpdelivery.NewRouter(tokenVerifier, authController, eventController, rsvpController, userController)

	handler := middleware.CORS(cfg.CORSOrigins, mux)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
