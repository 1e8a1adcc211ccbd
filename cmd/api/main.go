package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thierryazur06/site-api/internal/config"
	"github.com/thierryazur06/site-api/internal/handler"
	"github.com/thierryazur06/site-api/internal/mail"
	"github.com/thierryazur06/site-api/internal/middleware"
	pgRepo "github.com/thierryazur06/site-api/internal/repository/postgres"
	redisRepo "github.com/thierryazur06/site-api/internal/repository/redis"
	"github.com/thierryazur06/site-api/internal/service"
	"github.com/thierryazur06/site-api/internal/verification"
	"github.com/thierryazur06/site-api/pkg/auth"
	"github.com/thierryazur06/site-api/pkg/database"
	"github.com/thierryazur06/site-api/pkg/logger"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.Mode)

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Printf("Failed to build logger: %v", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.MigrateDB(db, cfg.Database.Driver, cfg.Database.MigrationsPath); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		redisClient, err = database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		zlog.Info("connected to redis", zap.String("mode", cfg.Redis.Mode))
	}

	userRepo := pgRepo.NewUserRepo(db)
	inquiryRepo := pgRepo.NewInquiryRepo(db)
	reviewRepo := pgRepo.NewReviewRepo(db)
	cityRepo := pgRepo.NewCityRepo(db)
	contentRepo := pgRepo.NewSiteContentRepo(db)

	// Account codes live in the database, form codes in memory or Redis.
	accountCodes, err := verification.NewService[uint](pgRepo.NewVerificationCodeRepo(db), verification.WithTTL(cfg.Codes.TTL))
	if err != nil {
		zlog.Fatal("failed to initialize account codes", zap.Error(err))
	}
	formStore, err := newFormCodeStore(cfg, redisClient)
	if err != nil {
		zlog.Fatal("failed to initialize form code store", zap.Error(err))
	}
	formCodes, err := verification.NewService[string](formStore, verification.WithTTL(cfg.Codes.TTL))
	if err != nil {
		zlog.Fatal("failed to initialize form codes", zap.Error(err))
	}
	go verification.RunJanitor(ctx, cfg.Codes.CleanupInterval, accountCodes, formCodes)

	sender, err := newMailSender(cfg.Mail)
	if err != nil {
		zlog.Fatal("failed to initialize mail sender", zap.Error(err))
	}
	renderer, err := mail.NewRenderer()
	if err != nil {
		zlog.Fatal("failed to parse mail templates", zap.Error(err))
	}
	emailService, err := service.NewMailEmailService(sender, renderer, service.EmailConfig{
		AppName:      cfg.Mail.AppName,
		ContactEmail: cfg.Mail.ContactEmail,
		CodeTTL:      cfg.Codes.TTL,
	})
	if err != nil {
		zlog.Fatal("failed to initialize email service", zap.Error(err))
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpirationHrs)*time.Hour)
	if err != nil {
		zlog.Fatal("failed to initialize jwt service", zap.Error(err))
	}

	authService, err := service.NewAuthService(userRepo, accountCodes, jwtService, emailService)
	if err != nil {
		zlog.Fatal("failed to initialize auth service", zap.Error(err))
	}
	accountService, err := service.NewAccountService(userRepo, accountCodes, emailService)
	if err != nil {
		zlog.Fatal("failed to initialize account service", zap.Error(err))
	}
	inquiryService, err := service.NewInquiryService(inquiryRepo, formCodes, emailService)
	if err != nil {
		zlog.Fatal("failed to initialize inquiry service", zap.Error(err))
	}
	reviewService, err := service.NewReviewService(reviewRepo, formCodes)
	if err != nil {
		zlog.Fatal("failed to initialize review service", zap.Error(err))
	}
	cityService, err := service.NewCityService(cityRepo)
	if err != nil {
		zlog.Fatal("failed to initialize city service", zap.Error(err))
	}
	contentService, err := service.NewContentService(contentRepo)
	if err != nil {
		zlog.Fatal("failed to initialize content service", zap.Error(err))
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		zlog.Warn("failed to set trusted proxies", zap.Error(err))
	}
	router.Use(
		middleware.RequestID(),
		ginzap.GinzapWithConfig(zlog, &ginzap.Config{
			TimeFormat: time.RFC3339,
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == http.MethodHead
			},
			Context: func(c *gin.Context) []zapcore.Field {
				if v := c.GetString(middleware.RequestIDKey); v != "" {
					return []zapcore.Field{zap.String("request_id", v)}
				}
				return nil
			},
		}),
		ginzap.RecoveryWithZap(zlog, true),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.BodySizeLimiter(cfg.Server.MaxBodyBytes),
	)

	routes := &handler.Routes{
		Auth:        handler.NewAuthHandler(authService),
		Public:      handler.NewPublicHandler(contentService, cityService, reviewService),
		Forms:       handler.NewFormHandler(inquiryService, reviewService),
		Accounts:    handler.NewAccountHandler(accountService),
		Inquiries:   handler.NewInquiryHandler(inquiryService),
		Admin:       handler.NewAdminContentHandler(contentService, cityService, reviewService),
		Gate:        middleware.NewAuthMiddleware(jwtService),
		Limiter:     newLimiter(cfg, redisClient),
		PublicLimit: middleware.PublicFormRateLimitConfig(cfg.RateLimit.PublicMax, cfg.RateLimit.Window),
		AuthLimit:   middleware.AuthRateLimitConfig(cfg.RateLimit.AuthMax, cfg.RateLimit.Window),
		CacheTTL:    cfg.Cache.PublicCacheTTL(),
	}
	routes.Register(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
		return
	}
	zlog.Info("server exited properly")
}

func newFormCodeStore(cfg *config.Config, client redis.UniversalClient) (verification.Store[string], error) {
	if cfg.Codes.Store == "redis" {
		return redisRepo.NewCodeStore(client, redisRepo.FormCodePrefix)
	}
	return verification.NewMemoryStore[string](), nil
}

func newMailSender(cfg config.MailConfig) (mail.Sender, error) {
	switch cfg.Provider {
	case "resend":
		return mail.NewResendSender(cfg.ResendAPIKey, cfg.From)
	case "noop":
		zap.L().Warn("mail provider is noop, no email will be delivered")
		return mail.NoopSender{}, nil
	default:
		return mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.From,
		})
	}
}

func newLimiter(cfg *config.Config, client redis.UniversalClient) middleware.Limiter {
	switch {
	case !cfg.RateLimit.Enabled:
		return middleware.NoopLimiter{}
	case client != nil:
		return middleware.NewRateLimiter(client)
	default:
		return middleware.NewLocalRateLimiter(10 * time.Minute)
	}
}
