package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"twinheart/internal/config"
	"twinheart/internal/db"
	"twinheart/internal/email"
	"twinheart/internal/engine"
	apihttp "twinheart/internal/http"
	"twinheart/internal/repository"
	"twinheart/internal/scheduler"
	"twinheart/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	memoryRepo := repository.NewPgMemoryRepository(pool)
	moodRepo := repository.NewPgMoodRepository(pool)
	reminderRepo := repository.NewPgReminderRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	chatWindow := time.Duration(cfg.ChatRateWindowSecs) * time.Second
	chatLimiter := service.NewChatRateLimiter(chatWindow, cfg.ChatRateMax)
	var (
		tokenStore    service.RefreshTokenStore
		markerFactory service.MarkerStoreFactory
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			chatLimiter = service.NewRedisChatRateLimiter(redisClient, chatWindow, cfg.ChatRateMax)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			markerFactory = func(userID string) scheduler.TriggerMarkerStore {
				return scheduler.NewRedisMarkerStore(redisClient, userID)
			}
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	userSvc := service.NewUserService(logger, userRepo)
	chatSvc := service.NewChatService(logger, engine.NewEngine(nil), userRepo, sessionRepo, messageRepo, memoryRepo, chatLimiter)
	reminderSvc := service.NewReminderService(logger, reminderRepo, markerFactory, nil)
	moodSvc := service.NewMoodService(logger, moodRepo)

	router := apihttp.NewRouter(
		logger,
		jwtSvc,
		apihttp.NewUserHandler(logger, userSvc, jwtSvc),
		apihttp.NewChatHandler(logger, chatSvc),
		apihttp.NewReminderHandler(logger, reminderSvc),
		apihttp.NewMoodHandler(logger, moodSvc),
	)

	go runReminderLoop(ctx, logger, cfg, reminderSvc, userRepo, emailSender)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// runReminderLoop revisa recordatorios vencidos cada intervalo y notifica por
// email a los usuarios activos. Una vez por hora limpia marcadores viejos.
func runReminderLoop(
	ctx context.Context,
	logger *zap.Logger,
	cfg *config.Config,
	reminderSvc *service.ReminderService,
	userRepo repository.UserRepository,
	sender email.Sender,
) {
	interval := time.Duration(cfg.ReminderCheckSecs) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	check := time.NewTicker(interval)
	defer check.Stop()
	cleanup := time.NewTicker(time.Hour)
	defer cleanup.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cleanup.C:
			reminderSvc.Cleanup(ctx)
		case <-check.C:
			due, err := reminderSvc.CheckDue(ctx)
			if err != nil {
				logger.Warn("check due reminders", zap.Error(err))
				continue
			}
			for userID, reminders := range due {
				user, err := userRepo.GetByID(ctx, userID)
				if err != nil {
					logger.Warn("load user for notification", zap.Error(err), zap.String("user_id", userID))
					continue
				}
				for _, reminder := range reminders {
					logger.Info("reminder due",
						zap.String("user_id", userID),
						zap.String("reminder_id", reminder.ID),
						zap.String("message", reminder.Message),
					)
					if err := sender.SendReminder(ctx, user.Email, reminder); err != nil {
						logger.Warn("send reminder email", zap.Error(err), zap.String("user_id", userID))
					}
				}
			}
		}
	}
}
