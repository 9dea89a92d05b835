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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hirenest/jobboard-api/internal/cache"
	"github.com/hirenest/jobboard-api/internal/config"
	"github.com/hirenest/jobboard-api/internal/database"
	"github.com/hirenest/jobboard-api/internal/handlers"
	"github.com/hirenest/jobboard-api/internal/logger"
	"github.com/hirenest/jobboard-api/internal/notify"
	"github.com/hirenest/jobboard-api/internal/repository"
	"github.com/hirenest/jobboard-api/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting job board API",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("log_level", cfg.LogLevel),
	)

	db, err := database.Connect(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	var jobCache *cache.Cache
	if cfg.RedisAddr != "" {
		jobCache, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer jobCache.Close()
	} else {
		log.Info("Redis not configured, job resolution cache disabled")
	}

	var emailSender notify.EmailSender
	if cfg.SMTPHost != "" {
		emailSender = notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
		log.Info("SMTP sender configured", zap.String("host", cfg.SMTPHost))
	} else {
		log.Warn("SMTP not configured, email delivery disabled")
	}

	var pushSender notify.PushSender
	if cfg.FirebaseCredentialsFile != "" {
		fcm, err := notify.NewFCMSender(context.Background(), cfg.FirebaseCredentialsFile)
		if err != nil {
			log.Fatal("failed to initialize FCM", zap.Error(err))
		}
		pushSender = fcm
		log.Info("FCM sender configured")
	} else {
		log.Warn("Firebase not configured, push delivery disabled")
	}

	dispatcher := notify.NewDispatcher(emailSender, pushSender, cfg.NotifyQueueSize, cfg.NotifyWorkers, log)
	dispatcher.Start()

	plans := repository.NewPlans(db)
	applications := repository.NewApplications(db)
	jobs := repository.NewJobs(db, jobCache, cfg.JobCacheTTL, log)
	users := repository.NewUsers(db)
	interviews := repository.NewInterviews(db)
	notificationLogs := repository.NewNotificationLogs(db)

	applicationService := services.NewApplicationService(plans, applications, jobs, users, dispatcher, log)
	freeJobService := services.NewFreeJobService(plans, jobs, users, dispatcher, log)
	interviewService := services.NewInterviewService(interviews, jobs, users, notificationLogs, dispatcher, log)
	notificationService := services.NewNotificationService(notificationLogs, users, jobs, applications, log)

	router := handlers.NewRouter(
		handlers.NewApplicationHandler(applicationService),
		handlers.NewFreeJobHandler(freeJobService),
		handlers.NewInterviewHandler(interviewService),
		handlers.NewNotificationHandler(notificationService),
	)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	// Drain pending notifications before exiting.
	dispatcher.Stop()

	log.Info("server stopped")
}
