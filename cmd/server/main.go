package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storeadmin-be/internal/cache"
	"storeadmin-be/internal/company"
	"storeadmin-be/internal/config"
	"storeadmin-be/internal/contact"
	"storeadmin-be/internal/db"
	"storeadmin-be/internal/events"
	"storeadmin-be/internal/handler"
	"storeadmin-be/internal/invoice"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/metrics"
	"storeadmin-be/internal/middleware"
	"storeadmin-be/internal/notifier"
	"storeadmin-be/internal/order"
	"storeadmin-be/internal/product"
	"storeadmin-be/internal/upload"
	"storeadmin-be/internal/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	eventBuffer     = 256
	shutdownTimeout = 15 * time.Second
	redisPingWait   = 2 * time.Second
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	database := db.InitDB(cfg)
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := newApp(ctx, cfg, database, reg)
	if err != nil {
		log.Fatal("failed to build application", zap.Error(err))
	}
	defer a.close()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// app holds the router and the clients that need closing on shutdown.
type app struct {
	router   http.Handler
	orders   order.Service
	producer *events.Producer
	rdb      *redis.Client
}

func newApp(ctx context.Context, cfg *config.Config, database *sql.DB, reg *prometheus.Registry) (*app, error) {
	log := logger.L()
	a := &app{}
	m := metrics.New(reg)

	files, err := upload.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	checks := []handler.HealthCheck{{Name: "db", Check: database.PingContext}}

	var idem handler.IdempotencyStore
	if cfg.RedisAddr != "" {
		rdb := cache.New(cfg.RedisAddr)
		if err := cache.Ping(ctx, rdb, redisPingWait); err != nil {
			log.Warn("redis unavailable, idempotency replay disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = rdb.Close()
		} else {
			a.rdb = rdb
			idem = cache.NewIdempotencyStore(rdb)
			checks = append(checks, handler.HealthCheck{
				Name:  "redis",
				Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			})
		}
	}

	var publisher order.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, eventBuffer)
		a.producer.Start()
		publisher = events.NewOrderEvents(a.producer, cfg.ServiceName)
	} else {
		log.Info("no kafka brokers configured, order events disabled")
	}

	var mailer order.Notifier
	if cfg.SESSenderEmail != "" {
		n, err := notifier.NewEmailNotifier(ctx, notifier.Settings{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			SenderEmail:     cfg.SESSenderEmail,
			SiteName:        cfg.SiteName,
		})
		if err != nil {
			log.Warn("email notifier disabled", zap.Error(err))
		} else {
			mailer = n
		}
	}

	productSvc := product.NewService(product.NewRepository(database), files)
	orderSvc := order.NewService(order.NewRepository(database), publisher, mailer, m)
	a.orders = orderSvc
	userSvc := user.NewService(user.NewRepository(database), cfg.JWTSecret)
	companySvc := company.NewService(company.NewRepository(database))
	contactSvc := contact.NewService(contact.NewRepository(database))

	limiter := middleware.NewLimiter(cfg.InternalSecretKey)
	go limiter.Run(ctx)

	a.router = handler.NewRouter(handler.Deps{
		Orders: handler.NewOrderHandler(orderSvc, idem, companySvc, invoice.Settings{
			ContactEmail: cfg.ContactEmail,
			ContactPhone: cfg.ContactPhone,
			SiteName:     cfg.SiteName,
			LogoPath:     cfg.InvoiceLogoPath,
		}, cfg.UploadDir),
		Products:  handler.NewProductHandler(productSvc, files),
		Users:     handler.NewUserHandler(userSvc),
		Companies: handler.NewCompanyHandler(companySvc, files),
		Contacts:  handler.NewContactHandler(contactSvc),

		UploadDir:    cfg.UploadDir,
		HealthChecks: checks,
		JWTSecret:    cfg.JWTSecret,
		Limiter:      limiter,
		Metrics:      m,
		Gatherer:     reg,
	})

	return a, nil
}

func (a *app) close() {
	if a.orders != nil {
		a.orders.Wait()
	}
	if a.producer != nil {
		a.producer.Close()
		a.producer.WaitClosed()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
