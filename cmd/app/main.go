package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	apphttp "github.com/suchimauz/dental-clinic-gateway/internal/adapters/in/http"
	"github.com/suchimauz/dental-clinic-gateway/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/dental-clinic-gateway/internal/adapters/out/backend"
	"github.com/suchimauz/dental-clinic-gateway/internal/adapters/out/cache"
	"github.com/suchimauz/dental-clinic-gateway/internal/adapters/out/logger"
	"github.com/suchimauz/dental-clinic-gateway/internal/adapters/out/session"
	"github.com/suchimauz/dental-clinic-gateway/internal/config"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/ports/out"
	"github.com/suchimauz/dental-clinic-gateway/internal/core/services"
)

func main() {
	// .env нужен только для локальной разработки, в остальных окружениях его нет
	_ = godotenv.Load()

	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"backendUrl":      cfg.Backend.URL,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	backendAdapter := backend.NewBackendAdapter(cfg, logger.WithModule("BackendAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, logger.WithModule("CacheAdapter"))
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	sessionStore := session.NewMemoryStore(cfg, logger.WithModule("SessionStore"))
	defer sessionStore.Close()

	// Инициализация сервисов
	directoryService := services.NewDirectoryService(
		backendAdapter,
		cacheAdapter,
		cfg,
		logger.WithModule("DirectoryService"),
	)
	bookingService := services.NewBookingService(
		backendAdapter,
		cacheAdapter,
		cfg,
		logger.WithModule("BookingService"),
	)
	authService := services.NewAuthService(
		backendAdapter,
		sessionStore,
		directoryService,
		logger.WithModule("AuthService"),
	)
	dashboardService := services.NewDashboardService(
		backendAdapter,
		directoryService,
		logger.WithModule("DashboardService"),
	)
	fieldRules := services.NewFieldRules(cfg)

	// Настройка HTTP сервера
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	public := router.Group("/api/v1")
	private := router.Group("/api/v1")
	private.Use(apphttp.SessionMiddleware(authService, cfg))

	authController := apphttp.NewAuthController(authService, cfg, logger.WithModule("AuthController"))
	authController.RegisterRoutes(public, private)

	bookingController := apphttp.NewBookingController(
		bookingService,
		fieldRules,
		cfg,
		logger.WithModule("BookingController"),
	)
	bookingController.RegisterRoutes(private)

	directoryController := apphttp.NewDirectoryController(directoryService, logger.WithModule("DirectoryController"))
	directoryController.RegisterRoutes(private)

	dashboardController := apphttp.NewDashboardController(dashboardService)
	dashboardController.RegisterRoutes(private)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewDirectoryListener(
			directoryService,
			cacheAdapter,
			cfg,
			logger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		// Добавляем остановку RabbitMQ в defer
		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	// Дополнительное логирование для разработки
	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]interface{}{
					"host":    cfg.HTTP.Host,
					"port":    cfg.HTTP.Port,
					"origins": cfg.HTTP.AllowOrigins,
				},
				"backend": map[string]interface{}{
					"url":     cfg.Backend.URL,
					"timeout": cfg.Backend.TimeoutSeconds,
				},
				"rabbitmq": map[string]interface{}{
					"enabled": cfg.RabbitMQ.Enabled,
					"url":     cfg.RabbitMQ.URL,
					"queue":   cfg.RabbitMQ.Queue,
				},
				"cache": map[string]interface{}{
					"enabled":           cfg.Cache.Enabled,
					"appointments_size": cfg.Cache.AppointmentsSize,
				},
			},
		})
	}
}
