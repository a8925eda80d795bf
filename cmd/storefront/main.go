package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	cartapp "github.com/wyfcoding/storefront/internal/cart/application"
	cartdomain "github.com/wyfcoding/storefront/internal/cart/domain"
	cartmsg "github.com/wyfcoding/storefront/internal/cart/infrastructure/messaging"
	cartmysql "github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/mysql"
	carthttp "github.com/wyfcoding/storefront/internal/cart/interfaces/http"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	catalogmsg "github.com/wyfcoding/storefront/internal/catalog/infrastructure/messaging"
	"github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	catalogredis "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/redis"
	cataloghttp "github.com/wyfcoding/storefront/internal/catalog/interfaces/http"
	"github.com/wyfcoding/storefront/internal/dispatch"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/mq"
)

func main() {
	configPath := flag.String("config", "configs/storefront/config.toml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting service", "service", cfg.ServiceName, "version", cfg.Version, "environment", cfg.Environment)

	// 指标
	m := metrics.New(cfg.ServiceName)
	if cfg.Metrics.Enabled {
		if err := m.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Fatal(ctx, "Failed to start metrics server", "error", err)
		}
	}

	// 数据库
	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to init database", "error", err)
	}
	defer database.Close()

	if cfg.Environment == "dev" {
		if err := database.AutoMigrate(
			&catalogdomain.Product{},
			&cartdomain.Cart{},
			&cartdomain.CartItem{},
		); err != nil {
			logger.Fatal(ctx, "Failed to migrate database", "error", err)
		}
	}

	// Redis 缓存，连接失败时降级为直读数据库
	var productCache *catalogredis.ProductCache
	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Warn(ctx, "Redis unavailable, product cache disabled", "error", err)
	} else {
		defer redisCache.Close()
		productCache = catalogredis.NewProductCache(redisCache)
	}

	// Kafka 生产者，不可用时跳过事件发布
	var catalogEvents catalogdomain.EventPublisher
	var cartEvents cartdomain.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Warn(ctx, "Kafka unavailable, event publishing disabled", "error", err)
		} else {
			defer producer.Close()
			catalogEvents = catalogmsg.NewKafkaEventPublisher(producer)
			cartEvents = cartmsg.NewKafkaEventPublisher(producer)
		}
	}

	// 仓储
	productRepo := persistence.NewCompositeProductRepository(
		catalogmysql.NewProductRepository(database.DB),
		productCache,
	)
	cartRepo := cartmysql.NewCartRepository(database.DB)

	// 消息分发管道：日志在前，校验在后，然后才是业务 handler
	dispatcher := dispatch.NewDispatcher()
	rules := dispatch.NewRuleRegistry()
	dispatcher.Use(dispatch.NewLoggingBehavior(m))
	dispatcher.Use(dispatch.NewValidationBehavior(rules, m))

	catalogapp.Register(dispatcher, rules, catalogapp.Deps{
		Repo:   productRepo,
		Events: catalogEvents,
	})
	cartSvc := cartapp.NewCartService(cartRepo, productRepo, cartEvents, m)
	cartapp.Register(dispatcher, rules, cartSvc)

	// HTTP
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})

	cataloghttp.NewProductHandler(dispatcher).RegisterRoutes(router)
	carthttp.NewCartHandler(dispatcher).RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(gctx, "HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info(gctx, "Shutdown signal received", "signal", sig.String())
		case <-gctx.Done():
			return gctx.Err()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "Service exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Service stopped gracefully")
}
