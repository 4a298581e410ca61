package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"shortlink-insight/internal/alias"
	"shortlink-insight/internal/cache"
	"shortlink-insight/internal/config"
	"shortlink-insight/internal/handler"
	"shortlink-insight/internal/middleware"
	"shortlink-insight/internal/model"
	"shortlink-insight/internal/service"
	"shortlink-insight/internal/store"
	"shortlink-insight/pkg/database"
	auth "shortlink-insight/pkg/jwt"
	"shortlink-insight/pkg/logger"
	pkgredis "shortlink-insight/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	logger.InitLogger()
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	// 本地开发时从 .env 读取环境变量覆盖，文件不存在则忽略
	_ = godotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		sugaredLogger.Fatalf("配置加载失败: %v", err)
	}

	db, err := database.InitMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	sugaredLogger.Info("✅ 数据库连接成功")

	// 缓存是可选的：连不上只降级为纯存储查询，不阻止启动
	var urlCache cache.Cache
	rdb, err := pkgredis.NewClient(&pkgredis.Options{
		Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
	})
	if err != nil {
		sugaredLogger.Warnf("缓存连接失败，降级为无缓存模式: %v", err)
	} else if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
			}
		}()
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		urlCache = cache.NewRedisCache(rdb, ttl)
		sugaredLogger.Info("✅ 缓存连接成功")
	}

	urlStore := store.NewGormStore(db)
	shortener := service.NewShortener(urlStore, urlCache, alias.NewGenerator(), sugaredLogger)

	tokenManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
	sugaredLogger.Info("✅ 认证管理器初始化成功")

	if err := createAdminUser(db); err != nil {
		sugaredLogger.Errorf("创建管理员失败: %v", err)
	}

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.RequestID())
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.Use(middleware.RateLimit(&cfg.RateLimit))

	urlHandler := handler.NewShortURLHandler(shortener)
	authHandler := handler.NewAuthHandler(db, tokenManager)
	authMiddleware := middleware.AuthMiddleware(tokenManager)

	registerRoutes(router, urlHandler, authHandler, authMiddleware)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugaredLogger.Fatalf("服务启动失败: %v", err)
	}
}

func registerRoutes(
	router *gin.Engine,
	urlHandler *handler.ShortURLHandler,
	authHandler *handler.AuthHandler,
	authMiddleware gin.HandlerFunc,
) {
	router.GET("/health", urlHandler.HealthCheck)
	router.GET("/:alias", urlHandler.Redirect)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register)
	}

	api := router.Group("/api")
	api.Use(authMiddleware)
	{
		api.GET("/me", authHandler.GetCurrentUser)
		api.POST("/shorten", urlHandler.CreateShortURL)
		api.GET("/analytics/overall", urlHandler.OverallAnalytics)
		api.GET("/analytics/topic/:topic", urlHandler.TopicAnalytics)
		api.GET("/analytics/:alias", urlHandler.AliasAnalytics)
	}
}

func createAdminUser(db *gorm.DB) error {
	var existing model.User
	if err := db.Where("username = ?", "admin").First(&existing).Error; err == nil {
		return nil
	}

	admin := model.User{Username: "admin", Email: "admin@shortlink.local", Role: "admin", IsActive: true}
	if err := admin.SetPassword("admin"); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	zap.S().Infow("✅ 默认管理员创建成功", "username", "admin")
	return nil
}
