package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"moodlist-svc/internal/cache"
	"moodlist-svc/internal/cron"
	"moodlist-svc/internal/handler"
	"moodlist-svc/internal/middleware"
	"moodlist-svc/internal/repository"
	"moodlist-svc/internal/service"
	mediasvc "moodlist-svc/internal/service/media"
	"moodlist-svc/pkg/config"
	"moodlist-svc/pkg/httputil"
	"moodlist-svc/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	logLevel := flag.String("log-level", "info", "minimum log level")
	flag.Parse()

	log := logger.New(os.Stdout, logger.ParseLevel(*logLevel))
	log.Info("Starting moodlist-svc...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load config", logger.Error(err))
	}

	// 先迁移再建连接池
	if err := repository.Migrate(cfg.Postgres.DSN()); err != nil {
		log.Fatal("Failed to run migrations", logger.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := repository.NewPool(ctx, repository.PoolConfig{
		DSN:             cfg.Postgres.DSN(),
		MaxConns:        cfg.Postgres.MaxConns,
		MinConns:        cfg.Postgres.MinConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal("Failed to initialize database", logger.Error(err))
	}
	defer db.Close()
	log.Info("Database connected successfully")

	redisClient := initRedis(cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 初始化仓储层
	moodRepo := repository.NewMoodRepository(db)
	songRepo := repository.NewSongRepository(db)
	songMoodRepo := repository.NewSongMoodRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	playlistSongRepo := repository.NewPlaylistSongRepository(db)

	// 初始化媒体存储与解析
	storage := mediasvc.NewStorage(mediasvc.StorageConfig{
		UploadDirectory:        cfg.Media.UploadDirectory,
		MaxFileSizeBytes:       cfg.Media.MaxFileSizeBytes,
		AllowedVideoExtensions: cfg.Media.AllowedVideoExtensions,
		AllowedAudioExtensions: cfg.Media.AllowedAudioExtensions,
	}, log)
	resolver := mediasvc.NewResolver(mediasvc.ResolverConfig{
		PublicRootPrefix: cfg.Media.PublicRootPrefix,
		FallbackMediaURL: cfg.Media.FallbackMediaURL,
	}, storage)

	// 初始化服务层
	countCache := cache.NewMoodCountCache(redisClient, log)
	moodService := service.NewMoodService(moodRepo)
	songService := service.NewSongService(songRepo, songMoodRepo, storage, countCache, log)
	playlistService := service.NewPlaylistService(playlistRepo, playlistSongRepo, songRepo, moodRepo, songMoodRepo, countCache, log)
	cleanupService := service.NewCleanupService(playlistRepo, cfg.Cleanup.MinAge, log)

	cronManager := cron.NewCronManager(cleanupService, cfg.Cleanup.Schedule, log)
	if err := cronManager.Start(); err != nil {
		log.Fatal("Failed to start cron manager", logger.Error(err))
	}
	defer cronManager.Stop()

	router := setupRouter(cfg, log, moodService, songService, playlistService, resolver)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server listening", logger.Int("port", cfg.Server.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start HTTP server", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down moodlist-svc...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced to shutdown", logger.Error(err))
	}

	log.Info("moodlist-svc stopped")
}

// initRedis 创建Redis客户端，未配置或不可达时返回nil，缓存整体降级
func initRedis(cfg *config.Config, log logger.Logger) *redis.Client {
	if !cfg.Redis.Enabled() {
		log.Info("Redis not configured, mood count cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, mood count cache disabled", logger.Error(err))
		client.Close()
		return nil
	}

	log.Info("Redis connected successfully")
	return client
}

// setupRouter 注册中间件与路由
func setupRouter(
	cfg *config.Config,
	log logger.Logger,
	moodService *service.MoodService,
	songService *service.SongService,
	playlistService *service.PlaylistService,
	resolver *mediasvc.Resolver,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(log))
	router.Use(middleware.Recovery(log))
	router.Use(httputil.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 本地媒体文件静态托管
	router.Static("/"+cfg.Media.UploadDirectory, cfg.Media.UploadDirectory)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.Auth.JWTSecret, log))
	{
		moodHandler := handler.NewMoodHandler(moodService)
		api.GET("/moods", moodHandler.ListMoods)
		api.GET("/moods/:id", moodHandler.GetMood)

		songHandler := handler.NewSongHandler(songService, resolver)
		api.POST("/songs", songHandler.CreateSong)
		api.GET("/songs", songHandler.ListSongs)
		api.GET("/songs/:id", songHandler.GetSong)
		api.PUT("/songs/:id", songHandler.UpdateSong)
		api.DELETE("/songs/:id", songHandler.DeleteSong)
		api.POST("/songs/:id/media", songHandler.UploadMedia)
		api.PUT("/songs/:id/media/remote", songHandler.SetRemoteMedia)
		api.DELETE("/songs/:id/media", songHandler.ClearMedia)

		playlistHandler := handler.NewPlaylistHandler(playlistService, resolver)
		api.POST("/playlists/generate", playlistHandler.GeneratePlaylist)
		api.GET("/playlists", playlistHandler.ListPlaylists)
		api.GET("/playlists/:id", playlistHandler.GetPlaylist)
		api.PUT("/playlists/:id", playlistHandler.RenamePlaylist)
		api.DELETE("/playlists/:id", playlistHandler.DeletePlaylist)
		api.GET("/stats/mood-counts", playlistHandler.MoodCounts)
	}

	return router
}
