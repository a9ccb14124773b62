// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"samma3ni-go/internal/config"
	"samma3ni-go/internal/handler"
	"samma3ni-go/internal/middleware"
	"samma3ni-go/internal/pipeline"
	"samma3ni-go/internal/repository"
	"samma3ni-go/internal/service"
	"samma3ni-go/pkg/catalog"
	"samma3ni-go/pkg/database"
	"samma3ni-go/pkg/es"
	"samma3ni-go/pkg/kafka"
	"samma3ni-go/pkg/log"
	"samma3ni-go/pkg/lyrics"
	"samma3ni-go/pkg/metrics"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. 初始化配置
	configPath := "./configs/config.yaml"
	if p := os.Getenv("SAMMA3NI_CONFIG"); p != "" {
		configPath = p
	}
	config.Init(configPath)
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis 与 Elasticsearch
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if cfg.Catalog.Provider == "elasticsearch" {
		if err := es.InitES(cfg.Elasticsearch); err != nil {
			log.Fatal("Elasticsearch 初始化失败", err)
		}
	}

	// 4. 初始化 Repository
	historyRepo := repository.NewHistoryRepository(database.DB)
	lyricsCacheRepo := repository.NewLyricsCacheRepository(database.RDB, cfg.Lyrics.CacheTTL)

	// 5. 初始化外部客户端
	source, err := catalog.NewSource(cfg, es.ESClient)
	if err != nil {
		log.Fatal("候选歌曲来源初始化失败", err)
	}
	scraper := lyrics.NewScraper(cfg.Lyrics)

	// 6. 初始化歌词预取 (Kafka 生产者与消费者)
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	var publisher service.TaskPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Error("关闭 Kafka 生产者失败", err)
			}
		}()
		publisher = producer

		processor := pipeline.NewProcessor(scraper, lyricsCacheRepo)
		go kafka.StartConsumer(consumerCtx, cfg.Kafka, processor, lyricsCacheRepo)
	} else {
		log.Info("Kafka 未启用，跳过歌词预取")
	}

	// 7. 初始化 Service (依赖注入)
	searchService := service.NewSearchService(source, scraper, lyricsCacheRepo, publisher, cfg.Search, cfg.Lyrics)
	historyService := service.NewHistoryService(historyRepo, cfg.History.Limit)

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), metrics.Middleware(), gin.Recovery())

	// 9. 注册路由
	r.GET("/", handler.Root)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api := r.Group("/api")
	{
		api.GET("/songs/search", handler.NewSearchHandler(searchService).SearchSongs)

		historyHandler := handler.NewHistoryHandler(historyService)
		api.POST("/history", historyHandler.Save)
		api.GET("/history", historyHandler.List)
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("HTTP 服务器关闭失败", err)
	}
	stopConsumer()

	log.Info("服务已优雅关闭")
}
