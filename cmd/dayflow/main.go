package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/config"
	"github.com/mydayflow/MyDayFlow-BE/internal/database"
	"github.com/mydayflow/MyDayFlow-BE/internal/handlers"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/logger"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/middleware"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
	"github.com/mydayflow/MyDayFlow-BE/internal/service"
	"github.com/mydayflow/MyDayFlow-BE/internal/worker"
	"github.com/mydayflow/MyDayFlow-BE/pkg/webutil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(cfg.Env)
	defer func() { _ = log.Sync() }()

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据库连接并运行迁移（AutoMigrate 会自动创建表及索引）
	db, err := database.InitGorm(cfg)
	if err != nil {
		log.Fatal("db init error", "error", err)
	}

	// 仓库 -> 服务 -> 处理器
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	// 每日汇总的后台任务（停表后异步重算，失败只记日志）
	summaryWorker := worker.NewSummaryWorker(sessionRepo, summaryRepo, log)
	summaryWorker.Start()

	activitySvc := service.NewActivityService(activityRepo)
	userSvc := service.NewUserService(userRepo, activitySvc)
	timerSvc := service.NewTimerService(sessionRepo, activityRepo, summaryWorker, log, cfg.MinSessionSec)
	statsSvc := service.NewStatsService(sessionRepo, activityRepo, summaryRepo)

	authH := handlers.NewAuth(userSvc, cfg.JWTSecret)
	timerH := handlers.NewTimer(timerSvc)
	activityH := handlers.NewActivities(activitySvc)
	statsH := handlers.NewStats(statsSvc)
	syncH := handlers.NewSync(timerSvc)

	r := gin.New()
	r.Use(gin.Recovery())              // 捕获 panic 并返回 500
	r.Use(middleware.RequestID())      // 请求 ID
	r.Use(webutil.Cors(cfg.AllowOrigins))
	r.Use(middleware.Visitor())        // 为游客分配/识别 ID

	// 健康检查端点（负载均衡和监控探测用）
	r.GET("/api/v1/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "ts": time.Now().Unix()})
	})

	// 游客登录
	r.POST("/guest-login", authH.GuestLogin)
	r.GET("/me", authH.Me)

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))
	api.Use(middleware.RateLimit())

	// 计时会话
	api.POST("/sessions/start", timerH.Start)
	api.POST("/sessions/pause", timerH.Pause)
	api.POST("/sessions/resume", timerH.Resume)
	api.POST("/sessions/stop", timerH.Stop)
	api.GET("/sessions/current", timerH.Current)
	api.GET("/sessions", timerH.List)
	api.DELETE("/sessions/:id", timerH.Delete)

	// 后台 worker 的同步契约：查状态 + 上报专注检查
	api.GET("/sync/status", syncH.Status)
	api.POST("/sync/focus-check", syncH.FocusCheck)

	// 分类/事项管理，写操作有每日次数上限（服务端强制执行）
	catalog := api.Group("")
	catalog.Use(middleware.DailyWriteCap(cfg.DailyEditCap))
	catalog.GET("/categories", activityH.ListCategories)
	catalog.POST("/categories", activityH.CreateCategory)
	catalog.PUT("/categories/:id", activityH.UpdateCategory)
	catalog.DELETE("/categories/:id", activityH.DeleteCategory)
	catalog.GET("/items", activityH.ListItems)
	catalog.POST("/items", activityH.CreateItem)
	catalog.PUT("/items/:id", activityH.UpdateItem)
	catalog.DELETE("/items/:id", activityH.DeleteItem)

	// 统计：今日/趋势/分类/事项/小时/天/周/月 + 时间轴 + 记录页
	api.GET("/stats/summary", statsH.Summary)
	api.GET("/stats/categories", statsH.Categories)
	api.GET("/stats/items", statsH.Items)
	api.GET("/stats/hours", statsH.Hours)
	api.GET("/stats/daily", statsH.Daily)
	api.GET("/stats/weekly", statsH.Weekly)
	api.GET("/stats/monthly", statsH.Monthly)
	api.GET("/timeline/day", statsH.Timeline)
	api.GET("/records", statsH.Records)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Info("starting server", "addr", cfg.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", "error", err)
		}
	}()

	// 优雅关闭：先停 HTTP，再等后台任务把队列清完
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	summaryWorker.Stop()
	log.Info("server stopped")
}
