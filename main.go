package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"osmeet/config"
	"osmeet/cron"
	"osmeet/database"
	activityRepo "osmeet/database/repository/activity"
	collectRepo "osmeet/database/repository/collect"
	meetingRepo "osmeet/database/repository/meeting"
	sigRepo "osmeet/database/repository/sig"
	userRepo "osmeet/database/repository/user"
	"osmeet/handlers"
	"osmeet/middleware"
	"osmeet/routes"
	"osmeet/services/activity"
	"osmeet/services/booking"
	"osmeet/services/notification"
	"osmeet/services/platform"
	"osmeet/services/sig"
	"osmeet/services/user"
	"osmeet/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Repositories.
	meetings := meetingRepo.NewMongoMeetingRepo()
	users := userRepo.NewMongoUserRepo()
	sigs := sigRepo.NewMongoSIGRepo()
	activities := activityRepo.NewMongoActivityRepo()
	collects := collectRepo.NewMongoCollectRepo()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := meetings.EnsureIndexes(ctx); err != nil {
			logger.Fatal("failed to create meeting indexes", zap.Error(err))
		}
		cancel()
	}

	// Queue client for notification dispatch.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	// Services.
	userService := &user.DefaultUserService{
		Repo:      users,
		AuthCache: utils.GetAuthCacheClient(),
		Logger:    logger,
	}
	sigService := &sig.DefaultSIGService{Repo: sigs}
	activityService := &activity.DefaultActivityService{
		Repo:     activities,
		Collects: collects,
		Logger:   logger,
	}
	notifier := notification.NewAsynqDispatcher(asynqClient, logger)

	platforms := platform.Registry{
		platform.Zoom:    platform.NewZoomClient(config.AppConfig.ZoomAPIBase),
		platform.Tencent: platform.NewTencentClient(config.AppConfig.TencentAPIBase),
		platform.WeLink:  platform.NewWeLinkClient(config.AppConfig.WeLinkAPIBase),
	}
	pool := booking.NewHostPool(config.AppConfig.Hosts)

	query := booking.NewMeetingQueryService(meetings, utils.GetCacheClient(), logger)
	engine := booking.NewDefaultSchedulingEngine(
		meetings, collects, sigs, pool, platforms, notifier, query, &config.AppConfig, logger)

	// Background notification delivery.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	cron.InitNotifyWorker(workerCtx, userService)

	// HTTP layer.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(utils.ErrorHandler(), middleware.RateLimitMiddleware())

	hb := &routes.HandlerBundle{
		Users:      handlers.NewUserHandler(userService),
		Meetings:   handlers.NewMeetingHandler(engine, query, logger),
		SIGs:       handlers.NewSIGHandler(sigService),
		Activities: handlers.NewActivityHandler(activityService),
		Collects:   handlers.NewCollectHandler(collects, query, activityService, logger),
		UserSvc:    userService,
	}
	routes.RegisterRoutes(r, hb)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
