package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"gearguard/internal/analytics"
	"gearguard/internal/authz"
	"gearguard/internal/controllers"
	"gearguard/internal/integrations"
	"gearguard/internal/integrations/gearapi"
	"gearguard/internal/integrations/mock"
	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/routes"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	"gearguard/pkg/eventbus"
	applogger "gearguard/pkg/logger"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
	appwebsocket "gearguard/pkg/websocket"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Хранилище сессии
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	defer redisClient.Close()

	jwtSvc := service.NewJWTService()
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	sessionRepo := repositories.NewSessionRepository(cacheRepo, jwtSvc, cfg.Session.StorageKey, cfg.Session.DefaultTTL, logger.Named("session"))

	// 2. Удалённый API и доменный репозиторий
	remote := gearapi.New(cfg.RemoteAPI, sessionRepo, logger.Named("gearapi"))
	registry := integrations.NewRegistry()
	if err := registry.Register(integrations.ProviderRemote, remote); err != nil {
		logger.Fatal("регистрация провайдера", zap.Error(err))
	}
	if err := registry.Register(integrations.ProviderDemo, mock.NewDemoProvider()); err != nil {
		logger.Fatal("регистрация провайдера", zap.Error(err))
	}
	if err := registry.SetActive(cfg.RemoteAPI.Provider); err != nil {
		logger.Fatal("неизвестный API_PROVIDER", zap.Error(err), zap.Strings("available", registry.Names()))
	}
	api, err := registry.GetActive()
	if err != nil {
		logger.Fatal("провайдер API не выбран", zap.Error(err))
	}
	logger.Info("Провайдер API", zap.String("provider", cfg.RemoteAPI.Provider))
	bus := eventbus.New(logger.Named("eventbus"))
	domainRepo := repositories.NewDomainRepository(api, bus, logger.Named("domain"))

	// 3. Журнал действий (необязательный)
	var activityRepo repositories.ActivityRepositoryInterface
	if cfg.Postgres.DSN != "" {
		db, err := openActivityDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			logger.Fatal("не удалось подготовить журнал действий", zap.Error(err))
		}
		defer db.Close()
		repo := repositories.NewActivityRepository(db, logger.Named("activity"))
		listeners.NewActivityListener(repo, logger.Named("activity")).Register(bus)
		activityRepo = repo
	} else {
		logger.Info("ACTIVITY_DATABASE_URL не задан, журнал действий отключён")
	}

	policy, err := analytics.NewHealthPolicy(
		cfg.Health.CriticalBelow, cfg.Health.HealthyFrom, cfg.Health.BarGreenFrom, cfg.Health.BarYellowFrom,
	)
	if err != nil {
		logger.Fatal("некорректные пороги здоровья оборудования", zap.Error(err))
	}

	// 4. Сервисы
	authService := services.NewAuthService(api, sessionRepo, domainRepo, bus, logger.Named("auth"))
	remote.SetUnauthorizedHandler(func(ctx context.Context) {
		authService.ForceLogout(ctx, services.LogoutReasonUnauthorized)
	})
	syncService := services.NewSyncService(domainRepo, sessionRepo, logger.Named("sync"))

	svc := routes.Services{
		Auth:            authService,
		Dashboard:       services.NewDashboardService(domainRepo, api, policy, logger.Named("dashboard")),
		Equipment:       services.NewEquipmentService(domainRepo, policy, logger.Named("equipment")),
		EquipmentImport: services.NewEquipImportService(domainRepo, logger.Named("equipment_import")),
		Team:            services.NewTeamService(domainRepo, logger.Named("team")),
		Request:         services.NewRequestService(domainRepo, activityRepo, bus, logger.Named("request")),
		Board:           services.NewBoardService(domainRepo, authz.NewGatekeeper(), bus, logger.Named("board")),
		Calendar:        services.NewCalendarService(domainRepo, bus, logger.Named("calendar")),
		Report:          services.NewReportService(domainRepo, policy, logger.Named("report")),
		Sync:            syncService,
	}

	// 5. Живые обновления
	hub := appwebsocket.NewHub(logger.Named("ws"))
	go hub.Run(ctx)
	listeners.NewBroadcastListener(hub, logger.Named("ws")).Register(bus)

	// Сессия могла пережить перезапуск: подтягиваем данные сразу
	if _, err := sessionRepo.Load(ctx); err == nil {
		if err := domainRepo.InitializeData(ctx); err != nil {
			logger.Warn("Начальная загрузка данных не удалась", zap.Error(err))
		}
	}

	if err := syncService.Start(cfg.Sync.Schedule); err != nil {
		logger.Fatal("не удалось запустить синхронизацию", zap.Error(err))
	}

	// 6. HTTP
	authMW := middleware.NewAuthMiddleware(sessionRepo, jwtSvc, authService.ForceLogout, logger.Named("auth_mw"))
	e := routes.NewServer(cfg.Server, logger)
	dedup := controllers.NewRequestDeduplicator()
	go dedup.Cleanup(ctx, time.Minute)
	routes.InitRouter(e, svc, authMW, hub, dedup, domainRepo.IsLoading, logger)

	go func() {
		logger.Info("Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", zap.Error(err))
	}
	syncService.Stop()
	bus.Wait()
}

func openActivityDB(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	db, err := postgresql.ConnectDB(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	if err := postgresql.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
