package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-room-reservation/internal/api"
	"github.com/sanosuguru/go-room-reservation/internal/api/handler"
	custommw "github.com/sanosuguru/go-room-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-room-reservation/internal/application"
	"github.com/sanosuguru/go-room-reservation/internal/config"
	"github.com/sanosuguru/go-room-reservation/internal/domain/policy"
	"github.com/sanosuguru/go-room-reservation/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-room-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-room-reservation/internal/pkg/clock"
	"github.com/sanosuguru/go-room-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-room-reservation/internal/pkg/metrics"
	"github.com/sanosuguru/go-room-reservation/internal/worker"
)

func main() {
	// .env があれば読み込む（本番は環境変数のみ）
	_ = godotenv.Load()

	cfg := config.Load()
	defer logger.Sync()

	m := metrics.Init()

	// DB接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// Redis接続（ルーム一覧キャッシュ）
	// 接続できない場合はキャッシュなしで起動する
	var roomCache *redisinfra.RoomCache
	redisClient := redisinfra.NewClient(&cfg.Redis)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisinfra.Ping(pingCtx, redisClient); err != nil {
		logger.Warn("Redis接続に失敗（キャッシュなしで起動）", zap.Error(err))
		redisClient.Close()
		redisClient = nil
	} else {
		roomCache = redisinfra.NewRoomCache(redisClient)
		defer redisClient.Close()
	}
	pingCancel()

	// リポジトリ
	txManager := postgres.NewTxManager(db, cfg.Database.LockTimeout)
	roomRepo := postgres.NewRoomRepository(db)
	userRepo := postgres.NewUserRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)

	// サービス
	reservationService := application.NewReservationService(
		txManager, reservationRepo, roomRepo, userRepo,
		policy.Default(), clock.New(), m,
	)
	roomService := application.NewRoomService(roomRepo, roomCache, cfg.Redis.RoomCacheTTL)
	userService := application.NewUserService(userRepo)

	// ハンドラー
	tokenIssuer := custommw.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	reservationHandler := handler.NewReservationHandler(reservationService)
	roomHandler := handler.NewRoomHandler(roomService)
	userHandler := handler.NewUserHandler(userService, tokenIssuer)
	healthHandler := handler.NewHealthHandler(db)

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	custommw.SetupMiddleware(e)
	e.Use(custommw.PrometheusMiddleware(m))

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommw.MetricsBasicAuth())

	v1 := e.Group("/api/v1")

	// 認証不要
	v1.POST("/users", userHandler.Join)
	v1.POST("/auth/login", userHandler.Login)
	v1.GET("/rooms", roomHandler.List)
	v1.GET("/rooms/:id", roomHandler.GetByID)

	// ルーム管理
	v1.POST("/rooms", roomHandler.Create)
	v1.POST("/rooms/:id/enable", roomHandler.Enable)
	v1.POST("/rooms/:id/disable", roomHandler.Disable)

	// 認証必須
	authed := v1.Group("", custommw.Auth(tokenIssuer))
	authed.DELETE("/users/me", userHandler.Leave)
	authed.POST("/reservations", reservationHandler.Create)
	authed.GET("/reservations", reservationHandler.List)
	authed.PUT("/reservations/:id", reservationHandler.Update)
	authed.DELETE("/reservations/:id", reservationHandler.Cancel)

	// 支払い待ち予約クリーナー
	cleanerCtx, cleanerCancel := context.WithCancel(context.Background())
	cleaner := worker.NewStaleReservationCleaner(
		reservationService,
		cfg.Reservation.CleanerInterval,
		cfg.Reservation.PaymentExpiry,
	)
	go cleaner.Start(cleanerCtx)

	// サーバー起動
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("サーバー起動", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	cleanerCancel()
	cleaner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
