package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"hrportal_backend/internals/configs"
	database "hrportal_backend/internals/databases"
	"hrportal_backend/internals/features/presence"
	"hrportal_backend/internals/helpers/cronjob"
	"hrportal_backend/internals/helpers/dbtime"
	"hrportal_backend/internals/helpers/logging"
	middlewares "hrportal_backend/internals/middlewares"
	routes "hrportal_backend/internals/route"
	"hrportal_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	logger := logging.MustNew(logging.Options{Level: configs.LogLevel, Format: configs.LogFormat})
	defer func() { _ = logger.Sync() }()

	presenceCfg := configs.LoadPresenceConfig(logger)
	dbtime.SetDefaultLocation(presenceCfg.Location)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            middlewares.ErrorHandler(logger),
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR proxy jika perlu
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timeout guard
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app, presenceCfg.Location.String(), logger)

	// 🔌 DB connect + pool + migrate + warm-up
	if err := database.ConnectDB(logger); err != nil {
		logger.Fatal("❌ Gagal konek DB", zap.Error(err))
	}
	database.TunePool(database.DB, logger)
	if err := database.Migrate(database.DB); err != nil {
		logger.Fatal("❌ Migrasi gagal", zap.Error(err))
	}
	if strings.EqualFold(configs.GetEnv("SEED"), "true") {
		if err := seeds.RunAllSeeds(database.DB, logger); err != nil {
			logger.Error("seed gagal", zap.Error(err))
		}
	}
	database.WarmUpQueries(database.DB, logger)

	engine := presence.NewEngine(database.DB, presenceCfg, logger)

	// ⏱ scheduler setelah DB siap
	c := cronjob.New(presenceCfg.Location, logger)
	if err := engine.Schedule(c); err != nil {
		logger.Fatal("❌ Gagal daftar cron", zap.Error(err))
	}
	c.Start()

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, engine, configs.JWTSecret, logger)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	go func() {
		logger.Info("✅ Listening", zap.String("port", port))
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown: stop cron (tunggu job jalan), server, lalu pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("🛑 Shutting down...")

	cronCtx := c.Stop()
	select {
	case <-cronCtx.Done():
	case <-time.After(10 * time.Second):
		logger.Warn("cron job belum selesai saat shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close(database.DB)
}
