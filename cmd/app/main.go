package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"user-registry-backend/internal/config"
	"user-registry-backend/internal/manager"
	"user-registry-backend/internal/store"
	"user-registry-backend/internal/user"
)

// main wires dependencies and starts the HTTP server.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	recordStore, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Fatal("store init failed", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer cleanup()

	userRepo := user.NewRepository(recordStore, cfg.UsersTable)
	managerRepo := manager.NewRepository(recordStore, cfg.ManagersTable)
	userService := user.NewService(userRepo, managerRepo)
	userHandler := user.NewHandler(userService, logger)

	app := fiber.New()
	setupCORS(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	userHandler.RegisterRoutes(app)

	logger.Info("starting server",
		zap.String("addr", cfg.Addr),
		zap.String("backend", cfg.StoreBackend),
		zap.String("users_table", cfg.UsersTable),
		zap.String("managers_table", cfg.ManagersTable),
	)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func openStore(cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return store.NewMemory(), func() {}, nil

	case config.BackendRedis:
		rs, err := store.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { rs.Close() }, nil

	case config.BackendPostgres:
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		ps := store.NewPostgres(db)
		if err := ps.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, nil, err
		}
		return ps, func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}
