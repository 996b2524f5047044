package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ionuting/BubbleBIM-Comunity/internal/common/config"
	"github.com/ionuting/BubbleBIM-Comunity/internal/common/middleware"
	"github.com/ionuting/BubbleBIM-Comunity/internal/exporter/handlers"
	"github.com/ionuting/BubbleBIM-Comunity/internal/manifest"
	"github.com/ionuting/BubbleBIM-Comunity/pkg/logger"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Export Service
// ============================================================

func main() {
	cfg := config.Load()
	logger.Init(cfg.Debug)

	db, err := manifest.OpenSQLite(cfg.ManifestDBPath)
	if err != nil {
		logger.Fatal("open manifest db", "err", err)
	}
	defer db.Close()

	store := manifest.NewSQLiteStore(db)
	if err := store.Init(context.Background()); err != nil {
		logger.Fatal("init manifest db", "err", err)
	}

	h := handlers.New(cfg, store)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Export Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Export Routes
	// ============================================================

	app.Post("/convert/ifc", h.ConvertIFC)
	app.Post("/convert/glb", h.ConvertDiagram)
	app.Get("/models", h.ListModels)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("starting export service", "addr", addr, "env", cfg.Environment)

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", "err", err)
	}
}
