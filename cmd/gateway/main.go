package main

import (
	"fmt"
	"log"
	"time"

	"blueprint/internal/common/config"
	"blueprint/internal/common/middleware"
	"blueprint/internal/gateway/handlers"
	"blueprint/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load("3000")

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    12 * 1024 * 1024,
		AppName:      "Blueprint Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("gateway"))
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(map[string]string{
		"auth":   cfg.AuthURL,
		"editor": cfg.EditorURL,
	}))
	app.Get("/health/startup", handlers.StartupProbe)

	// ============================================================
	// Docs
	// ============================================================

	app.Get("/docs", handlers.SwaggerUI("/docs/openapi.yaml"))
	app.Get("/docs/openapi.yaml", handlers.SwaggerSpec(handlers.SpecPath))

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	api := app.Group("/api/v1")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Blueprint API v1",
			"status":  "ok",
		})
	})

	proxy.Mount(api, "/auth", cfg.AuthURL)
	proxy.Mount(api, "/editor", cfg.EditorURL)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /api/v1/auth to %s, /api/v1/editor to %s", cfg.AuthURL, cfg.EditorURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
