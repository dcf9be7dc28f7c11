package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"blueprint/internal/blueprint/aiflow"
	"blueprint/internal/common/config"
	"blueprint/internal/common/middleware"
	"blueprint/internal/editor/handlers"
	"blueprint/internal/editor/workspace"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Editor Service
// ============================================================

func main() {
	cfg := config.Load("3001")
	if os.Getenv("WRITE_TIMEOUT") == "" {
		cfg.WriteTimeout = 120
	}

	var gen aiflow.Generator = aiflow.Disabled{}
	if cfg.AIEnabled() {
		gen = aiflow.NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel,
			aiflow.WithMaxRetries(cfg.AIMaxRetries))
		log.Printf("[AI] layout generation enabled (model: %s)", cfg.AnthropicModel)
	} else {
		log.Printf("[AI] ANTHROPIC_API_KEY not set, layout generation disabled")
	}

	workspaces := workspace.NewRegistry(gen, nil)
	editorHandler := handlers.NewEditorHandler(workspaces)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    12 * 1024 * 1024,
		AppName:      "Blueprint Editor",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("editor"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready", "ai": cfg.AIEnabled()})
	})

	// ============================================================
	// Editor Routes
	// ============================================================

	gate := handlers.NewSessionGate(handlers.NewAuthClient(cfg.AuthURL), workspaces.Drop)
	app.Use(gate.Handler())
	editorHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Editor Service on %s (env: %s, auth: %s)", addr, cfg.Environment, cfg.AuthURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
