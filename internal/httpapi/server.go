// Package httpapi serves the atlas over a read-only JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/eastside-atlas/velocity/core"
	"github.com/eastside-atlas/velocity/internal/contract"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// shutdownTimeout bounds graceful shutdown once the context is cancelled.
const shutdownTimeout = 5 * time.Second

// NewApp builds the fiber application with middleware and routes.
// Request logs go to logOutput; nil disables request logging.
func NewApp(cfg *contract.Config, atlas *core.Atlas, mgr contract.StoreManager, logOutput io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Velocity API v1",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          errorHandler,
		UnescapePath:          true,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if logOutput != nil {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
			Output: logOutput,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	SetupRoutes(app, NewHandler(cfg, atlas, mgr))
	return app
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return err
		}
		return <-errCh
	}
}

// errorHandler renders every error as a JSON body.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
