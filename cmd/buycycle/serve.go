package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"

	"buycycle/internal/http/handlers"
	applog "buycycle/internal/log"
	"buycycle/internal/repos"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Optional file logging
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
			} else {
				defer f.Close()
				log.SetOutput(io.MultiWriter(os.Stdout, f))
			}
		}

		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		if repos.DetectDriver(cfg.DBDSN) == repos.DriverPostgres {
			db.SetMaxOpenConns(cfg.MaxDBConnections)
		}
		log.Printf("[db] connected (%s)", repos.DetectDriver(cfg.DBDSN))

		if err := repos.SeedAdmins(cmd.Context(), db, cfg.AdminEmails); err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			AppName:      "buycycle",
			ErrorHandler: handlers.ErrorHandler,
			BodyLimit:    1 << 20, // 1 MiB
		})

		app.Use(requestid.New())
		app.Use(logger.New())
		app.Use(recover.New(recover.Config{EnableStackTrace: true}))
		app.Use(helmet.New())
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.limit.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
			},
		}))

		handlers.Mount(app, handlers.NewDeps(db, cfg))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			log.Printf("[server] shutting down")
			_ = app.ShutdownWithTimeout(10 * time.Second)
		}()

		log.Printf("[server] listening on :%s", cfg.Port)
		return app.Listen(":" + cfg.Port)
	},
}
