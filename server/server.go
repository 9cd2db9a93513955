// Package server assembles the HTTP application: middleware, routes and error mapping.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"octofit-backend/events"
	"octofit-backend/handler"
	"octofit-backend/log"
	"octofit-backend/metrics"
	"octofit-backend/store"
)

type Options struct {
	// BaseURL overrides the origin used by the root endpoint.
	BaseURL     string
	CORSOrigins string
	Store       *store.Store
	Events      events.Publisher
}

type resource interface {
	List(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Retrieve(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func New(opts Options) *fiber.App {
	if opts.Events == nil {
		opts.Events = events.Noop{}
	}
	if opts.CORSOrigins == "" {
		opts.CORSOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               "octofit-backend",
		ErrorHandler:          handler.ErrorHandler,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})

	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: handler.RequestIDKey,
	}))
	app.Use(accessLog)
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	root := handler.NewRootHandler(opts.BaseURL, opts.Store)
	app.Get("/healthz", root.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	api.Get("/", root.Root)

	register(api, handler.UsersPath, handler.NewUserHandler(opts.Store, opts.Events))
	register(api, handler.ActivitiesPath, handler.NewActivityHandler(opts.Store, opts.Events))
	register(api, handler.LeaderboardPath, handler.NewLeaderboardHandler(opts.Store, opts.Events))
	register(api, handler.WorkoutsPath, handler.NewWorkoutHandler(opts.Store, opts.Events))

	teams := handler.NewTeamHandler(opts.Store, opts.Events)
	register(api, handler.TeamsPath, teams)
	api.Post("/"+handler.TeamsPath+"/:id/members", teams.AddMembers)
	api.Delete("/"+handler.TeamsPath+"/:id/members/:userID", teams.RemoveMember)

	return app
}

func register(r fiber.Router, name string, h resource) {
	r.Get("/"+name, h.List)
	r.Post("/"+name, h.Create)
	r.Get("/"+name+"/:id", h.Retrieve)
	r.Put("/"+name+"/:id", h.Update)
	r.Patch("/"+name+"/:id", h.Update)
	r.Delete("/"+name+"/:id", h.Delete)
}

// accessLog resolves handler errors itself so the logged status is the one sent.
func accessLog(c *fiber.Ctx) error {
	start := time.Now()

	if err := c.Next(); err != nil {
		if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	latency := time.Since(start)
	status := c.Response().StatusCode()
	metrics.ObserveRequest(c.Method(), c.Route().Path, status, latency)

	fields := []zap.Field{
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", latency),
	}
	if id, ok := c.Locals(handler.RequestIDKey).(string); ok {
		fields = append(fields, zap.String("requestID", id))
	}

	if status >= fiber.StatusInternalServerError {
		log.Logger.Warn("request", fields...)
	} else {
		log.Logger.Info("request", fields...)
	}

	return nil
}
