package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"visitcoord/internal/coordinator"
	"visitcoord/pkg/log"
)

var validate = validator.New()

type HttpServer struct {
	f    *fiber.App
	addr string
}

func NewHttpServer(app *App, addr string) *HttpServer {
	srv := &HttpServer{addr: addr}

	srv.f = fiber.New(fiber.Config{DisableStartupMessage: true})

	srv.f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "api", DoMetrics: true, LogErrorsOnly: true}))

	hooks := srv.f.Group("/api/hooks")
	hooks.Post("/evaluator-response", getEvaluatorResponseHandler(app))
	hooks.Post("/client-response", getClientResponseHandler(app))

	admin := srv.f.Group("/api", getAdminAuth())
	admin.Post("/sessions", getSessionCreateHandler(app))
	admin.Get("/sessions", getSessionListHandler(app))
	admin.Get("/sessions/:id/status", getSessionStatusHandler(app))
	admin.Patch("/sessions/:id", getSessionUpdateHandler(app))
	admin.Post("/sessions/:id/notified", getSessionNotifiedHandler(app))
	admin.Get("/sessions/:id/summary", getSessionSummaryHandler(app))
	admin.Get("/sessions/:id/slots/:slotId/everyone-ok", getEveryoneOkHandler(app))
	admin.Put("/sessions/:id/evaluators/:eid/answers", getAdminAnswersHandler(app))
	admin.Get("/enums", getEnumsHandler())

	srv.f.Get("/metrics", getMetricsHandler())

	return srv
}

func (srv *HttpServer) Listen() error {
	slog.Info("listening " + srv.addr)
	return srv.f.Listen(srv.addr)
}

func (srv *HttpServer) Shutdown() error {
	return srv.f.Shutdown()
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// apiError maps coordinator error kinds to HTTP statuses.
func apiError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, coordinator.ErrInvalidToken):
		code = http.StatusUnauthorized
	case errors.Is(err, coordinator.ErrAlreadySubmitted):
		code = http.StatusConflict
	case errors.Is(err, coordinator.ErrInvalidSlot):
		code = http.StatusBadRequest
	case errors.Is(err, coordinator.ErrValidationFailed):
		code = http.StatusBadRequest
	case errors.Is(err, coordinator.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, coordinator.ErrStoreUnavailable):
		code = http.StatusServiceUnavailable
	}

	return ctx.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
