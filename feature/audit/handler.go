package audit

import (
	"errors"

	"tarcheck/core/fsscan"
	"tarcheck/core/logger"
	"tarcheck/core/match"
	"tarcheck/core/reconcile"
	"tarcheck/core/resolve"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for audits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Post("/", h.HandleAudit)
	group.Post("/coverage", h.HandleCoverage)
}

// HandleAudit verifies an archive against a directory.
func (h *Handler) HandleAudit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	l.Info("Audit requested", zap.String("archive", req.Archive), zap.String("dir", req.Dir))
	report, err := h.service.Audit(c.Context(), req, l)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleCoverage reports on-disk files absent from an archive.
func (h *Handler) HandleCoverage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	report, err := h.service.Coverage(c.Context(), req, l)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Audit failed", zap.Error(err))
	} else {
		l.Warn("Audit rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps an audit error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrInvalidInput), errors.Is(err, match.ErrInvalidExclusionRule):
		return fiber.StatusBadRequest
	case errors.Is(err, fsscan.ErrNotADirectory), errors.Is(err, resolve.ErrMissingFile):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, resolve.ErrPermissionDenied):
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
