package audit

import (
	"tarcheck/core/archive"
	"tarcheck/core/match"
	"tarcheck/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the audit feature.
func NewFeature(opener *archive.Opener, opts reconcile.Options, maxStrip int, syntax match.Syntax, logger *zap.Logger) *Feature {
	svc := NewService(opener, opts, maxStrip, syntax, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "audit"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
