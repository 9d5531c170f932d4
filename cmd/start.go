package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tarcheck/core/loader"
	"tarcheck/core/logger"
	"tarcheck/core/match"
	"tarcheck/core/middleware/auth"
	"tarcheck/core/middleware/rayid"
	"tarcheck/core/reconcile"
	"tarcheck/feature/audit"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the audit HTTP server",
	Long:  `Starts the HTTP server exposing POST /audit and POST /audit/coverage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()

		opts, err := reconcile.OptionsFromConfig(rt.cfg.Check)
		if err != nil {
			return err
		}
		syntax, err := match.ParseSyntax(rt.cfg.Check.WildcardSyntax)
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             rt.cfg.Server.BodyLimit,
		})

		mgr := loader.NewManager()
		mgr.Register(audit.NewFeature(rt.opener, opts, rt.cfg.Check.CoverageMaxStrip, syntax, logg))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})
		if rt.cfg.Server.AuthEnabled() {
			app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))
		} else {
			logg.Warn("SERVER_API_KEY is empty, the API is unauthenticated")
		}

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		errc := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			errc <- app.Listen(rt.cfg.Server.Addr())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errc:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}

		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
