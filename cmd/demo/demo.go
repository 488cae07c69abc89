// Package demo exercises every log sink with representative traffic.
package demo

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tkarvinen/loghub/internal/conf"
	"github.com/tkarvinen/loghub/internal/logger"
)

// Command returns the demo subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Emit sample events through every sink",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(settings)
		},
	}
}

// runDemo initializes the router and emits a representative set of
// application, database, API and security events.
func runDemo(settings *conf.Settings) error {
	router, err := logger.InitializeConfig(settings.ToLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer router.Close()

	appLog := router.GetLogger("application")
	dbLog := logger.NewDatabaseLogger(router)
	apiLog := logger.NewAPILogger(router)
	secLog := logger.NewSecurityLogger(router)

	fmt.Printf("Writing sample events to %s\n\n", router.LogDir())

	appLog.Info("Application started successfully")
	appLog.Debug("Loading configuration files")
	appLog.Warning("Configuration file not found, using defaults")

	dbLog.LogQuery("SELECT * FROM users WHERE id = %s",
		logger.QueryParams(map[string]any{"id": 123}),
		logger.QueryDuration(0.045))

	requestID := uuid.NewString()
	apiLog.LogRequest("GET", "/api/users/123",
		logger.RequestUser("user456"),
		logger.RequestID(requestID),
		logger.RequestIP("192.168.1.1"))
	apiLog.LogResponse(200, 0.125, logger.RequestID(requestID))

	secLog.LogLoginAttempt("john_doe", true, "192.168.1.1",
		logger.LoginUserAgent("Mozilla/5.0 Chrome/91.0"))
	secLog.LogPermissionDenied("user456", "/admin/users", "DELETE")

	if err := router.LogWithContext("business_logic", "info",
		"Order processed successfully",
		logger.WithUserID("user123"),
		logger.WithRequestID(uuid.NewString()),
		logger.WithExtraData(map[string]any{"order_id": "ORDER789", "amount": 99.99})); err != nil {
		return err
	}

	failure := errors.New("connection reset during query")
	appLog.Error("An error occurred during processing", logger.WithError(failure))
	dbLog.LogError(failure, logger.FailedQuery("SELECT * FROM invalid_table"))

	return router.Flush()
}
