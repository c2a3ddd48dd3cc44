package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/adityarama/iuranpay/internal/pkg/config"
	"github.com/adityarama/iuranpay/internal/pkg/eventbus"
	"github.com/adityarama/iuranpay/internal/pkg/health"
	jwtpkg "github.com/adityarama/iuranpay/internal/pkg/jwt"
	"github.com/adityarama/iuranpay/internal/pkg/logger"
	"github.com/adityarama/iuranpay/internal/pkg/middleware"
	"github.com/adityarama/iuranpay/internal/pkg/models"
	nrpkg "github.com/adityarama/iuranpay/internal/pkg/newrelic"
	"github.com/adityarama/iuranpay/internal/pkg/realtime"
	"github.com/adityarama/iuranpay/internal/pkg/server"
	"github.com/adityarama/iuranpay/internal/utils"
	"github.com/adityarama/iuranpay/services/notification"
	"github.com/adityarama/iuranpay/services/payment"
	gatewayHttp "github.com/adityarama/iuranpay/services/payment/gateway/http"
	"github.com/adityarama/iuranpay/services/payment/usecase"
)

func main() {
	appName := "iuranpay-engine"
	configPath := config.GetEnv("CONFIG_PATH", "config/engine.env")
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Subject credentials come from the portal session
	userID := config.GetEnv("SUBJECT_USER_ID", "")
	authToken := config.GetEnv("SUBJECT_AUTH_TOKEN", "")
	feeID := config.GetEnv("SUBJECT_FEE_ID", "")
	if userID == "" || authToken == "" {
		zapLogger.Fatal("SUBJECT_USER_ID and SUBJECT_AUTH_TOKEN are required")
	}

	// With a shared secret configured the session token is verified up
	// front instead of failing on the first authenticated call.
	if configs.JWT.Secret != "" {
		if _, err := jwtpkg.ValidateToken(authToken, configs.JWT.Secret); err != nil {
			zapLogger.Fatal("SUBJECT_AUTH_TOKEN is not valid", zap.Error(err))
		}
	}

	// Realtime transport over the event bus
	bus := eventbus.NewBus()
	rtClient := realtime.NewClient(configs.API.BaseURL, bus)

	// REST gateway to the dues-portal backend
	gw := gatewayHttp.NewPaymentClient(
		configs.API.BaseURL,
		time.Duration(configs.API.Timeout)*time.Second,
		func() string { return authToken },
	)

	nav := &logNavigator{}
	uc := usecase.NewPaymentUC(configs, gw, nav, &logNotices{}, payment.DefaultErrorClassifier)

	// Notification bridge; the agent renders alerts to the log
	bridge := notification.NewBridge(&logPresenter{}, nav)
	bridge.RequestPermission()

	engine := usecase.NewEngine(uc, rtClient, bridge,
		time.Duration(configs.Reconcile.PollInterval)*time.Second)

	subject := usecase.Subject{
		UserID: userID,
		Token:  authToken,
		Fee: &models.Fee{
			ID:     feeID,
			UserID: userID,
		},
	}
	if err := engine.Start(context.Background(), subject); err != nil {
		zapLogger.Fatal("Failed to start engine", zap.Error(err))
	}

	// Agent HTTP surface
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = utils.NewHTTPErrorHandler()
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, appName, engine.Running)
	e.GET("/status", func(c echo.Context) error {
		return utils.SuccessResponse(c, http.StatusOK, "engine status", engine.Snapshot())
	})

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server shutdown error", zap.Error(err))
	}

	engine.Stop()
	zapLogger.Info("Engine stopped",
		zap.String("app", appName))
	os.Exit(0)
}

// logNavigator reports navigation the engine drives. The agent has no
// browsing context, so opening and navigating are surfaced as log events
// the portal frontend consumes from the status endpoint.
type logNavigator struct{}

func (n *logNavigator) OpenExternal(url string) error {
	logger.Info("Opening external payment page", logger.String("url", url))
	return nil
}

func (n *logNavigator) NavigateTo(path string) {
	logger.Info("View navigation", logger.String("path", path))
}

func (n *logNavigator) Focus() {
	logger.Debug("Application focus requested")
}

// logNotices surfaces user-facing messages through the structured log
type logNotices struct{}

func (ln *logNotices) Info(message string)    { logger.Info(message) }
func (ln *logNotices) Success(message string) { logger.Info(message) }
func (ln *logNotices) Toast(message string, duration time.Duration) {
	logger.Warn(message, logger.Duration("duration", duration))
}
func (ln *logNotices) GlobalError(message string) { logger.Error(message) }

// logPresenter renders native alerts as log lines
type logPresenter struct{}

func (p *logPresenter) RequestPermission() notification.Permission {
	return notification.PermissionGranted
}

func (p *logPresenter) Present(n models.Notification, requireInteraction bool) error {
	logger.Info("Notification",
		logger.String("id", n.ID),
		logger.String("category", n.Category),
		logger.String("title", n.Title),
		logger.Bool("require_interaction", requireInteraction))
	return nil
}

func (p *logPresenter) Dismiss(id string) {
	logger.Debug("Notification dismissed", logger.String("id", id))
}
