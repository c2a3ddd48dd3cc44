package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adityarama/iuranpay/internal/pkg/logger"
)

func newBufferedLogger(buf *bytes.Buffer) *logger.ZapLogger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewDevelopmentConfig().EncoderConfig),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return &logger.ZapLogger{Logger: zap.New(core)}
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	var logBuffer bytes.Buffer
	zapLogger := newBufferedLogger(&logBuffer)

	tests := []struct {
		name         string
		panicValue   interface{}
		expectInLogs []string
		setupContext func(c echo.Context)
	}{
		{
			name:       "string panic",
			panicValue: "test panic message",
			expectInLogs: []string{
				"test panic message",
				"stack_trace",
				"panic_type",
				"Panic recovered during request processing",
			},
		},
		{
			name:       "error panic",
			panicValue: fmt.Errorf("test error panic"),
			expectInLogs: []string{
				"test error panic",
				"stack_trace",
				"*errors.errorString",
			},
		},
		{
			name:       "nil panic",
			panicValue: nil,
			expectInLogs: []string{
				"panic_value",
				"stack_trace",
			},
		},
		{
			name:       "panic with user context",
			panicValue: "user context panic",
			expectInLogs: []string{
				"user context panic",
				"user123",
			},
			setupContext: func(c echo.Context) {
				c.Set("user_id", "user123")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuffer.Reset()

			e := echo.New()
			handler := PanicRecoveryWithZapMiddleware(zapLogger)(func(c echo.Context) error {
				if tt.setupContext != nil {
					tt.setupContext(c)
				}
				panic(tt.panicValue)
			})

			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			req.Header.Set("User-Agent", "test-agent")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			// The panic must be swallowed, not propagated.
			err := handler(c)
			assert.NoError(t, err)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, "Internal Server Error", response["error"])

			logOutput := logBuffer.String()
			for _, expected := range tt.expectInLogs {
				assert.Contains(t, logOutput, expected)
			}
			assert.Contains(t, logOutput, "GET")
			assert.Contains(t, logOutput, "/status")
			assert.Contains(t, logOutput, "test-agent")
		})
	}
}

func TestPanicRecoveryWithNewRelicTransaction(t *testing.T) {
	var logBuffer bytes.Buffer
	zapLogger := newBufferedLogger(&logBuffer)

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("test-app"),
		newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
		newrelic.ConfigEnabled(false),
	)
	require.NoError(t, err)

	e := echo.New()
	handler := PanicRecoveryWithZapMiddleware(zapLogger)(func(c echo.Context) error {
		panic("transaction panic test")
	})

	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	txn := app.StartTransaction("test-transaction")
	c.Set("nr_txn", txn)

	assert.NoError(t, handler(c))
	txn.End()

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logBuffer.String(), "transaction panic test")
}

func TestDefaultPanicRecoveryConfig(t *testing.T) {
	config := DefaultPanicRecoveryConfig()

	assert.Equal(t, 4<<10, config.StackSize)
	assert.False(t, config.DisableStackAll)
	assert.Nil(t, config.Logger)
}

func TestPanicRecoveryMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() {
		PanicRecoveryMiddleware(PanicRecoveryConfig{})
	})
}
