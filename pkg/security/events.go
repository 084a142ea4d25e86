package security

import (
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventSignup             EventType = "signup"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUploadRejected     EventType = "upload_rejected"
)

// EventLogger writes the structured security event stream. It is separate
// from the application logger so the events can be shipped to a dedicated
// sink without touching request logs.
type EventLogger struct {
	zap         *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *EventLogger
	defaultOnce   sync.Once
)

// DefaultLogger returns the process-wide event logger, initializing it on
// first use.
func DefaultLogger() *EventLogger {
	defaultOnce.Do(func() {
		defaultLogger = NewEventLogger("peer-backend", envName())
	})
	return defaultLogger
}

func envName() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}

// NewEventLogger builds a Zap-backed event logger writing JSON to stdout.
func NewEventLogger(serviceName, environment string) *EventLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger = zap.NewNop()
	}

	return &EventLogger{
		zap:         logger,
		serviceName: serviceName,
		environment: environment,
	}
}

func (l *EventLogger) log(event EventType, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event)),
		zap.Time("at", time.Now().UTC()),
	}
	l.zap.Info(string(event), append(base, fields...)...)
}

// MaskEmail keeps the first character and the domain so events stay
// correlatable without logging the full address.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

func (l *EventLogger) LogLoginFailed(email, ip, userAgent, requestID, reason string) {
	l.log(EventLoginFailed,
		zap.String("subject", MaskEmail(email)),
		zap.String("ip", ip),
		zap.String("user_agent", userAgent),
		zap.String("request_id", requestID),
		zap.String("reason", reason),
	)
}

func (l *EventLogger) LogLoginBlocked(email, ip, requestID string, blockMinutes int) {
	l.log(EventLoginBlocked,
		zap.String("subject", MaskEmail(email)),
		zap.String("ip", ip),
		zap.String("request_id", requestID),
		zap.Int("block_minutes", blockMinutes),
	)
}

func (l *EventLogger) LogLoginSuccess(email, ip, requestID string) {
	l.log(EventLoginSuccess,
		zap.String("subject", MaskEmail(email)),
		zap.String("ip", ip),
		zap.String("request_id", requestID),
	)
}

func (l *EventLogger) LogSignup(email, ip, requestID string) {
	l.log(EventSignup,
		zap.String("subject", MaskEmail(email)),
		zap.String("ip", ip),
		zap.String("request_id", requestID),
	)
}

func (l *EventLogger) LogRateLimitTriggered(ip, userAgent, requestID, path string) {
	l.log(EventRateLimitTriggered,
		zap.String("ip", ip),
		zap.String("user_agent", userAgent),
		zap.String("request_id", requestID),
		zap.String("path", path),
	)
}

func (l *EventLogger) LogUploadRejected(ip, requestID, filename, reason string) {
	l.log(EventUploadRejected,
		zap.String("ip", ip),
		zap.String("request_id", requestID),
		zap.String("filename", filename),
		zap.String("reason", reason),
	)
}
