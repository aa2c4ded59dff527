package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Log is the global logger instance
var Log *slog.Logger

// Init installs the process-wide logger.
// Development: text at debug level. Production: JSON at info level.
// With a Sentry DSN, error records are also forwarded to Sentry.
func Init(isDev bool, environment, sentryDSN string) {
	Log = New(os.Stdout, isDev, environment, sentryDSN)
	slog.SetDefault(Log)
}

// New builds a logger writing to w, fanning out to Sentry when sentryDSN is set.
func New(w io.Writer, isDev bool, environment, sentryDSN string) *slog.Logger {
	handlers := []slog.Handler{stdoutHandler(w, isDev)}

	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         sentryDSN,
			Environment: environment,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{
				Level: slog.LevelError,
			}.NewSentryHandler())
		} else {
			slog.New(handlers[0]).Warn("sentry disabled", "error", err)
		}
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0])
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func stdoutHandler(w io.Writer, isDev bool) slog.Handler {
	if isDev {
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
}

// Flush waits for buffered Sentry events; call before exit.
func Flush() {
	sentry.Flush(2 * time.Second)
}
