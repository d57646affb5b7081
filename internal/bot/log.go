package bot

import "log/slog"

// logOr guards against component loggers not being wired, as in tests
// that never initialize the logging core.
func logOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
