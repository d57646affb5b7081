package service

import "log/slog"

// logOr guards against the component loggers not being wired, which is
// the case in tests that never initialize the logging core.
func logOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
