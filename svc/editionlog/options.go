package editionlog

import "log/slog"

// Option configures a Service instance.
type Option func(*service)

// WithLogger sets the logger. The service adds component=editionlog to it.
func WithLogger(log *slog.Logger) Option {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}
