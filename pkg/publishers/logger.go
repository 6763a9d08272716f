package publishers

import "github.com/samvad-hq/neutrino-client/internal/logger"

// Logger is the structured logging surface publishers report deliveries on.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}
