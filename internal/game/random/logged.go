package random

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every draw at debug level.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
	draws  uint64
}

// NewLoggedSource creates a LoggedSource drawing from src and logging to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Uint64N draws from the wrapped Source and logs the bound and result.
func (l *LoggedSource) Uint64N(n uint64) uint64 {
	v := l.src.Uint64N(n)
	l.draws++
	l.logger.Debug("random draw",
		zap.Uint64("draw", l.draws),
		zap.Uint64("bound", n),
		zap.Uint64("value", v),
	)
	return v
}

// Draws returns the number of values drawn so far.
func (l *LoggedSource) Draws() uint64 {
	return l.draws
}
