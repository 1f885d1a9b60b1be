package logger

// Tee fans each log message out to all given loggers. Nil entries are
// ignored, so callers can pass an optional file logger unconditionally.
func Tee(loggers ...Logger) Logger {
	var active []Logger
	for _, l := range loggers {
		if l != nil {
			active = append(active, l)
		}
	}
	return teeLogger(active)
}

type teeLogger []Logger

func (t teeLogger) LogTrace(message string) {
	for _, l := range t {
		l.LogTrace(message)
	}
}

func (t teeLogger) LogDebug(message string) {
	for _, l := range t {
		l.LogDebug(message)
	}
}

func (t teeLogger) LogInfo(message string) {
	for _, l := range t {
		l.LogInfo(message)
	}
}

func (t teeLogger) LogWarn(message string) {
	for _, l := range t {
		l.LogWarn(message)
	}
}

func (t teeLogger) LogError(message string) {
	for _, l := range t {
		l.LogError(message)
	}
}
