package logger

// Logger writes the deployment transcript.
type Logger interface {
	Debug(message string)
	Info(message string)
	Warning(message string)
}
