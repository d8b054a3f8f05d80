package logger

import (
	"io"
)

// SetupLogger initializes the default logger from CLI/config values.
func SetupLogger(logLevel string, logJSON bool, out io.Writer) Logger {
	Init(&Config{
		Level:      ParseLevel(logLevel),
		Output:     out,
		JSON:       logJSON,
		TimeFormat: "15:04:05",
	})
	return defaultLogger
}
