// Package logging configures the hclog logger the rest of the tool writes
// debug information to.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// These are the environmental variables that determine if we log, and if
// we log whether or not the log should go to a file.
const (
	envLog     = "TMC_LOG"
	envLogFile = "TMC_LOG_PATH"
)

// ValidLevels are the log level names understood by the envLog variable.
var ValidLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "OFF"}

// NewLogger returns the logger for the whole run, configured from the
// environment. With no log level requested the logger discards everything,
// so normal command output is unaffected.
func NewLogger() hclog.Logger {
	logOutput, level := outputAndLevel()

	return hclog.New(&hclog.LoggerOptions{
		Name:   "terraform-module-check",
		Level:  level,
		Output: logOutput,
	})
}

func outputAndLevel() (io.Writer, hclog.Level) {
	envLevel := strings.ToUpper(os.Getenv(envLog))
	if envLevel == "" || envLevel == "OFF" {
		return io.Discard, hclog.Off
	}

	level := hclog.LevelFromString(envLevel)
	if level == hclog.NoLevel {
		// An unrecognized level means the user wants logs, so give them
		// everything rather than nothing.
		level = hclog.Trace
	}

	var logOutput io.Writer = os.Stderr
	if logPath := os.Getenv(envLogFile); logPath != "" {
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err == nil {
			logOutput = f
		}
	}

	return logOutput, level
}
