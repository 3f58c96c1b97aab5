package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	Logger zerolog.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// InitLogger configures Logger for the given level. Console output goes to
// stderr; when logFile is set records are appended to it as JSON as well.
// The returned closer releases the log file.
func InitLogger(level, logFile string) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05",
		FormatCaller: func(i interface{}) string {
			return filepath.Base(fmt.Sprintf("%v", i))
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("|%s|", i)
		},
	}

	consoleWriter.FormatLevel = func(i interface{}) string {
		level := strings.ToUpper(fmt.Sprintf("%v", i))
		switch level {
		case "DEBUG":
			return "\033[36m[" + level + "]\033[0m"
		case "INFO":
			return "\033[32m[" + level + "]\033[0m"
		case "WARN":
			return "\033[33m[" + level + "]\033[0m"
		case "ERROR":
			return "\033[31m[" + level + "]\033[0m"
		default:
			return level
		}
	}

	var out io.Writer = consoleWriter
	var closer io.Closer = nopCloser{}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", logFile, err)
		}
		out = io.MultiWriter(consoleWriter, f)
		closer = f
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()

	// Also replace global log, so log.Info().Msg() etc works everywhere
	log.Logger = Logger
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
