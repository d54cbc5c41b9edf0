package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type SetupParams struct {
	Level       string
	FileName    string
	LogToStdout bool
	JSON        bool
}

// Setup builds the process logger. Without a file name logs go to stdout
// only; with one they go to a rotating file, and to stdout too when
// LogToStdout is set. The returned closer flushes the rotating file.
func Setup(params SetupParams) (zerolog.Logger, io.Closer) {
	var closer io.Closer = nopCloser{}

	var out io.Writer = os.Stdout
	if params.FileName != "" {
		if !strings.HasSuffix(params.FileName, ".log") {
			params.FileName += ".log"
		}
		rotating := &lumberjack.Logger{
			Filename:  params.FileName,
			MaxSize:   50, // megabytes
			LocalTime: false,
			Compress:  true,
		}
		closer = rotating
		out = rotating
		if params.LogToStdout {
			out = io.MultiWriter(os.Stdout, rotating)
		}
	}

	if !params.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: params.FileName != ""}
	}

	logger := zerolog.New(out).
		Level(GetLevel(params.Level)).
		With().
		Timestamp().
		Logger()
	return logger, closer
}

func GetLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
