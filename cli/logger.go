package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"taskpilot/config"
)

// Log rotation settings for ~/.taskpilot/logs/taskpilot.log.
const (
	logFileName   = "taskpilot.log"
	logMaxSizeMB  = 5
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// logFileWriter holds the rotating file writer for cleanup at
// shutdown.
var logFileWriter io.WriteCloser

// InitLogger creates the CLI logger.
//
// Levels: verbose selects debug, quiet selects warn, otherwise info.
// Output is a human console writer on a TTY (unless NO_COLOR is set)
// and JSON on stderr otherwise; everything is additionally written to
// a rotating file under the taskpilot home. When the log file cannot
// be created the logger continues console-only.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	writer := selectOutput()
	if fw, err := createLogFileWriter(); err == nil {
		logFileWriter = fw
		writer = zerolog.MultiLevelWriter(writer, fw)
	}

	logger := zerolog.New(writer).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}

// CloseLogFile closes the rotating log file writer if one was opened.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

func createLogFileWriter() (io.WriteCloser, error) {
	home, err := config.Home()
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(home, config.LogsDirName)
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}, nil
}
