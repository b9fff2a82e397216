package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	debugLog = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	warnLog  = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
)

// Options configures log file rotation.
type Options struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Debug      bool
}

// Setup routes all levels to stdout/stderr plus a rotating file.
func Setup(opts Options) {
	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, "app.log"),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}

	outWriter := io.MultiWriter(os.Stdout, rotating)
	errWriter := io.MultiWriter(os.Stderr, rotating)

	infoLog = log.New(outWriter, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(outWriter, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errWriter, "ERROR: ", log.Ldate|log.Ltime)
	if opts.Debug {
		debugLog = log.New(outWriter, "DEBUG: ", log.Ldate|log.Ltime)
	}

	// Override Go's default log as well.
	log.SetOutput(outWriter)
}

func Debug(format string, v ...interface{}) {
	debugLog.Printf(format, v...)
}

func Info(format string, v ...interface{}) {
	infoLog.Printf(format, v...)
}

func Warn(format string, v ...interface{}) {
	warnLog.Printf(format, v...)
}

func Error(format string, v ...interface{}) {
	errorLog.Printf(format, v...)
}
