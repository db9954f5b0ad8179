package main

import (
	"bytes"
	"io"
	"os"

	"github.com/op/go-logging"
)

var logger = logging.MustGetLogger("vlogpp")

var logFormat = logging.MustStringFormatter(
	"%{color}%{time:15:04:05} ▶ %{level:.4s}%{color:reset} %{message}",
)

var logLevel = initLogging(os.Stderr, logging.WARNING)

func initLogging(w io.Writer, level logging.Level) logging.LeveledBackend {
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), logFormat))
	backend.SetLevel(level, "")
	logger.SetBackend(backend)
	return backend
}

// traceWriter logs each line written to it at debug level.
type traceWriter struct {
	buf []byte
}

func (w *traceWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			return len(p), nil
		}
		logger.Debugf("%s", w.buf[:i])
		w.buf = w.buf[i+1:]
	}
}
