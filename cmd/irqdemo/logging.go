// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"os"
	"sync"
)

// LogLevel is an alias of slog.Level, so callers of this package's logging
// surface don't need to import log/slog themselves.
type LogLevel = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var globalLogger struct {
	sync.RWMutex
	logger *slog.Logger
}

func init() {
	globalLogger.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelInfo}))
}

// SetStructuredLogger installs l as the package-level logger every demo
// component logs through.
func SetStructuredLogger(l *slog.Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = l
}

func logger() *slog.Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}
