// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logFactory builds loggers writing to stderr and, when a directory is
// configured, to a rotating file per logger.
type logFactory struct {
	config logging.Config
	lock   sync.Mutex

	// Logger name --> the logger.
	loggers map[string]logging.Logger
}

func newLogFactory(config logging.Config) *logFactory {
	return &logFactory{
		config:  config,
		loggers: make(map[string]logging.Logger),
	}
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if _, ok := f.loggers[name]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", name)
	}
	config := f.config
	config.LoggerName = name

	cores := []logging.WrappedCore{
		logging.NewWrappedCore(config.DisplayLevel, os.Stderr, logging.Colors.ConsoleEncoder()),
	}
	if len(config.Directory) > 0 {
		rw := &lumberjack.Logger{
			Filename:   path.Join(config.Directory, config.LoggerName+".log"),
			MaxSize:    config.MaxSize,  // megabytes
			MaxAge:     config.MaxAge,   // days
			MaxBackups: config.MaxFiles, // files
			Compress:   config.Compress,
		}
		cores = append(cores, logging.NewWrappedCore(config.LogLevel, rw, config.LogFormat.FileEncoder()))
	}
	l := logging.NewLogger(config.LogFormat.WrapPrefix(config.MsgPrefix), cores...)
	f.loggers[name] = l
	return l, nil
}

func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, l := range f.loggers {
		l.Stop()
	}
	f.loggers = nil
}
