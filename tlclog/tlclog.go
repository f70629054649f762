/*
DESCRIPTION
  tlclog.go wires the ausocean logging.Logger interface, used throughout
  this module, to a rotating file sink.

AUTHORS
  tlc-core contributors

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package tlclog constructs the logging.Logger taken by the tlc-core
// components that log: the video load and the dependency graph engine and
// watcher. green2 build, peak detect and solve take no logger.
package tlclog

import (
	"io"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation policy for the engine's log file.
const (
	maxSizeMB    = 10
	maxBackups   = 5
	maxAgeDays   = 28
	suppressRepe = false
)

// New returns a Logger at the given verbosity that writes to a
// size-rotated file at path, mirroring the rotation policy revid's
// deployed instances use for unattended captures.
func New(path string, level int8) logging.Logger {
	roller := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	return logging.New(level, io.Writer(roller), suppressRepe)
}

// silenceLevel is set above any defined verbosity so Discard's logger
// never writes.
const silenceLevel int8 = 127

// Discard returns a Logger that writes nowhere, useful for tests and for
// embedding contexts that don't want file-based logging.
func Discard() logging.Logger {
	return logging.New(silenceLevel, io.Discard, true)
}
