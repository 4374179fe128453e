// Copyright 2022 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package badger

import (
	"fmt"
	"strings"

	"github.com/ChainSafe/headertree/internal/log"
	badger "github.com/dgraph-io/badger/v3"
)

var _ badger.Logger = (*badgerLogger)(nil)

// badgerLogger forwards badger logs to a leveled logger, one level
// lower for info and debug messages since badger reports every
// compaction and value log rotation at the info level.
type badgerLogger struct {
	logger log.LeveledLogger
}

func newBadgerLogger(logger log.LeveledLogger) *badgerLogger {
	return &badgerLogger{logger: logger}
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.logger.Error(message(format, args))
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.logger.Warn(message(format, args))
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.logger.Debug(message(format, args))
}

func (b *badgerLogger) Debugf(format string, args ...interface{}) {
	b.logger.Trace(message(format, args))
}

// message formats a badger log message without its trailing new line.
func message(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
