// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serverlogger

import (
	"github.com/pion/logging"
	"go.uber.org/zap/zapcore"

	"github.com/livekit/protocol/logger"
)

// loggerFactory hands out one adapter per pion scope
type loggerFactory struct {
	logger logger.Logger
	level  zapcore.Level
}

// NewLoggerFactory routes pion's scoped loggers into l, dropping anything below level.
func NewLoggerFactory(l logger.Logger, level string) logging.LoggerFactory {
	if l == nil {
		l = logger.GetLogger()
	}
	return &loggerFactory{
		logger: l.WithName("pion"),
		level:  logger.ParseZapLevel(level),
	}
}

func (f *loggerFactory) NewLogger(scope string) logging.LeveledLogger {
	return &logAdapter{
		logger: f.logger.WithName(scope),
		level:  f.level,
	}
}
