package config

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates the root Logger from the logger parameters of the Config.
func (c *Config) NewLogger() (log *logger.Logger, err error) {
	var level zapcore.Level
	if err = level.UnmarshalText([]byte(c.GetString(CfgLoggerLevel))); err != nil {
		return nil, errors.Errorf("failed to parse log level %s: %w", c.GetString(CfgLoggerLevel), err)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.Encoding = "console"
	zapConfig.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	zapConfig.DisableCaller = c.GetBool(CfgLoggerDisableCaller)

	root, err := zapConfig.Build()
	if err != nil {
		return nil, errors.Errorf("failed to build logger: %w", err)
	}

	return root.Sugar(), nil
}
