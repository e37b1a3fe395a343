package logging

import (
	"Staffline/internal/config"
	"fmt"

	"go.uber.org/zap"
)

var Logger = zap.NewNop().Sugar()

func Init() {
	if config.IsProduction() {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(fmt.Errorf("failed to set up production logger: %w", err))
		}
		Logger = logger.Sugar()
	} else {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to set up development logger: %w", err))
		}
		Logger = logger.Sugar()
	}
}

func Sync() {
	// stdout/stderr syncs fail on some platforms, nothing to be done about it
	_ = Logger.Sync()
}
