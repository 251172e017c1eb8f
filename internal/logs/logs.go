package logs

import (
	"log"

	"go.uber.org/zap"
)

var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// Init configura o logger global. Chamar uma única vez no main.
func Init(env string) {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	Log = logger
	SLog = logger.Sugar()
}

func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
