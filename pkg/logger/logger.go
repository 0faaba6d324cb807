package logger

import (
	"fmt"

	"go.uber.org/zap"
)

var log = zap.NewNop()

// New construye un logger: "dev" legible en consola, "prod" JSON estructurado, "nop" silencioso.
func New(mode string) (*zap.Logger, error) {
	switch mode {
	case "nop":
		return zap.NewNop(), nil
	case "dev":
		return zap.NewDevelopment()
	case "", "prod":
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.MessageKey = "msg"
		cfg.EncoderConfig.LevelKey = "level"
		cfg.EncoderConfig.CallerKey = "caller"
		return cfg.Build()
	default:
		return nil, fmt.Errorf("unknown log mode %q", mode)
	}
}

// Init inicializa el logger global
func Init(mode string) {
	l, err := New(mode)
	if err != nil {
		panic(err)
	}
	log = l
}

// Sugar retorna un logger más “friendly” para usar con printf-like
func Sugar() *zap.SugaredLogger {
	return log.Sugar()
}

// Logger retorna el logger estructurado
func Logger() *zap.Logger {
	return log
}
