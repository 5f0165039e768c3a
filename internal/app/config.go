package app

import (
	"github.com/bmlt-tools/snapshot-server/internal/platform/envutil"
	"github.com/bmlt-tools/snapshot-server/internal/platform/logger"
)

type Config struct {
	HTTPAddr string
}

func LoadConfig(log *logger.Logger) Config {
	httpHost := envutil.GetEnv("HTTP_HOST", "127.0.0.1", log)
	httpPort := envutil.GetEnv("HTTP_PORT", "8000", log)
	return Config{
		HTTPAddr: httpHost + ":" + httpPort,
	}
}
