package testutil

import (
	"go.uber.org/zap"

	"github.com/dtroode/blog-auth-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewFromZap(zap.NewNop())
}
