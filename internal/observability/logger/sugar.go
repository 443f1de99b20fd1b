package logger

import (
	"context"

	"go.uber.org/zap"
)

// S returns the singleton's SugaredLogger.
// Handy for quick printf-style logs:
//
//	logger.S().Infof("account %s selected", id)
//	logger.S().Errorw("token exchange failed", "error", err)
func S() *zap.SugaredLogger {
	return L().Sugar()
}

// SFrom extracts the SugaredLogger from the context.
func SFrom(ctx context.Context) *zap.SugaredLogger {
	return From(ctx).Sugar()
}
