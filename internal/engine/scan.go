package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Scan classifies every component under the app directory.
func (e *Engine) Scan(ctx context.Context, req *ScanRequest) (*ScanResult, error) {
	appDir, err := e.appDir(req.CWD, req.AppDir)
	if err != nil {
		return nil, err
	}

	scan, err := e.scanner.Scan(ctx, appDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", appDir, err)
	}

	for _, v := range scan.Errors {
		e.logger.Warn("server component violation", zap.String("file", v.File), zap.Strings("hooks", v.Hooks))
	}

	return &ScanResult{AppDir: appDir, Scan: scan}, nil
}
