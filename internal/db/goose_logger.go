package db

import (
	"fmt"
	"strings"

	"github.com/joestump/bookmarks/internal/logger"
)

// gooseLogger sends goose's printf-style output through the structured logger.
type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), logger.String("component", "goose"))
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Zap().Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)), logger.String("component", "goose"))
}
